package postgres

import (
	"context"
	"strings"

	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const createBatchSize = 200

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) live(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&model.Customer{}).
		Where("user_id = ? AND is_archived = ?", ownerID, false)
}

// FindMany возвращает неархивные клиенты владельца с фильтрами и сортировкой
func (r *CustomerRepository) FindMany(ctx context.Context, ownerID uuid.UUID, f domain.CustomerFilter, sort domain.CustomerSort) ([]model.Customer, error) {
	q := r.live(ctx, ownerID)
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + escapeLike(s) + "%"
		q = q.Where("name ILIKE ? OR account_no ILIKE ? OR mobile ILIKE ?", like, like, like)
	}
	if f.TodaysVisit {
		q = q.Where("todays_visit = ?", true)
	}
	if p := strings.TrimSpace(f.Pincode); p != "" {
		q = q.Where("pincode = ?", p)
	}

	switch sort {
	case domain.SortAlpha:
		q = q.Order("name asc")
	case domain.SortBalance:
		q = q.Order("balance desc nulls last")
	default:
		q = q.Order("created_at desc")
	}

	var customers []model.Customer
	err := q.Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.DB.WithContext(ctx).First(&c, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// CreateMany вставляет весь пакет в одной транзакции
func (r *CustomerRepository) CreateMany(ctx context.Context, cs []model.Customer) error {
	if len(cs) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&cs, createBatchSize).Error
	})
}

func (r *CustomerRepository) Update(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*model.Customer, error) {
	if len(patch) > 0 {
		res := r.DB.WithContext(ctx).Model(&model.Customer{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Updates(patch)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.Get(ctx, id, ownerID)
}

func (r *CustomerRepository) Archive(ctx context.Context, id, ownerID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&model.Customer{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("is_archived", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Stats(ctx context.Context, ownerID uuid.UUID) (model.CustomerStats, error) {
	var stats model.CustomerStats
	if err := r.live(ctx, ownerID).Count(&stats.TotalCustomers).Error; err != nil {
		return stats, err
	}
	var total decimal.NullDecimal
	err := r.live(ctx, ownerID).Select("SUM(balance)").Row().Scan(&total)
	if err != nil {
		return stats, err
	}
	if total.Valid {
		stats.TotalBalance = total.Decimal
	}
	return stats, nil
}

// Pincodes возвращает отсортированный список различных непустых пинкодов
func (r *CustomerRepository) Pincodes(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	var codes pq.StringArray
	err := r.live(ctx, ownerID).
		Where("pincode <> ''").
		Select("COALESCE(array_agg(DISTINCT pincode ORDER BY pincode), '{}')").
		Row().Scan(&codes)
	if err != nil {
		return nil, err
	}
	return []string(codes), nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
