package collections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"
	"ptp_tracker/internal/service/push"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSendTimeout = 10 * time.Second

var (
	ErrRegistrationFields = fmt.Errorf("%w: name, password, and email or phone required", domain.ErrValidation)
	ErrUserExists         = fmt.Errorf("%w: user already exists", domain.ErrValidation)
	ErrNoSubscription     = fmt.Errorf("%w: no subscription found", domain.ErrValidation)
	ErrBadSubscription    = fmt.Errorf("%w: unsupported push subscription", domain.ErrValidation)
)

type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type UserService struct {
	Users     domain.UserRepo
	Transport push.Transport
	logger    *zap.Logger
}

func NewUserService(users domain.UserRepo, transport push.Transport, logger *zap.Logger) *UserService {
	return &UserService{Users: users, Transport: transport, logger: logger}
}

// Register создает пользователя с bcrypt-хешем пароля. Токены не выдаются.
func (s *UserService) Register(ctx context.Context, r Registration) (*model.User, error) {
	name := strings.TrimSpace(r.Name)
	email := strings.ToLower(strings.TrimSpace(r.Email))
	phone := strings.TrimSpace(r.Phone)
	if name == "" || r.Password == "" || (email == "" && phone == "") {
		return nil, ErrRegistrationFields
	}

	for _, identifier := range []string{email, phone} {
		if identifier == "" {
			continue
		}
		_, err := s.Users.FindByIdentifier(ctx, identifier)
		if err == nil {
			return nil, ErrUserExists
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New(),
		Name:         name,
		PasswordHash: string(hash),
	}
	if email != "" {
		u.Email = &email
	}
	if phone != "" {
		u.Phone = &phone
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("id", u.ID.String()))
	return u, nil
}

func (s *UserService) Me(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.Users.FindByID(ctx, id)
}

// Subscribe сохраняет дескриптор доставки (Web Push или Telegram)
func (s *UserService) Subscribe(ctx context.Context, id uuid.UUID, subscription json.RawMessage) error {
	if err := push.ValidateDescriptor(subscription); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSubscription, err)
	}
	return s.Users.UpdatePushSubscription(ctx, id, subscription)
}

func (s *UserService) Unsubscribe(ctx context.Context, id uuid.UUID) error {
	return s.Users.UpdatePushSubscription(ctx, id, nil)
}

// SendTest отправляет тестовое уведомление на текущую подписку
func (s *UserService) SendTest(ctx context.Context, id uuid.UUID) error {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !u.Subscribed() {
		return ErrNoSubscription
	}

	ctx, cancel := context.WithTimeout(ctx, testSendTimeout)
	defer cancel()
	err = s.Transport.Send(ctx, json.RawMessage(u.PushSubscription), push.Message{
		Title: "Test Notification",
		Body:  "This is a test notification from PTP tracker.",
	})
	if err != nil {
		s.logger.Error("test notification failed", zap.Error(err), zap.String("user_id", id.String()))
		return err
	}
	return nil
}
