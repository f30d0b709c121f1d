package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"
	"ptp_tracker/internal/service/push"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDeliveryTimeout = 10 * time.Second
	defaultMaxConcurrent   = 8
	sentTTL                = 48 * time.Hour
)

type Config struct {
	Location        *time.Location // nil - локальное время сервера
	DeliveryTimeout time.Duration
	MaxConcurrent   int
	Icon            string
}

// Report итог одного тика
type Report struct {
	Due        int
	Recipients int
	Sent       int
	Failed     int
	Skipped    int
	Cleared    int
}

type outcome int

const (
	outcomeSent outcome = iota
	outcomeFailed
	outcomeSkipped
)

// Dispatcher раз в сутки рассылает напоминания об обещаниях на сегодня
type Dispatcher struct {
	logger    *zap.Logger
	PTPRepo   domain.PTPRepo
	UserRepo  domain.UserRepo
	Transport push.Transport

	schedule Schedule
	clock    Clock
	cfg      Config
	// владелец+дата успешной доставки, чтобы не слать дважды за день
	sent *gocache.Cache

	forceUpdateCh chan struct{}
	stopCh        chan struct{}
	stopOnce      sync.Once
	mu            sync.Mutex
}

func NewDispatcher(ptpRepo domain.PTPRepo, userRepo domain.UserRepo, transport push.Transport, schedule Schedule, clock Clock, cfg Config, logger *zap.Logger) *Dispatcher {
	if clock == nil {
		clock = RealClock()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = defaultDeliveryTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultMaxConcurrent
	}
	return &Dispatcher{
		logger:        logger,
		PTPRepo:       ptpRepo,
		UserRepo:      userRepo,
		Transport:     transport,
		schedule:      schedule,
		clock:         clock,
		cfg:           cfg,
		sent:          gocache.New(sentTTL, time.Hour),
		forceUpdateCh: make(chan struct{}, 1),
		stopCh:        make(chan struct{}),
	}
}

// Run ждет расписания и выполняет тики по одному, пока не отменен ctx или не вызван Stop
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		now := d.clock.Now().In(d.cfg.Location)
		next := d.schedule.Next(now)
		d.logger.Debug("next reminder tick scheduled", zap.Time("at", next))

		select {
		case <-d.clock.After(next.Sub(now)):
			d.runTick(ctx)
		case <-d.forceUpdateCh:
			d.runTick(ctx)
		case <-d.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) runTick(ctx context.Context) {
	if _, err := d.Tick(ctx); err != nil {
		d.logger.Error("reminder tick failed", zap.Error(err))
	}
}

// ForceUpdate немедленно запускает тик
func (d *Dispatcher) ForceUpdate() {
	select {
	case d.forceUpdateCh <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
}

// Tick выбирает обещания на сегодня и отправляет по одному уведомлению каждому владельцу.
// Ошибка доставки одному владельцу не прерывает остальных.
func (d *Dispatcher) Tick(ctx context.Context) (Report, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var report Report
	start, end := DayBounds(d.clock.Now().In(d.cfg.Location))

	ptps, err := d.PTPRepo.FindDueBetween(ctx, start, end)
	if err != nil {
		tickTotal.WithLabelValues("error").Inc()
		return report, err
	}
	due := SelectDue(ptps, start, end)
	groups := GroupByOwner(due)
	report.Due = len(due)
	report.Recipients = len(groups)
	d.logger.Info("running daily PTP check", zap.Int("due", report.Due), zap.Int("owners", report.Recipients))

	day := start.Format("2006-01-02")
	var (
		resMu sync.Mutex
		g     errgroup.Group
	)
	g.SetLimit(d.cfg.MaxConcurrent)
	for ownerID, list := range groups {
		g.Go(func() error {
			res, cleared := d.deliver(ctx, ownerID, list, day)
			resMu.Lock()
			defer resMu.Unlock()
			switch res {
			case outcomeSent:
				report.Sent++
			case outcomeFailed:
				report.Failed++
			default:
				report.Skipped++
			}
			if cleared {
				report.Cleared++
			}
			return nil
		})
	}
	_ = g.Wait()

	tickTotal.WithLabelValues("ok").Inc()
	d.logger.Info("daily PTP check finished",
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
		zap.Int("cleared", report.Cleared),
	)
	return report, nil
}

func (d *Dispatcher) deliver(ctx context.Context, ownerID uuid.UUID, ptps []model.PTP, day string) (outcome, bool) {
	key := ownerID.String() + ":" + day
	if _, ok := d.sent.Get(key); ok {
		deliveriesTotal.WithLabelValues("duplicate").Inc()
		return outcomeSkipped, false
	}

	user, err := d.UserRepo.FindByID(ctx, ownerID)
	if err != nil {
		d.logger.Warn("error getting reminder owner", zap.Error(err), zap.String("user", ownerID.String()))
		deliveriesTotal.WithLabelValues("skipped").Inc()
		return outcomeSkipped, false
	}
	if !user.Subscribed() {
		deliveriesTotal.WithLabelValues("skipped").Inc()
		return outcomeSkipped, false
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.DeliveryTimeout)
	defer cancel()
	err = d.Transport.Send(sendCtx, json.RawMessage(user.PushSubscription), ComposeMessage(ptps, d.cfg.Icon))
	if err != nil {
		d.logger.Error("error sending reminder", zap.Error(err), zap.String("user", user.Name), zap.String("user_id", ownerID.String()))
		deliveriesTotal.WithLabelValues("failed").Inc()
		if !errors.Is(err, push.ErrSubscriptionGone) {
			return outcomeFailed, false
		}
		if err := d.UserRepo.UpdatePushSubscription(ctx, ownerID, nil); err != nil {
			d.logger.Error("error clearing gone subscription", zap.Error(err), zap.String("user_id", ownerID.String()))
			return outcomeFailed, false
		}
		d.logger.Info("gone push subscription cleared", zap.String("user_id", ownerID.String()))
		return outcomeFailed, true
	}

	d.sent.Set(key, struct{}{}, gocache.DefaultExpiration)
	deliveriesTotal.WithLabelValues("sent").Inc()
	d.logger.Info("reminder sent", zap.String("user", user.Name), zap.Int("ptps", len(ptps)))
	return outcomeSent, false
}
