package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ptp_tracker/internal/api"
	"ptp_tracker/internal/api/handler"
	"ptp_tracker/internal/config"
	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"
	"ptp_tracker/internal/repository/postgres"
	"ptp_tracker/internal/service/collections"
	"ptp_tracker/internal/service/importer"
	"ptp_tracker/internal/service/push"
	"ptp_tracker/internal/service/reminder"
	"ptp_tracker/internal/service/sheet"
	"ptp_tracker/internal/service/tg"
	pkg_config "ptp_tracker/pkg/config"
	pkg_postgres "ptp_tracker/pkg/db/postgres"
	"ptp_tracker/pkg/masker"
	"ptp_tracker/pkg/zaplogger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Config{}
	cfgErr := pkg_config.LoadConfigFiles(&pkg_config.ConfigFile{
		Path:     envFile(),
		Optional: true,
		Config:   &cfg,
	})

	logger, err := zaplogger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfgErr != nil {
		logger.Fatal("error loading configs", zap.Error(cfgErr))
	}
	if err := masker.LogConfigs(logger, &cfg); err != nil {
		logger.Fatal("error logging configs", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbGorm, err := pkg_postgres.NewGormConnection(cfg.DBConfig, logger)
	if err != nil {
		logger.Fatal("error creating gorm connection", zap.Error(err))
	}
	if err := dbGorm.AutoMigrate(&model.User{}, &model.Customer{}, &model.PTP{}); err != nil {
		logger.Fatal("error migrating schema", zap.Error(err))
	}
	customerRepo := postgres.NewCustomerRepository(dbGorm)
	ptpRepo := postgres.NewPTPRepository(dbGorm)
	userRepo := postgres.NewUserRepository(dbGorm)

	router := &push.Router{}
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		router.WebPush = push.NewWebPush(push.WebPushConfig{
			Subscriber:      cfg.Subscriber,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             cfg.TTL,
		}, nil)
	} else {
		logger.Warn("VAPID keys are not set, web push is disabled")
	}

	var bot *tgbotapi.BotAPI
	if cfg.BotToken != "" {
		bot, err = tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			logger.Fatal("error creating bot", zap.Error(err))
		}
		router.Telegram = push.NewTelegram(bot)
		logger.Info("telegram bot authorized", zap.String("username", bot.Self.UserName))
	}

	var sheetService domain.SheetService
	if cfg.GoogleSheetConfig.Enabled() {
		s, err := sheet.NewSheetService(ctx,
			cfg.GoogleSheetConfig.CredentialsBase64,
			cfg.GoogleSheetConfig.SpreadsheetID,
			cfg.GoogleSheetConfig.SheetID,
			cfg.GoogleSheetConfig.PauseMs,
		)
		if err != nil {
			logger.Fatal("error creating sheet service", zap.Error(err))
		}
		sheetService = s
	}

	var normalizerOpts []importer.Option
	if cfg.FuzzyHeaders {
		normalizerOpts = append(normalizerOpts, importer.WithFuzzyHeaders())
	}
	importService := importer.NewService(customerRepo, sheetService, importer.NewNormalizer(normalizerOpts...), logger)
	customerService := collections.NewCustomerService(customerRepo, logger)
	ptpService := collections.NewPTPService(ptpRepo, customerRepo, logger)
	userService := collections.NewUserService(userRepo, router, logger)

	schedule, err := reminder.ParseSchedule(cfg.Schedule)
	if err != nil {
		logger.Fatal("error parsing reminder schedule", zap.Error(err), zap.String("schedule", cfg.Schedule))
	}
	location, err := cfg.ReminderConfig.Location()
	if err != nil {
		logger.Fatal("error loading reminder timezone", zap.Error(err))
	}
	dispatcher := reminder.NewDispatcher(ptpRepo, userRepo, router, schedule, reminder.RealClock(), reminder.Config{
		Location:        location,
		DeliveryTimeout: cfg.DeliveryTimeout,
		MaxConcurrent:   cfg.MaxConcurrent,
		Icon:            cfg.Icon,
	}, logger.Named("reminder"))

	server := api.NewServer(api.Handlers{
		Customer: handler.NewCustomer(customerService, importService, logger),
		PTP:      handler.NewPTP(ptpService, userService),
		Auth:     handler.NewAuth(userService),
		Reminder: handler.NewReminder(dispatcher),
	}, logger.Named("http"))

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: server.Router(), ReadHeaderTimeout: 10 * time.Second}
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: api.MetricsHandler(), ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dispatcher.Run(gctx)
		return nil
	})
	if bot != nil {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 30
		updates := bot.GetUpdatesChan(u)
		tgHandler := tg.NewTGHandler(bot, logger.Named("telegram"))
		g.Go(func() error {
			tgHandler.Run(gctx, updates)
			bot.StopReceivingUpdates()
			return nil
		})
	}
	for _, srv := range []*http.Server{apiSrv, metricsSrv} {
		g.Go(func() error {
			logger.Info("http server listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		dispatcher.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(apiSrv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func envFile() string {
	if path := os.Getenv("ENV_FILE"); path != "" {
		return path
	}
	return ".env"
}
