package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"mesaYaBooking/internal/config"
	bookingport "mesaYaBooking/internal/modules/bookings/application/port"
	bookingusecase "mesaYaBooking/internal/modules/bookings/application/usecase"
	bookinghttp "mesaYaBooking/internal/modules/bookings/interface"
	inventoryport "mesaYaBooking/internal/modules/inventory/application/port"
	inventoryusecase "mesaYaBooking/internal/modules/inventory/application/usecase"
	inventoryhttp "mesaYaBooking/internal/modules/inventory/interface"
	realtimehandler "mesaYaBooking/internal/modules/realtime/application/handler"
	realtimeusecase "mesaYaBooking/internal/modules/realtime/application/usecase"
	realtimedomain "mesaYaBooking/internal/modules/realtime/domain"
	"mesaYaBooking/internal/modules/realtime/infrastructure"
	realtimehttp "mesaYaBooking/internal/modules/realtime/interface"
	rulesport "mesaYaBooking/internal/modules/rules/application/port"
	rulesusecase "mesaYaBooking/internal/modules/rules/application/usecase"
	ruleshttp "mesaYaBooking/internal/modules/rules/interface"
	"mesaYaBooking/internal/platform/broker"
	"mesaYaBooking/internal/platform/sweeper"
	"mesaYaBooking/internal/shared/auth"
	"mesaYaBooking/internal/shared/logging"
	memorystore "mesaYaBooking/internal/store/memory"
	mongostore "mesaYaBooking/internal/store/mongo"
)

type repositories struct {
	bookings   bookingport.BookingRepository
	tables     bookingport.TableTypeProvider
	rules      bookingport.RulesProvider
	tableAdmin inventoryport.TableTypeRepository
	usage      inventoryport.BookingUsage
	rulesAdmin rulesport.RulesRepository
	close      func(context.Context) error
}

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Bool("enabled", cfg.Kafka.Enabled), slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, err := buildRepositories(ctx, cfg)
	if err != nil {
		slog.Error("storage setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := repos.close(shutdownCtx); err != nil {
			slog.Warn("storage close failed", slog.Any("error", err))
		}
	}()

	hub := infrastructure.NewHub()
	broadcastUC := realtimeusecase.NewBroadcastUseCase(hub)

	// Booking events reach the hub either directly or through Kafka when a
	// broker is configured, so several instances stay in sync.
	publishers := bookingport.EventPublishers{}
	var kafkaPublisher *broker.KafkaPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher = broker.NewKafkaPublisher(cfg.Kafka.Brokers)
		publishers = append(publishers, kafkaPublisher)

		registry := infrastructure.NewHandlerRegistry()
		for _, topic := range realtimedomain.BookingTopics() {
			registry.Register(realtimehandler.NewBookingStreamHandler(topic, nil, broadcastUC))
		}
		broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, realtimedomain.BookingTopics())
	} else {
		publishers = append(publishers, infrastructure.NewHubPublisher(hub))
	}

	bookingSvc := bookingusecase.NewService(repos.bookings, repos.tables, repos.rules, publishers, cfg.Booking.BasePrice)
	inventorySvc := inventoryusecase.NewService(repos.tableAdmin, repos.usage)
	rulesSvc := rulesusecase.NewService(repos.rulesAdmin)

	noShowSweeper := sweeper.New(bookingSvc, cfg.Booking.SweepInterval)
	noShowSweeper.Start(ctx)
	defer noShowSweeper.Stop()

	validator := auth.NewJWTValidator(cfg.Security.JWTSecret)

	e := echo.New()
	e.Logger.SetOutput(log.Writer())

	api := e.Group("/api", auth.Middleware(validator))
	bookinghttp.NewHandler(bookingSvc).Register(api)
	inventoryhttp.NewHandler(inventorySvc).Register(api)
	ruleshttp.NewHandler(rulesSvc).Register(api)

	wsHandler := realtimehttp.NewWebsocketHandler(hub, validator)
	e.GET("/ws/bookings/:restaurant/:token", wsHandler)
	e.GET("/ws/bookings/:restaurant", wsHandler)
	e.GET("/ws/notifications", realtimehttp.NewNotificationsWebsocketHandler(hub, validator))

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			slog.Warn("kafka publisher close failed", slog.Any("error", err))
		}
	}
	e.Close()
}

func buildRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	if cfg.Mongo.Enabled {
		storage, err := mongostore.New(mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			return repositories{}, err
		}
		if err := storage.CreateIndexes(ctx); err != nil {
			return repositories{}, err
		}
		slog.Info("storage ready", slog.String("kind", "mongo"), slog.String("database", cfg.Mongo.Database))

		bookings := mongostore.NewBookingRepository(storage)
		tables := mongostore.NewTableTypeRepository(storage)
		rules := mongostore.NewRulesRepository(storage)
		return repositories{
			bookings:   bookings,
			tables:     tables,
			rules:      rules,
			tableAdmin: tables,
			usage:      bookings,
			rulesAdmin: rules,
			close:      storage.Close,
		}, nil
	}

	store := memorystore.NewStore()
	if cfg.Booking.SeedRestaurantID != "" {
		if err := store.Seed(ctx, cfg.Booking.SeedRestaurantID); err != nil {
			return repositories{}, err
		}
		slog.Info("demo data seeded", slog.String("restaurantId", cfg.Booking.SeedRestaurantID))
	}
	slog.Info("storage ready", slog.String("kind", "memory"))
	return repositories{
		bookings:   store.Bookings(),
		tables:     store.Tables(),
		rules:      store.Rules(),
		tableAdmin: store.Tables(),
		usage:      store.Bookings(),
		rulesAdmin: store.Rules(),
		close:      func(context.Context) error { return nil },
	}, nil
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
