package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"github.com/stagefront/concert-reservation-system/internal/booking"
	"github.com/stagefront/concert-reservation-system/internal/domain"
	"github.com/stagefront/concert-reservation-system/internal/mailer"
	"github.com/stagefront/concert-reservation-system/internal/notify"
	"github.com/stagefront/concert-reservation-system/internal/queue"
	"github.com/stagefront/concert-reservation-system/internal/repository"
	appvalidator "github.com/stagefront/concert-reservation-system/internal/validator"
	"github.com/stagefront/concert-reservation-system/internal/vcs"
)

const serviceName = "concert-reservation-api"

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	publisher      queue.Publisher

	concertRepo domain.ConcertRepository
	userRepo    domain.UserRepository
	bookingRepo domain.BookingRepository

	ledger      *booking.Ledger
	coordinator *booking.Coordinator
	registry    *notify.Registry
	dispatcher  *notify.Dispatcher
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	AMQP             AMQPConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type AMQPConfig struct {
	URL string
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "StageFront <no-reply@stagefront.example>", "SMTP sender")

	flag.StringVar(&cfg.AMQP.URL, "amqp-url", "", "RabbitMQ URL (empty disables event publishing)")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL (empty disables telemetry)")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	app, err := New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.Serve()
}

func New(cfg Config) (*Application, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		NewSessionManager(redisClient),
		repository.NewPostgresConcertRepository(db),
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresBookingRepository(db),
	)

	if cfg.AMQP.URL != "" {
		publisher, err := queue.NewAMQPPublisher(cfg.AMQP.URL)
		if err != nil {
			app.Close()
			return nil, err
		}

		app.publisher = publisher
	}

	return app, nil
}

// NewApp assembles an Application from its collaborators. The in-memory
// ledger, watcher registry and dispatcher are always built here so every
// construction path shares the same booking pipeline.
func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	concertRepo domain.ConcertRepository,
	userRepo domain.UserRepository,
	bookingRepo domain.BookingRepository,
) *Application {

	app := &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		mailer:         mailer,
		sessionManager: sessionManager,
		concertRepo:    concertRepo,
		userRepo:       userRepo,
		bookingRepo:    bookingRepo,
	}

	app.ledger = booking.NewLedger()
	app.registry = notify.NewRegistry()
	app.dispatcher = notify.NewDispatcher(app.registry, logger)
	app.coordinator = booking.NewCoordinator(app.ledger, app.concertRepo, app.bookingRepo, app.dispatcher, logger)

	return app
}

// PendingWatchers reports how many capacity subscriptions are suspended.
func (app *Application) PendingWatchers() int {
	return app.registry.Len()
}

// Close releases the connection pools. Safe to call more than once.
func (app *Application) Close() {
	if app.db != nil {
		app.db.Close()
		app.db = nil
	}

	if app.redis != nil {
		app.redis.Close()
		app.redis = nil
	}

	if closer, ok := app.publisher.(*queue.AMQPPublisher); ok {
		closer.Close()
		app.publisher = nil
	}
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if cfg.OtelCollectorUrl != "" {
		if err := redisotel.InstrumentTracing(rdb); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)

	if cfg.OtelCollectorUrl != "" {
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) Serve() error {
	srv := &http.Server{
		Addr:        fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:     app.Routes(),
		IdleTimeout: time.Minute,
		ReadTimeout: 5 * time.Second,
		ErrorLog:    slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		// Release suspended subscription handlers so the server can drain.
		app.registry.CancelAll()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	if app.config.OtelCollectorUrl != "" {
		r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	}

	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)
	r.Post("/login", app.Login)
	r.Post("/logout", app.Logout)
	r.Get("/seats/{date}", app.GetSeatsByDate)

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Post("/bookings", app.CreateBooking)
		r.Get("/bookings", app.GetUserBookings)
		r.Get("/bookings/{id}", app.GetBookingByID)
		r.Post("/subscribe/concert-info", app.SubscribeConcertInfo)
	})

	return r
}
