package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/board"
	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	interactionRepo := database.NewInteractionRepository(db)
	userRepo := database.NewUserRepository(db)
	sessionRepo := database.NewSessionRepository(db)

	// 2. Eventos e worker de e-mail
	var mailer queue.LeadWonMailer
	if cfg.MailEnabled() {
		mailer = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.MailNotifyTo)
	}
	eventWorker := queue.NewWorker(mailer, log.Named("queue"))

	events, checks, closeEvents, err := setupEvents(ctx, cfg, eventWorker, log)
	if err != nil {
		return err
	}
	defer closeEvents()

	// 3. UseCases
	authUC := usecase.NewAuthUseCase(userRepo, sessionRepo, cfg.SessionTTL)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo)
	importLeadsUC := usecase.NewImportLeadsUseCase(leadRepo)
	exportLeadsUC := usecase.NewExportLeadsUseCase(leadRepo)
	leadDetailsUC := usecase.NewLeadDetailsUseCase(leadRepo, interactionRepo)

	boardLog := log.Named("board")
	boards := board.NewRegistry(func(ownerID string) *board.Board {
		owned := database.NewOwnedLeads(ownerID, leadRepo, interactionRepo)
		opts := []board.Option{
			board.WithOwner(ownerID),
			board.WithEvents(events),
			board.WithLogger(boardLog),
			board.WithNotifier(board.LogNotifier{Logger: boardLog.With(zap.String("owner_id", ownerID))}),
		}
		if !cfg.SerializeTransitions {
			opts = append(opts, board.WithoutSerialization())
		}
		return board.New(owned, owned, opts...)
	})

	// 4. Handlers
	loginLimiter := handlers.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	go loginLimiter.Cleanup(ctx, 5*time.Minute)

	authHandler := handlers.NewAuthHandler(authUC, loginLimiter, boards, log.Named("auth"))
	boardHandler := handlers.NewBoardHandler(boards, log.Named("http"))
	leadHandler := handlers.NewLeadHandler(createLeadUC, importLeadsUC, exportLeadsUC, leadDetailsUC, boards, log.Named("http"))
	healthHandler := handlers.NewHealthHandler(db, checks)

	// 5. Workers
	if cfg.SessionCleanupInterval > 0 {
		go worker.NewSessionCleanupWorker(authUC, cfg.SessionCleanupInterval, log.Named("sessions")).Start(ctx)
	}

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/signup", authHandler.SignUp)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(authUC))

		r.Get("/me", authHandler.Me)

		r.Get("/board", boardHandler.Get)
		r.Post("/board/reload", boardHandler.Reload)
		r.Post("/board/moves", boardHandler.Move)

		r.Post("/leads", leadHandler.Create)
		r.Post("/leads/import", leadHandler.Import)
		r.Get("/leads/export", leadHandler.Export)
		r.Get("/leads/{id}", leadHandler.Details)
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("CRM server listening", zap.String("addr", cfg.HTTPAddr), zap.String("events", cfg.EventsBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupEvents conecta o backend de eventos escolhido e já inicia o consumidor.
func setupEvents(ctx context.Context, cfg *config.Config, w *queue.Worker, log *zap.Logger) (board.EventPublisher, map[string]handlers.HealthChecker, func(), error) {
	checks := map[string]handlers.HealthChecker{}

	switch cfg.EventsBackend {
	case config.EventsRabbitMQ:
		rabbit, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return nil, nil, nil, err
		}
		// Canal separado para consumir; o de publicação fica livre.
		consumeCh, err := rabbit.Conn.Channel()
		if err != nil {
			_ = rabbit.Close()
			return nil, nil, nil, fmt.Errorf("falha ao abrir canal de consumo: %w", err)
		}
		go func() {
			if err := w.Start(ctx, consumeCh, queue.QueueName); err != nil {
				log.Error("queue worker failed", zap.Error(err))
			}
		}()
		checks["rabbitmq"] = rabbit
		pub := instrumented{next: queue.NewProducer(rabbit.Ch), backend: config.EventsRabbitMQ}
		return pub, checks, func() { _ = rabbit.Close() }, nil

	case config.EventsNATS:
		conn, err := queue.ConnectNATS(cfg.NATSURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if _, err := queue.SubscribeNATS(conn, w); err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
		pub := queue.NewNATSPublisher(conn)
		checks["nats"] = pub
		return instrumented{next: pub, backend: config.EventsNATS}, checks, func() { _ = pub.Close() }, nil
	}

	return queue.NoopPublisher{}, checks, func() {}, nil
}

// instrumented conta falhas de publicação por backend.
type instrumented struct {
	next    board.EventPublisher
	backend string
}

func (p instrumented) PublishStageChanged(ctx context.Context, ev entity.StageChanged) error {
	err := p.next.PublishStageChanged(ctx, ev)
	if err != nil {
		middleware.RecordEventPublishError(p.backend)
	}
	return err
}
