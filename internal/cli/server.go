package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"exam-paper-service/internal/app"
	"exam-paper-service/internal/config"
	"exam-paper-service/internal/infra/memory"
	pginfra "exam-paper-service/internal/infra/postgres"
	redisinfra "exam-paper-service/internal/infra/redis"
	transport "exam-paper-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the paper service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	// Paper documents live in Redis when configured; in-memory otherwise.
	var papers app.PaperStore = memory.NewPaperStore()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		papers = redisinfra.NewPaperStore(redisClient)
	}

	var exams app.ExamRepository = memory.NewExamRepository()
	var results app.ResultRepository = memory.NewResultRepository()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		db, err := openBun(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		exams = pginfra.NewExamRepository(db)
		results = pginfra.NewResultRepository(pool)
	}

	hub := app.NewHub()
	paperService := app.NewPaperService(papers)
	reconciler := app.NewReconciler(papers, exams)
	rankings := app.NewRankingEngine(results)

	apiHandler := transport.NewAPIHandler(paperService, reconciler, rankings, hub)
	wsHandler := transport.NewWSHandler(hub)

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	router.Get("/ws", wsHandler.ServeWS)
	router.Mount("/", apiHandler.Routes())

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting paper service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
