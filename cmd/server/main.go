package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/SAP-F-2025/study-service/internal/auth"
	"github.com/SAP-F-2025/study-service/internal/config"
	"github.com/SAP-F-2025/study-service/internal/generation"
	"github.com/SAP-F-2025/study-service/internal/handlers"
	"github.com/SAP-F-2025/study-service/internal/repositories"
	"github.com/SAP-F-2025/study-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/study-service/internal/services"
	"github.com/SAP-F-2025/study-service/internal/session"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/SAP-F-2025/study-service/internal/validator"
	"github.com/SAP-F-2025/study-service/pkg"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "study-service",
	Short:         "Study Buddy API: flashcards, quizzes and study guides from your notes",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE:  runMigrate,
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect registered accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered accounts",
	RunE:  runUsersList,
}

var (
	usersLimit  int
	usersOffset int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	usersListCmd.Flags().IntVar(&usersLimit, "limit", 50, "maximum number of users")
	usersListCmd.Flags().IntVar(&usersOffset, "offset", 0, "number of users to skip")
	usersCmd.AddCommand(usersListCmd)

	rootCmd.AddCommand(serveCmd, migrateCmd, usersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := utils.NewLogger(os.Stdout, cfg.IsProduction())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := pkg.MigrateDatabase(db); err != nil {
		return err
	}
	logger.Info("Database ready", "driver", cfg.DatabaseDriver)

	store, closeStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := generation.New(ctx, cfg.Generation, logger)
	if err != nil {
		return err
	}
	if !client.IsConfigured() {
		logger.Warn("No API key configured, study generation is disabled", "provider", client.Name())
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return fmt.Errorf("create event publisher: %w", err)
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(postgres.NewRepository(db), client, publisher, logger, validator.New())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	appLogger := utils.NewSlogLogger(logger)
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(appLogger), utils.ContextLogger(appLogger))

	handlers.NewHandlerManager(serviceManager, handlers.RouterConfig{
		Sessions: session.NewManager(store, logger),
		Tokens:   auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL),
		Session: handlers.SessionOptions{
			TTL:          cfg.SessionTTL,
			SecureCookie: cfg.IsProduction(),
		},
		IsAdmin: cfg.IsAdmin,
	}, appLogger).SetupRoutes(router)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin", "X-Request-ID"},
		ExposedHeaders:   []string{handlers.SessionHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newSessionStore returns the configured session store and a function releasing it.
func newSessionStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (session.Store, func(), error) {
	switch cfg.SessionStore {
	case "redis":
		client, err := pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using redis session store")
		return session.NewRedisStore(client, cfg.SessionTTL), func() { client.Close() }, nil
	case "", "memory":
		logger.Info("Using in-memory session store")
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
}

func openRepository(cfg *config.Config) (repositories.Repository, error) {
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return postgres.NewRepository(db), nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := pkg.MigrateDatabase(db); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s database\n", cfg.DatabaseDriver)
	return nil
}

func runUsersList(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}

	users, total, err := repo.Users().List(cmd.Context(), repositories.UserFilters{Limit: usersLimit, Offset: usersOffset})
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tNAME\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.Email, u.Name, u.CreatedAt.Format(time.RFC3339))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d users\n", len(users), total)
	return nil
}
