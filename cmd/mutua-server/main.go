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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mutua/mutua/internal/config"
	"github.com/mutua/mutua/internal/domain/authorization"
	"github.com/mutua/mutua/internal/domain/billing"
	"github.com/mutua/mutua/internal/domain/catalog"
	"github.com/mutua/mutua/internal/domain/patient"
	"github.com/mutua/mutua/internal/domain/usage"
	"github.com/mutua/mutua/internal/domain/user"
	"github.com/mutua/mutua/internal/platform/auth"
	"github.com/mutua/mutua/internal/platform/db"
	"github.com/mutua/mutua/internal/platform/middleware"
	"github.com/mutua/mutua/internal/platform/seed"
)

// UserDirectoryAdapter adapts the user service to the auth.UserDirectory
// interface, avoiding a circular import between the auth and user packages.
type UserDirectoryAdapter struct {
	svc *user.Service
}

// NewUserDirectoryAdapter creates a new adapter.
func NewUserDirectoryAdapter(svc *user.Service) *UserDirectoryAdapter {
	return &UserDirectoryAdapter{svc: svc}
}

// Lookup implements auth.UserDirectory.
func (a *UserDirectoryAdapter) Lookup(ctx context.Context, username string) (*auth.Account, error) {
	u, err := a.svc.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, auth.ErrUnknownAccount
		}
		return nil, err
	}
	return &auth.Account{Username: u.Username, Active: u.IsActive}, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "mutua-server",
		Short: "Mutua clinic administration API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations on the primary store",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("migrate needs DATABASE_URL; the sqlite fallback creates its schema on open")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("migrate needs DATABASE_URL; the sqlite fallback creates its schema on open")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			store, err := db.Connect(ctx, cfg.DatabaseURL, cfg.SQLitePath, cfg.DBMaxConns, cfg.DBMinConns, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			r := buildRepos(store)
			seeder := seed.New(r.users, r.patients, r.treatments, r.clinicServices, r.auths, r.invoices, r.usedServices, logger)
			return seeder.Run(ctx, cfg.AdminUser, cfg.AdminPassword)
		},
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

// repos bundles one repository per table, backed by whichever engine the
// store selected.
type repos struct {
	users          user.Repository
	patients       patient.Repository
	treatments     catalog.TreatmentRepository
	clinicServices catalog.ClinicServiceRepository
	auths          authorization.Repository
	invoices       billing.Repository
	usedServices   usage.Repository
}

func buildRepos(store *db.Store) repos {
	if store.Driver == db.DriverPostgres {
		return repos{
			users:          user.NewRepoPG(store.Pool),
			patients:       patient.NewRepoPG(store.Pool),
			treatments:     catalog.NewTreatmentRepoPG(store.Pool),
			clinicServices: catalog.NewClinicServiceRepoPG(store.Pool),
			auths:          authorization.NewRepoPG(store.Pool),
			invoices:       billing.NewRepoPG(store.Pool),
			usedServices:   usage.NewRepoPG(store.Pool),
		}
	}
	return repos{
		users:          user.NewRepoSQLite(store.SQLite),
		patients:       patient.NewRepoSQLite(store.SQLite),
		treatments:     catalog.NewTreatmentRepoSQLite(store.SQLite),
		clinicServices: catalog.NewClinicServiceRepoSQLite(store.SQLite),
		auths:          authorization.NewRepoSQLite(store.SQLite),
		invoices:       billing.NewRepoSQLite(store.SQLite),
		usedServices:   usage.NewRepoSQLite(store.SQLite),
	}
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	store, err := db.Connect(ctx, cfg.DatabaseURL, cfg.SQLitePath, cfg.DBMaxConns, cfg.DBMinConns, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to a store")
	}
	defer store.Close()

	r := buildRepos(store)

	// Services
	userSvc := user.NewService(r.users)
	patientSvc := patient.NewService(r.patients)
	catalogSvc := catalog.NewService(r.treatments, r.clinicServices)
	authzSvc := authorization.NewService(r.auths, patientSvc, catalogSvc)
	billingSvc := billing.NewService(r.invoices, patientSvc, logger)
	usageSvc := usage.NewService(r.usedServices, patientSvc)

	if cfg.SeedOnStart {
		seeder := seed.New(r.users, r.patients, r.treatments, r.clinicServices, r.auths, r.invoices, r.usedServices, logger)
		if err := seeder.Run(ctx, cfg.AdminUser, cfg.AdminPassword); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	issuer := auth.NewIssuer([]byte(cfg.SecretKey), cfg.TokenTTL())

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
			"driver": string(store.Driver),
		})
	})

	// Everything except /token and /health requires a bearer token.
	public := e.Group("")
	protected := e.Group("", auth.Middleware(issuer, NewUserDirectoryAdapter(userSvc)))

	user.NewHandler(userSvc, issuer).RegisterRoutes(public, protected)
	patient.NewHandler(patientSvc).RegisterRoutes(protected)
	catalog.NewHandler(catalogSvc).RegisterRoutes(protected)
	authorization.NewHandler(authzSvc).RegisterRoutes(protected)
	billing.NewHandler(billingSvc).RegisterRoutes(protected)
	usage.NewHandler(usageSvc).RegisterRoutes(protected)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
