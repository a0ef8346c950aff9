package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bidhall/auctionhouse/internal/adapters/api"
	infradb "github.com/bidhall/auctionhouse/internal/adapters/database"
	"github.com/bidhall/auctionhouse/internal/config"
	"github.com/bidhall/auctionhouse/internal/domain/auctions"
	"github.com/bidhall/auctionhouse/internal/domain/bids"
	"github.com/bidhall/auctionhouse/internal/domain/users"
	"github.com/bidhall/auctionhouse/migrations"
	pkgdb "github.com/bidhall/auctionhouse/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load environment variables (local overrides .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Unable to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Initialize Postgres Connection Pool
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Unable to create connection pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if pingErr := pool.Ping(ctx); pingErr != nil {
		logger.Error("Unable to ping database", "error", pingErr)
		os.Exit(1)
	}
	logger.Info("Postgres Connected")

	// 2. Run migrations (goose needs database/sql)
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Unable to open database for migrations", "error", err)
		os.Exit(1)
	}
	if migrateErr := migrations.Migrate(migrationDB); migrateErr != nil {
		logger.Error("Unable to run migrations", "error", migrateErr)
		os.Exit(1)
	}
	_ = migrationDB.Close()
	logger.Info("Migrations applied")

	// 3. Initialize Repositories (Infrastructure Layer)
	txManager := pkgdb.NewPostgresTransactionManager(pool, cfg.LockTimeout)
	userRepo := infradb.NewPostgresUserRepository(pool)
	auctionRepo := infradb.NewPostgresAuctionRepository(pool)
	bidRepo := infradb.NewPostgresBidRepository(pool)

	// 4. Initialize Services (Domain Layer)
	userService := users.NewService(userRepo)
	auctionService := auctions.NewService(auctionRepo)
	bidService := bids.NewService(txManager, bidRepo, auctionRepo)

	// 5. Initialize HTTP Adapter
	handler := api.NewHandler(auctionService, bidService, userService, logger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler.Routes(),
	}

	go func() {
		logger.Info("Starting Auction House API", "addr", cfg.Addr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("Server failed", "error", serveErr)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("Shutdown failed", "error", shutdownErr)
	}
	logger.Info("Server stopped")
}
