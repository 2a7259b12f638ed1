package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wallet-api/internal/auth"
	"wallet-api/internal/config"
	apphttp "wallet-api/internal/http"
	"wallet-api/internal/logging"
	"wallet-api/internal/repository"
	"wallet-api/internal/repository/postgres"
	"wallet-api/internal/repository/sqlite"
	"wallet-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.Fatalf("setup logger: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, users, accounts, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret)
	userService := service.NewUserService(
		users,
		accounts,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		tokens,
		service.RandomOpeningBalance,
	)
	accountService := service.NewAccountService(accounts)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, accountService, tokens, logger)
	handler.RegisterRoutes(router, cfg.Server.BasePath)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func openStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*sql.DB, repository.UserRepository, repository.AccountRepository, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.Path, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Infof("using sqlite database %s", cfg.Database.Path)
		return db, sqlite.NewUserRepository(db), sqlite.NewAccountRepository(db), nil
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Database.DSN, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("using postgres database")
		return db, postgres.NewUserRepository(db), postgres.NewAccountRepository(db), nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
