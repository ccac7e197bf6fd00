package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/config"
	"go-hotel-pms/internal/repository"
	"go-hotel-pms/internal/service"
	"go-hotel-pms/pkg/database"
	"go-hotel-pms/pkg/jwt"
	applogger "go-hotel-pms/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "email of the account to reset")
	password := flag.String("password", "", "new password, at least 8 characters")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("both -email and -password are required")
	}

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := applogger.NewLogger(cfg.LogLevel, "console", "reset-password")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database(), zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}

	// 3. Reset through the auth service so every open session is revoked too
	auth := service.NewAuthService(
		repository.NewUserRepo(db),
		jwt.NewSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		access.NewEvaluator(access.NewCatalog(), zlog),
		cfg.SessionIdleTimeout,
		zlog,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := auth.SetPassword(ctx, *email, *password); err != nil {
		zlog.Fatal("password reset failed", zap.String("email", *email), zap.Error(err))
	}

	zlog.Info("password reset, existing sessions revoked", zap.String("email", *email))
}
