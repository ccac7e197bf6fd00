package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/config"
	"go-hotel-pms/internal/handler"
	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/internal/repository"
	"go-hotel-pms/internal/service"
	"go-hotel-pms/pkg/database"
	"go-hotel-pms/pkg/jwt"
	"go-hotel-pms/pkg/lock"
	applogger "go-hotel-pms/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := applogger.NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.AppName)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database(), zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		zlog.Fatal("auto-migrate failed", zap.Error(err))
	}

	// 3. Allocation lock: Redis when configured, in-process otherwise
	ctx := context.Background()
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisAddr != "" {
		client, err := lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zlog.Fatal("redis connection failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer client.Close()
		locker = lock.NewRedisLocker(client)
		zlog.Info("identifier allocation locked through redis", zap.String("addr", cfg.RedisAddr))
	} else {
		zlog.Warn("REDIS_ADDR not set, identifier allocation is only safe with a single instance")
	}

	format := cfg.IdentifierFormat()
	if format == identifier.FormatLegacy {
		zlog.Warn("legacy user identifier format selected; numbers are COUNT+1 and can collide after role changes")
	}

	// 4. Dependency Injection (Wiring Layers)
	identifierRepo := repository.NewIdentifierRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	vendorRepo := repository.NewVendorRepo(db)
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	evaluator := access.NewEvaluator(access.NewCatalog(), zlog.Named("access"))
	signer := jwt.NewSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	allocator := service.NewAllocator(db, identifierRepo, locker, cfg.IDAllocRetries, cfg.IDLockTTL, zlog.Named("idgen"))

	svc := handler.Services{
		Auth:      service.NewAuthService(userRepo, signer, evaluator, cfg.SessionIdleTimeout, zlog),
		Hotels:    service.NewHotelService(db, hotelRepo, vendorRepo, userRepo, auditRepo, allocator, evaluator, zlog),
		Staff:     service.NewStaffService(hotelRepo, userRepo, allocator, evaluator, format, zlog),
		Vendors:   service.NewVendorService(vendorRepo, allocator, evaluator, zlog),
		Dashboard: service.NewDashboardService(hotelRepo, userRepo, evaluator),
		Evaluator: evaluator,
	}

	// 5. Seed the GOD admin of the system hotel
	if err := seedGodAdmin(ctx, cfg, svc.Staff, userRepo, os.Stderr, zlog); err != nil {
		zlog.Warn("failed to seed GOD admin", zap.Error(err))
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	handler.SetupRoutes(app, svc, zlog)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Panic("listen failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}

// seedGodAdmin creates the first GOD admin in hotel 0000000000 if the seed
// email is not registered yet. Without SEED_ADMIN_PASSWORD a random password is
// generated and written once to out, never to the log.
func seedGodAdmin(ctx context.Context, cfg *config.Config, staff service.StaffService, users repository.UserRepository, out io.Writer, zlog *zap.Logger) error {
	exists, err := users.EmailExists(ctx, cfg.SeedAdminEmail)
	if err != nil || exists {
		return err
	}

	password := cfg.SeedAdminPassword
	generated := password == ""
	if generated {
		password = uuid.NewString()
	}

	bootstrap := service.Actor{UserID: "system", HotelID: identifier.SystemHotelID, Role: access.RoleGodAdmin}
	admin, err := staff.Create(ctx, bootstrap, identifier.SystemHotelID, &service.CreateStaffRequest{
		Email:    cfg.SeedAdminEmail,
		Password: password,
		FullName: "GOD Administrator",
		Role:     access.RoleGodAdmin,
	})
	if err != nil {
		return err
	}

	zlog.Warn("GOD admin created, change the password after first login",
		zap.String("user_id", admin.ID),
		zap.String("email", admin.Email),
		zap.Bool("generated_password", generated),
	)
	if generated {
		fmt.Fprintf(out, "\nGOD admin %s created with generated password: %s\n\n", admin.Email, password)
	}
	return nil
}
