package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"charity-slots/handlers"
	"charity-slots/middleware"
	"charity-slots/models"
	"charity-slots/services"
	"charity-slots/utils"
	"charity-slots/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // logos only, 10MB is plenty
	})

	// 🔐 GLOBAL: only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles, X-Device-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Charity{},
		&models.GlobalPot{},
		&models.Spin{},
		&models.Donation{},
		&models.CreditPurchase{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	// Exactly one pot row exists; seed it on first boot
	if err := db.FirstOrCreate(&models.GlobalPot{}, models.GlobalPot{ID: models.GlobalPotID}).Error; err != nil {
		log.Fatal("failed to seed global pot:", err)
	}

	winChance := 0.05
	if v := os.Getenv("SPIN_WIN_CHANCE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			winChance = parsed
		} else {
			log.Printf("⚠️  Invalid SPIN_WIN_CHANCE %q, using default", v)
		}
	}

	engine := services.NewSlotEngine(winChance)
	spinService := services.NewSpinService(db, engine)
	potService := services.NewPotService(db)
	charityService := services.NewCharityService(db)
	accountService := services.NewAccountService(db)
	purchaseService := services.NewPurchaseService(db)

	authServiceURL := os.Getenv("AUTH_SERVICE_URL")
	if authServiceURL == "" {
		log.Fatal("AUTH_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("SLOTS_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("SLOTS_SERVICE_TOKEN environment variable not set")
	}

	authClient := services.NewAuthServiceClient(authServiceURL, serviceToken)
	syncWorker := workers.NewUserSyncWorker(db, authServiceURL, "/api/v1/public/profiles", serviceToken)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncWorker.Start(ctx)
	accountService.StartDailyCreditScheduler()

	handlers.SetupSlotRoutes(app, spinService, potService, authClient)
	handlers.SetupCharityRoutes(app, charityService)
	handlers.SetupAccountRoutes(app, accountService, purchaseService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ User Sync Worker running")
	log.Println("✅ Daily credit scheduler running")
	log.Printf("✅ Spin win chance: %.2f", winChance)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
