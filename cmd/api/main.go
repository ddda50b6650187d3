package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/config"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/database"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/middleware"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/modules/auth"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/modules/availability"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/modules/booking"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/modules/catalog"
	syncmod "github.com/OlegRadinuk/lifestyle-crimea/internal/modules/sync"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/jwt"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/notify"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/validator"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := validator.RegisterBindings(); err != nil {
		log.Fatalf("validator: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	apartmentRepo := repository.NewApartmentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	externalRepo := repository.NewExternalBookingRepository(db)
	sourceRepo := repository.NewIcsSourceRepository(db)
	syncLogRepo := repository.NewSyncLogRepository(db)
	tokenRepo := repository.NewExportTokenRepository(db)

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	notifier := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)

	authService, err := auth.NewService(cfg.AdminPassword, tokens)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	catalogService := catalog.NewService(apartmentRepo)
	availabilityService := availability.NewService(apartmentRepo, bookingRepo, externalRepo)
	bookingService := booking.NewService(bookingRepo, apartmentRepo, notifier)

	hub := syncmod.NewHub()
	fetcher := syncmod.NewFetcher(cfg.FetchTimeout)
	syncService := syncmod.NewService(sourceRepo, externalRepo, syncLogRepo, fetcher, hub, cfg.SyncTimeout)
	exportService := syncmod.NewExportService(tokenRepo, bookingRepo, syncLogRepo)

	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	availabilityHandler := availability.NewHandler(availabilityService)
	bookingHandler := booking.NewHandler(bookingService)
	syncHandler := syncmod.NewHandler(syncService, hub)
	exportHandler := syncmod.NewExportHandler(exportService)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), middleware.CORS())

	api := router.Group("/api/v1")
	authHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)
	availabilityHandler.RegisterRoutes(api)
	bookingHandler.RegisterRoutes(api)
	exportHandler.RegisterRoutes(api)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(tokens))
	catalogHandler.RegisterAdminRoutes(admin)
	bookingHandler.RegisterAdminRoutes(admin)
	syncHandler.RegisterAdminRoutes(admin)
	exportHandler.RegisterAdminRoutes(admin)

	scheduler := syncmod.NewScheduler(syncService, cfg.SyncSchedule)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	scheduler.Stop()
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
