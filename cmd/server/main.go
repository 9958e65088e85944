package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/azulroute/tour-booking-api/internal/catalog"
	"github.com/azulroute/tour-booking-api/internal/config"
	"github.com/azulroute/tour-booking-api/internal/database"
	"github.com/azulroute/tour-booking-api/internal/handler"
	"github.com/azulroute/tour-booking-api/internal/middleware"
	"github.com/azulroute/tour-booking-api/internal/notify"
	"github.com/azulroute/tour-booking-api/internal/payment"
	"github.com/azulroute/tour-booking-api/internal/reminder"
	"github.com/azulroute/tour-booking-api/internal/repository"
	"github.com/azulroute/tour-booking-api/internal/router"
)

// reminderInterval controls how often the in-process reminder scan runs. The
// batch is idempotent, so a generous interval is enough; the cron route
// exists for deployments that prefer an external scheduler.
const reminderInterval = time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is absent; features degrade

	// Repositories
	tourRepo := repository.NewTourRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	siteConfigRepo := repository.NewSiteConfigRepo(db)
	adminRepo := repository.NewAdminRepo(db)
	subscriberRepo := repository.NewSubscriberRepo(db)

	// Domain services
	catalogSvc := catalog.NewService(tourRepo, rdb, cfg.BaseLang)
	stripeSvc := payment.NewStripeService(cfg.StripeSecretKey, catalogSvc, cfg.BaseLang)
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail, cfg.FromName, cfg.AdminEmail)
	publisher := notify.NewPublisher(cfg.AMQPURL)
	dispatcher := notify.NewDispatcher(publisher, mailer)
	reminderJob := reminder.NewJob(reservationRepo, mailer)

	// Background workers. The consumer only runs when a broker is configured;
	// without one the dispatcher already sent emails in-process.
	if cfg.AMQPURL != "" {
		go notify.StartReservationConsumer(cfg.AMQPURL, mailer)
	}
	go reminderJob.RunEvery(context.Background(), reminderInterval)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterPublic(e, router.PublicHandlers{
		Health:     handler.NewHealthHandler(db, stripeSvc),
		Catalog:    handler.NewCatalogHandler(catalogSvc),
		Payment:    handler.NewPaymentHandler(stripeSvc, cfg.CurrencyDef, cfg.StripePublishableKey),
		Booking:    handler.NewBookingHandler(catalogSvc, reservationRepo, dispatcher),
		Review:     handler.NewReviewHandler(reviewRepo),
		Newsletter: handler.NewNewsletterHandler(subscriberRepo),
		Reminder:   handler.NewReminderHandler(reminderJob),
	}, cacheMW)
	router.RegisterAdmin(e,
		handler.NewAdminAuthHandler(adminRepo, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost),
		handler.NewAdminHandler(catalogSvc, tourRepo, reservationRepo, reviewRepo, siteConfigRepo, subscriberRepo),
		cfg.JWTSecret,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
