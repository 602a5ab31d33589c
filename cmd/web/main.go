package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/creativestories/backend/internal/common/clock"
	"github.com/creativestories/backend/internal/common/config"
	"github.com/creativestories/backend/internal/common/db"
	commonhttp "github.com/creativestories/backend/internal/common/http"
	"github.com/creativestories/backend/internal/common/logger"
	srv "github.com/creativestories/backend/internal/common/server"
	"github.com/creativestories/backend/internal/mail"
	"github.com/creativestories/backend/internal/newsletter/compose"
	newsletterhttp "github.com/creativestories/backend/internal/newsletter/http"
	newsletterservice "github.com/creativestories/backend/internal/newsletter/service"
	storyhttp "github.com/creativestories/backend/internal/story/http"
	storyrepo "github.com/creativestories/backend/internal/story/repository"
	storyservice "github.com/creativestories/backend/internal/story/service"
	subscriberhttp "github.com/creativestories/backend/internal/subscriber/http"
	subscriberrepo "github.com/creativestories/backend/internal/subscriber/repository"
	subscriberservice "github.com/creativestories/backend/internal/subscriber/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "web", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database := db.Connect(log, cfg.MongoURI, cfg.MongoDatabase)

	clk := clock.NewRealClock()

	storyRepo := storyrepo.NewMongoRepository(database, clk)
	subscriberRepo := subscriberrepo.NewMongoRepository(database, clk)

	storySvc := storyservice.NewStoryService(storyRepo, log)
	subscriberSvc := subscriberservice.NewSubscriberService(subscriberRepo, log)

	var sender mail.Sender
	if cfg.SMTPConfigured() {
		sender = mail.NewSMTPSender(cfg)
		log.Infof("mail transport: smtp via %s:%d", cfg.SMTPServer, cfg.SMTPPort)
	} else {
		sender = mail.NewNoopSender(log)
		log.Warn("mail transport: SMTP not configured, using noop sender")
	}

	dispatcher := newsletterservice.NewDispatcher(newsletterservice.DispatcherDeps{
		Stories:     storyRepo,
		Subscribers: subscriberRepo,
		Composer:    compose.NewComposer(cfg.SiteURL),
		Sender:      sender,
		APIKey:      cfg.NewsletterAPIKey,
		Clock:       clk,
		Log:         log,
	})

	storyHandler := storyhttp.NewHandler(storySvc, cfg.RequestTimeout, log)
	subscriberHandler := subscriberhttp.NewHandler(subscriberSvc, cfg.NewsletterAPIKey, cfg.RequestTimeout, log)

	mux := http.NewServeMux()
	mux.Handle("/api/stories", storyHandler)
	mux.Handle("/api/stories/", storyHandler)
	mux.Handle("/api/subscribe", subscriberHandler)
	mux.Handle("/api/subscribers", subscriberHandler)
	mux.Handle("/api/send-newsletter", newsletterhttp.NewHandler(dispatcher, cfg.DispatchTimeout, log))
	mux.HandleFunc("/health", commonhttp.HealthHandler(log, func(ctx context.Context) error {
		return db.Ping(ctx, database)
	}))
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler("web", log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("web service: closing document store connection")
			db.Disconnect(ctx, database, log)
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, "web", shutdownHooks)
}
