package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"broilers/auth"
	"broilers/config"
	"broilers/content"
	"broilers/filemgr"
	"broilers/livefeed"
	"broilers/middleware"
	"broilers/mq"
	"broilers/orders"
	"broilers/ratelim"
	"broilers/routes"

	"github.com/juju/clock"
	"github.com/rs/cors"
)

func allowOrigin(origins []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
	}
}

func main() {
	cfg := config.Load()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancelStart()

	store, err := openBackend(startCtx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}

	publisher, err := openPublisher(startCtx, cfg, store)
	if err != nil {
		log.Fatalf("❌ Failed to open event bus: %v", err)
	}

	hub := livefeed.NewHub()
	go hub.Run()

	sinks := orders.Sinks{hub}
	if publisher != nil {
		sinks = append(sinks, mq.NewEmitter(publisher))
	}

	orderSvc := orders.NewService(store.orders, orders.Options{
		CountryCode: cfg.CountryCode,
		Messenger:   orders.Messenger{Business: cfg.BusinessName, Expiry: cfg.OrderExpiry},
		Clock:       clock.WallClock,
		Events:      sinks,
	})
	if err := orderSvc.Start(startCtx); err != nil {
		log.Fatalf("❌ Failed to start order service: %v", err)
	}

	contentSvc := content.NewService(store.content, clock.WallClock)
	if err := contentSvc.Start(startCtx); err != nil {
		log.Printf("Site content unavailable at startup, serving defaults: %v", err)
	}

	sweeper := orders.NewSweeper(orderSvc, cfg.OrderExpiry)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	if cfg.SweepInterval > 0 {
		go sweeper.Run(sweepCtx, cfg.SweepInterval)
	}

	authSvc, err := auth.NewService(cfg.JWTSecret, cfg.AdminPasswordHash, cfg.AdminPassword, clock.WallClock)
	if err != nil {
		log.Fatalf("❌ Invalid admin credentials: %v", err)
	}
	gate := middleware.NewAuth(cfg.JWTSecret)

	router := routes.Setup(routes.Handlers{
		Orders:       orders.NewHandler(orderSvc, sweeper, contentSvc, cfg.BusinessName),
		Content:      content.NewHandler(contentSvc),
		Auth:         auth.NewHandler(authSvc),
		Live:         livefeed.NewHandler(hub, gate.CheckToken, allowOrigin(cfg.AllowedOrigins)),
		Uploads:      filemgr.NewStore(cfg.UploadDir, "/static/uploads"),
		Gate:         gate,
		OrderLimiter: ratelim.NewRateLimiter(10, 5),
		LoginLimiter: ratelim.NewRateLimiter(5, 3),
	}, cfg.UploadDir)

	// CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := middleware.Logging(middleware.SecurityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("🛑 Stopping sweeper and live feed...")
		stopSweep()
		hub.Stop()
	})

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}

	contentSvc.Stop()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Printf("close event bus: %v", err)
		}
	}
	store.close(ctx)

	log.Println("✅ Server stopped cleanly")
}
