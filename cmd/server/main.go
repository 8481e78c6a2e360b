package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salesdesk/pos-backend/internal/config"
	"github.com/salesdesk/pos-backend/internal/handlers"
	"github.com/salesdesk/pos-backend/internal/middleware"
	"github.com/salesdesk/pos-backend/internal/receipt"
	"github.com/salesdesk/pos-backend/internal/repository"
	"github.com/salesdesk/pos-backend/internal/service"
	"github.com/salesdesk/pos-backend/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting point of sale server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"db_path", cfg.Store.DBPath,
		"receipt_dir", cfg.Store.ReceiptDir,
		"log_level", cfg.LogLevel,
	)

	// Open the catalog database
	productRepo, err := repository.NewSQLiteProductRepository(cfg.Store.DBPath)
	if err != nil {
		log.Error("failed to open catalog database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := productRepo.Close(); err != nil {
			log.Error("failed to close catalog database", "error", err)
		}
	}()

	// Initialize receipt output directory
	receiptGen, err := receipt.NewGenerator(cfg.Store.ReceiptDir)
	if err != nil {
		log.Error("failed to prepare receipt directory", "error", err)
		os.Exit(1)
	}

	// Initialize services
	inventory := service.NewInventoryService(productRepo)
	builder := service.NewOrderBuilder(productRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(productRepo, log)
	productHandler := handlers.NewProductHandler(inventory, log)
	orderHandler := handlers.NewOrderHandler(builder, receiptGen, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check and metrics endpoints
	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints
		r.Post("/product", productHandler.CreateProduct)
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/names", productHandler.ListNames)
		r.Delete("/product/{productId}", productHandler.DeleteProduct)

		// Order endpoints
		r.Post("/order/line", orderHandler.AddLine)
		r.Delete("/order/line/{index}", orderHandler.RemoveLine)
		r.Get("/order", orderHandler.GetOrder)
		r.Post("/order/checkout", orderHandler.Checkout)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
