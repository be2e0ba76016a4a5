package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/akylbek/payment-system/payment-gateway/internal/api"
	"github.com/akylbek/payment-system/payment-gateway/internal/bank"
	"github.com/akylbek/payment-system/payment-gateway/internal/config"
	"github.com/akylbek/payment-system/payment-gateway/internal/repository"
	"github.com/akylbek/payment-system/payment-gateway/internal/service"
	"github.com/akylbek/payment-system/payment-gateway/internal/telemetry"
	"github.com/akylbek/payment-system/payment-gateway/internal/validation"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize telemetry
	if err := telemetry.InitTelemetry("payment-gateway", cfg.JaegerEndpoint); err != nil {
		panic(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}
	defer telemetry.Shutdown(context.Background())

	telemetry.Logger.Info("Starting Payment Gateway")

	// Initialize repository
	repo := repository.NewPaymentRepository()

	// Initialize acquiring bank client
	bankClient := bank.NewClient(cfg.BankURL)

	// Initialize orchestrator and validator
	orchestrator := service.NewOrchestrator(repo, bankClient, cfg.BankTimeout)
	validator := validation.New()

	// Setup router
	r := api.NewRouter(orchestrator, validator)

	// Setup HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		telemetry.Logger.Info("Payment Gateway starting",
			zap.String("port", cfg.Port),
			zap.String("bank_url", cfg.BankURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			telemetry.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	telemetry.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		telemetry.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	telemetry.Logger.Info("Server exited")
}
