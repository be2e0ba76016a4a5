package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akylbek/payment-system/payment-gateway/internal/handlers"
	"github.com/akylbek/payment-system/payment-gateway/internal/service"
	"github.com/akylbek/payment-system/payment-gateway/internal/telemetry"
	"github.com/akylbek/payment-system/payment-gateway/internal/validation"
)

func NewRouter(orchestrator *service.Orchestrator, validator *validation.Validator) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(telemetry.TracingMiddleware())

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "payment-gateway"})
	})

	// Payment routes
	paymentHandler := handlers.NewPaymentHandler(orchestrator, validator)
	v1 := r.Group("/api/v1")
	v1.POST("/payments", paymentHandler.CreatePayment)
	v1.GET("/payments/:id", paymentHandler.GetPayment)

	return r
}
