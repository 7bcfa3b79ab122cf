package api

import (
	"strings"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/auth"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/booking"
	bookingHttp "github.com/Sapatchanon-Kh/CarTentManagement/internal/booking/http"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/contract"
	contractHttp "github.com/Sapatchanon-Kh/CarTentManagement/internal/contract/http"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/interval"
	intervalHttp "github.com/Sapatchanon-Kh/CarTentManagement/internal/interval/http"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/metrics"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/sale"
	saleHttp "github.com/Sapatchanon-Kh/CarTentManagement/internal/sale/http"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/vehicle"
	vehicleHttp "github.com/Sapatchanon-Kh/CarTentManagement/internal/vehicle/http"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	VehicleService  vehicle.Service
	IntervalService interval.Service
	BookingService  booking.Service
	SaleService     sale.Service
	ContractService contract.Service
	JWTManager      *auth.JWTManager

	// BookingRPS / BookingBurst bound the booking-creation endpoint.
	BookingRPS   float64
	BookingBurst int
}

// NewRouter assembles middleware (CORS, logging, auth, rate limiting) and
// registers every module's routes.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Logger prints request information; Recovery turns panics into 500s.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	metrics.Register()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	employeeOnly := auth.RequireEmployee()
	bookingLimit := RateLimit(cfg.BookingRPS, cfg.BookingBurst)

	vehicleHandler := vehicleHttp.NewHandler(cfg.VehicleService, cfg.IntervalService, cfg.SaleService)
	intervalHandler := intervalHttp.NewHandler(cfg.IntervalService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	saleHandler := saleHttp.NewHandler(cfg.SaleService)
	contractHandler := contractHttp.NewHandler(cfg.ContractService)

	v1 := r.Group("/v1")
	{
		vehicleHttp.RegisterRoutes(v1, vehicleHandler, authMiddleware, employeeOnly)
		intervalHttp.RegisterRoutes(v1, intervalHandler, authMiddleware, employeeOnly)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, bookingLimit)
		saleHttp.RegisterRoutes(v1, saleHandler, authMiddleware, employeeOnly)
		contractHttp.RegisterRoutes(v1, contractHandler, authMiddleware, employeeOnly)
	}

	return r
}
