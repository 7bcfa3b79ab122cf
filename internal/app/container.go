package app

import (
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/api"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/auth"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/booking"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/contract"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/interval"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/cache"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/keylock"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/storage"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/sale"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/vehicle"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	// DBPool is the Postgres connection pool. When nil the container wires
	// in-memory repositories, which is how the test suite runs.
	DBPool *pgxpool.Pool

	// RedisClient backs the availability cache; nil disables caching.
	RedisClient *redis.Client

	JWTSecret       string
	JWTTTL          time.Duration
	LockWaitTimeout time.Duration
	AvailabilityTTL time.Duration
	SlipDir         string
	BookingRPS      int
	BookingBurst    int

	Logger zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	locks := keylock.NewRegistry()
	availCache := cache.New(cfg.RedisClient, cfg.AvailabilityTTL)

	files, err := storage.NewLocalStorage(cfg.SlipDir)
	if err != nil {
		return nil, err
	}

	// Repositories: Postgres in a real deployment, in-memory otherwise.
	var (
		vehicleRepo  vehicle.Repository
		intervalRepo interval.Repository
		bookingRepo  booking.Repository
		saleRepo     sale.Repository
		contractRepo contract.Repository
	)
	if cfg.DBPool != nil {
		vehicleRepo = vehicle.NewPgxRepository(cfg.DBPool)
		intervalRepo = interval.NewPgxRepository(cfg.DBPool)
		bookingRepo = booking.NewPgxRepository(cfg.DBPool)
		saleRepo = sale.NewPgxRepository(cfg.DBPool)
		contractRepo = contract.NewPgxRepository(cfg.DBPool)
	} else {
		memPeriods := interval.NewMemoryRepository()
		vehicleRepo = vehicle.NewMemoryRepository()
		intervalRepo = memPeriods
		bookingRepo = booking.NewMemoryRepository(memPeriods)
		saleRepo = sale.NewMemoryRepository()
		contractRepo = contract.NewMemoryRepository()
	}

	// Vehicle Module
	vehicleService := vehicle.NewService(vehicleRepo)

	// Rent Period Module
	intervalService := interval.NewService(intervalRepo, vehicleService, locks, cfg.LockWaitTimeout, availCache)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, intervalService, vehicleService, locks, cfg.LockWaitTimeout)

	// Sale Module
	saleService := sale.NewService(saleRepo, vehicleService, locks, cfg.LockWaitTimeout)

	// Contract Module
	contractService := contract.NewService(
		contractRepo,
		vehicleService, bookingService, saleService,
		locks, cfg.LockWaitTimeout,
		files, storage.NewSlipProcessor(1000, 1000),
		contract.NewLogNotifier(cfg.Logger),
	)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		VehicleService:  vehicleService,
		IntervalService: intervalService,
		BookingService:  bookingService,
		SaleService:     saleService,
		ContractService: contractService,
		JWTManager:      jwtManager,
		BookingRPS:      float64(cfg.BookingRPS),
		BookingBurst:    cfg.BookingBurst,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
