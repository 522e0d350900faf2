package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbook/classroom-booking-backend/internal/api"
	"github.com/campusbook/classroom-booking-backend/internal/auth"
	"github.com/campusbook/classroom-booking-backend/internal/classroom"
	"github.com/campusbook/classroom-booking-backend/internal/clock"
	"github.com/campusbook/classroom-booking-backend/internal/reservation"
	"github.com/campusbook/classroom-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Scheduler  *reservation.Scheduler
}

// NewContainer initializes all modules and returns the container.
// Call Container.Scheduler.Load before serving traffic.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	clk := clock.NewSystem()

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Session gate resolving capabilities from user roles
	gate := auth.NewRoleGate(userService)

	// Classroom Catalog
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	classroomRepo := classroom.NewPgxRepository(cfg.DBPool)
	classroomService := classroom.NewService(classroomRepo, gate, reservationRepo, clk)

	// Reservation Scheduler + Queries
	scheduler := reservation.NewScheduler(reservationRepo, classroomService, gate)
	queries := reservation.NewQuery(reservationRepo, scheduler, clk)

	// API Router Config
	routerParams := api.Config{
		IsProduction:     cfg.IsProduction,
		ProdOrigins:      cfg.ProdOrigins,
		UserService:      userService,
		ClassroomService: classroomService,
		Scheduler:        scheduler,
		Queries:          queries,
		JWTManager:       jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Scheduler:  scheduler,
	}
}
