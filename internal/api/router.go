package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campusbook/classroom-booking-backend/internal/auth"
	"github.com/campusbook/classroom-booking-backend/internal/classroom"
	classroomHttp "github.com/campusbook/classroom-booking-backend/internal/classroom/http"
	"github.com/campusbook/classroom-booking-backend/internal/reservation"
	reservationHttp "github.com/campusbook/classroom-booking-backend/internal/reservation/http"
	"github.com/campusbook/classroom-booking-backend/internal/user"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	UserService      user.Service
	ClassroomService classroom.Service
	Scheduler        *reservation.Scheduler
	Queries          *reservation.Query
	JWTManager       *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Expo dev server
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	classroomHandler := classroomHttp.NewHandler(cfg.ClassroomService, cfg.Queries)
	reservationHandler := reservationHttp.NewHandler(cfg.Scheduler, cfg.Queries)

	// Register API routes under /api
	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/auth/signup", authHandler.Signup)
		apiGroup.POST("/auth/signin", authHandler.Signin)
		apiGroup.GET("/me", authMiddleware, authHandler.Me)

		classroomHttp.RegisterRoutes(apiGroup, classroomHandler, authMiddleware)
		reservationHttp.RegisterRoutes(apiGroup, reservationHandler, authMiddleware)
	}

	return r
}
