package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/peerlearn/tutoring-backend/internal/api"
	"github.com/peerlearn/tutoring-backend/internal/auth"
	"github.com/peerlearn/tutoring-backend/internal/availability"
	"github.com/peerlearn/tutoring-backend/internal/lesson"
	"github.com/peerlearn/tutoring-backend/internal/notification"
	"github.com/peerlearn/tutoring-backend/internal/skill"
	"github.com/peerlearn/tutoring-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	LessonDuration     time.Duration
	CancellationWindow time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Availability module
	availabilityRepo := availability.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(availabilityRepo)

	// Notification module
	notificationRepo := notification.NewPgxRepository(cfg.DBPool)
	notificationService := notification.NewService(notificationRepo, log.Logger)

	// Skill module
	skillRepo := skill.NewPgxRepository(cfg.DBPool)
	skillService := skill.NewService(skillRepo, userService)

	// Lesson module
	lessonRepo := lesson.NewPgxRepository(cfg.DBPool)
	lessonService := lesson.NewService(
		lessonRepo,
		availabilityService,
		userService,
		notificationService,
		int(cfg.LessonDuration/time.Minute),
		cfg.CancellationWindow,
	)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		AvailabilityService: availabilityService,
		LessonService:       lessonService,
		SkillService:        skillService,
		NotificationService: notificationService,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
