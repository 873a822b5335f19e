package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/peerlearn/tutoring-backend/internal/auth"
	"github.com/peerlearn/tutoring-backend/internal/availability"
	availabilityHttp "github.com/peerlearn/tutoring-backend/internal/availability/http"
	"github.com/peerlearn/tutoring-backend/internal/lesson"
	lessonHttp "github.com/peerlearn/tutoring-backend/internal/lesson/http"
	"github.com/peerlearn/tutoring-backend/internal/notification"
	notificationHttp "github.com/peerlearn/tutoring-backend/internal/notification/http"
	"github.com/peerlearn/tutoring-backend/internal/skill"
	skillHttp "github.com/peerlearn/tutoring-backend/internal/skill/http"
	"github.com/peerlearn/tutoring-backend/internal/user"
	userHttp "github.com/peerlearn/tutoring-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	AvailabilityService availability.Service
	LessonService       lesson.Service
	SkillService        skill.Service
	NotificationService notification.Service

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware (CORS, Logger, Auth) and registers the
// routes of every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	lessonHandler := lessonHttp.NewHandler(cfg.LessonService)
	skillHandler := skillHttp.NewHandler(cfg.SkillService)
	notificationHandler := notificationHttp.NewHandler(cfg.NotificationService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		lessonHttp.RegisterRoutes(v1, lessonHandler, authMiddleware)
		skillHttp.RegisterRoutes(v1, skillHandler, authMiddleware)
		notificationHttp.RegisterRoutes(v1, notificationHandler, authMiddleware)

		// Public tutor sub-resources live next to /tutors/:id from the user module.
		v1.GET("/tutors/:id/availability", availabilityHandler.ListForTutor)
		v1.GET("/tutors/:id/slots", lessonHandler.Slots)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
