package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lg/body-progress-go-api/internal/bodyfat"
	"lg/body-progress-go-api/internal/config"
	"lg/body-progress-go-api/internal/logger"
	"lg/body-progress-go-api/internal/photos"
	"lg/body-progress-go-api/internal/profile"
)

// Handler holds shared dependencies for all route handlers.
type Handler struct {
	profiles *profile.Store
	bodyFat  *bodyfat.Tracker
	album    *photos.Album
	objects  photos.ObjectStore // nil when no bucket is configured
	location *time.Location     // week bucketing for photos
	log      *logger.Logger

	authUsername     string
	authPasswordHash string
	authToken        string
}

func newHandler(cfg *config.Config, log *logger.Logger, profiles *profile.Store, tracker *bodyfat.Tracker, album *photos.Album, objects photos.ObjectStore) *Handler {
	return &Handler{
		profiles:         profiles,
		bodyFat:          tracker,
		album:            album,
		objects:          objects,
		location:         cfg.Location(),
		log:              log,
		authUsername:     cfg.AuthUsername,
		authPasswordHash: cfg.AuthPasswordHash,
		authToken:        cfg.AuthToken,
	}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// corsMiddleware allows browser clients from origins to call the API with a
// bearer token.
func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	})
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/profile", h.getProfile)
	api.POST("/profile", h.createProfile)
	api.PATCH("/profile", h.patchProfile)
	api.DELETE("/profile", h.deleteProfile)
	api.GET("/profile/bmi", h.getCurrentBMI)
	api.GET("/profile/bmi-history", h.getBMIHistory)
	api.GET("/profile/bmi-trend", h.getBMITrend)
	api.GET("/body-fat", h.getBodyFatHistory)
	api.POST("/body-fat", h.recordBodyFat)
	api.GET("/photos", h.getPhotos)
	api.POST("/photos", h.addPhoto)
	api.PUT("/photos", h.replacePhotoURI)
	api.POST("/photos/upload", h.uploadPhoto)
}
