// internal/router/router.go
package router

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/tunegrid/licensing-backend/internal/config"
	"github.com/tunegrid/licensing-backend/internal/handlers"
	"github.com/tunegrid/licensing-backend/internal/middleware"
	"github.com/tunegrid/licensing-backend/internal/services"
	"github.com/tunegrid/licensing-backend/internal/store"
	"github.com/tunegrid/licensing-backend/internal/utils"
)

func Initialize(st store.Store, cfg *config.Config) *gin.Engine {
	// One mutation in flight at a time: the catalog and license services
	// share a single mutation lock.
	var mutationLock sync.Mutex

	// Initialize services
	integrityService := services.NewIntegrityService(st)
	authService := services.NewAuthService(st)
	catalogService := services.NewCatalogService(st, integrityService, authService, &mutationLock)
	licenseService := services.NewLicenseService(st, integrityService, authService, &mutationLock)

	// Initialize handlers
	ownerHandler := handlers.NewOwnerHandler(catalogService, licenseService)
	songHandler := handlers.NewSongHandler(catalogService)
	licenseeHandler := handlers.NewLicenseeHandler(catalogService, licenseService)
	licenseHandler := handlers.NewLicenseHandler(licenseService)

	// Set the secret used for minted owner credentials
	utils.SetCredentialSecret(cfg.Auth.CredentialSecret)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.CredentialExtractor())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Owner routes
		owners := v1.Group("/owners")
		{
			owners.POST("", middleware.MutationRateLimit(), ownerHandler.CreateOwner)
			owners.GET("/:id/licenses", ownerHandler.GetOwnerLicenseRequests)
		}

		// Song routes
		songs := v1.Group("/songs")
		{
			songs.GET("", songHandler.GetAllSongs)
			songs.GET("/:id", songHandler.GetSong)
			songs.GET("/:id/owner", songHandler.GetSongOwner)
			songs.POST("", middleware.MutationRateLimit(), songHandler.CreateSong)

			// Owner-gated routes
			protected := songs.Group("")
			protected.Use(middleware.MutationRateLimit(), middleware.CredentialRequired())
			{
				protected.PUT("/:id", songHandler.UpdateSong)
				protected.DELETE("/:id", songHandler.DeleteSong)
			}
		}

		// Licensee routes
		licensees := v1.Group("/licensees")
		{
			licensees.POST("", middleware.MutationRateLimit(), licenseeHandler.CreateLicensee)
			licensees.GET("/:id", licenseeHandler.GetLicensee)
			licensees.GET("/:id/licenses", licenseeHandler.GetLicenseeLicenses)
		}

		// License routes
		licenses := v1.Group("/licenses")
		{
			licenses.POST("", middleware.MutationRateLimit(), licenseHandler.CreateLicenseRequest)
			licenses.GET("/:id", licenseHandler.GetLicense)

			// Owner-gated routes
			protected := licenses.Group("")
			protected.Use(middleware.MutationRateLimit(), middleware.CredentialRequired())
			{
				protected.POST("/:id/approve", licenseHandler.ApproveLicense)
				protected.POST("/:id/revoke", licenseHandler.RevokeLicense)
			}
		}
	}

	return r
}
