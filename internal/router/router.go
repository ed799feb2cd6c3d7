// Package router wires handlers and middleware into the gin engine.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"donation-platform/internal/handlers"
	"donation-platform/internal/metrics"
	"donation-platform/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts. Indexer may be nil,
// in which case the indexer routes are not mounted.
type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Campaign    *handlers.CampaignHandler
	Leaderboard *handlers.LeaderboardHandler
	Catalog     *handlers.CatalogHandler
	File        *handlers.FileHandler
	Indexer     *handlers.IndexerHandler
}

// Options configures the engine
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	Limiter        *middleware.RateLimiter
	Log            *zap.Logger
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Total-Count", "X-Total-Pages"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// Setup builds the gin engine with every route
func Setup(opts Options, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())
	r.Use(middleware.RequestLogger(opts.Log))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	limited := func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		limited = opts.Limiter.Handler()
	}

	api := r.Group(opts.APIPrefix)
	{
		api.POST("/login", limited, h.Auth.Login)

		user := api.Group("/user")
		{
			user.GET("/info", h.User.GetInfo)
			user.PUT("/update", h.User.UpdateInfo)
			user.GET("/donation-history", h.User.DonationHistory)
			user.GET("/campaigns", h.Campaign.ListMyCampaigns)
		}

		api.GET("/campaigns", h.Campaign.ListCampaigns)
		api.POST("/campaigns", h.Campaign.CreateCampaign)
		api.GET("/campaigns/:id", h.Campaign.GetCampaign)
		api.GET("/campaigns/:id/donations", h.Campaign.DonationHistory)

		api.GET("/campaign-types", h.Catalog.CampaignTypes)
		api.GET("/tokens", h.Catalog.Tokens)
		api.GET("/top-campaigns", h.Leaderboard.TopCampaigns)
		api.GET("/top-donors", h.Leaderboard.TopDonors)

		api.POST("/upload-file", limited, h.File.Upload)
		api.GET("/read-file/:name", h.File.Read)
	}

	if h.Indexer != nil {
		indexer := r.Group("/internal/indexer")
		indexer.Use(h.Indexer.RequireKey())
		{
			indexer.POST("/donations", h.Indexer.RecordDonations)
			indexer.POST("/campaigns/:id/publish", h.Indexer.PublishCampaign)
			indexer.POST("/campaigns/:id/close", h.Indexer.CloseCampaign)
			indexer.GET("/checkpoints/:key", h.Indexer.GetCheckpoint)
			indexer.PUT("/checkpoints/:key", h.Indexer.SaveCheckpoint)
		}
	}

	return r
}
