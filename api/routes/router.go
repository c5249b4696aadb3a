// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	"tourboard/internal/accounts"
	"tourboard/internal/bids"
	"tourboard/internal/inquiries"
	"tourboard/internal/notifications"
	"tourboard/internal/requests"
	"tourboard/internal/shared/config"
	"tourboard/internal/shared/database"
	"tourboard/internal/shows"
	"tourboard/internal/venues"
	"tourboard/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	notifier     *notifications.Service

	// Cross-package services kept for dependency injection
	requestService requests.Service
	venueService   venues.Service
	showService    shows.Service
	bidService     bids.Service

	eventAdapter *notifications.BidEventAdapter

	// HoldSweeper is started by main after routes are wired
	HoldSweeper    *bids.HoldSweeper
	InquiryService inquiries.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier *notifications.Service) *Router {
	r := &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
	if db.Redis != nil {
		r.cacheService = cache.NewService(db.Redis)
	}
	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAccountRoutes(api)
		r.setupVenueRoutes(api)
		r.setupRequestRoutes(api)
		r.setupShowRoutes(api)
		r.setupBidRoutes(api)
		r.setupInquiryRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tourboard",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tourboard",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAccountRoutes(rg *gin.RouterGroup) {
	accountRepo := accounts.NewRepository(r.db.GetPostgreSQL())
	accountService := accounts.NewService(accountRepo, r.config)
	accountController := accounts.NewController(accountService)

	accounts.SetupAccountRoutes(rg, accountController)
}

func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	venueRepo := venues.NewRepository(r.db.GetPostgreSQL())
	venueService := venues.NewService(venueRepo)
	if r.cacheService != nil {
		venueService.SetCacheService(r.cacheService, r.config.Redis.VenueLookupTTL)
	}
	r.venueService = venueService
	venueController := venues.NewController(venueService)

	venues.SetupVenueRoutes(rg, venueController, r.config)
}

func (r *Router) setupRequestRoutes(rg *gin.RouterGroup) {
	requestRepo := requests.NewRepository(r.db.GetPostgreSQL())
	requestService := requests.NewService(requestRepo)
	if r.cacheService != nil {
		requestService.SetCacheService(r.cacheService, r.config.Redis.ActiveRequestsTTL)
	}
	r.requestService = requestService
	requestController := requests.NewController(requestService)

	requests.SetupRequestRoutes(rg, requestController, r.config)
}

func (r *Router) setupShowRoutes(rg *gin.RouterGroup) {
	showRepo := shows.NewRepository(r.db.GetPostgreSQL())
	showService := shows.NewService(showRepo, r.venueService)
	r.showService = showService
	showController := shows.NewController(showService)

	shows.SetupShowRoutes(rg, showController, r.config)
}

func (r *Router) setupBidRoutes(rg *gin.RouterGroup) {
	bidRepo := bids.NewRepository(r.db.GetPostgreSQL())
	bidService := bids.NewService(bidRepo, r.requestService, r.showService, r.venueService, r.config.Negotiation)
	if r.cacheService != nil {
		bidService.SetCacheService(r.cacheService, r.config.Redis.CacheTTL)
	}
	if r.notifier != nil {
		r.eventAdapter = notifications.NewBidEventAdapter(r.notifier, r.requestService)
		bidService.SetEventPublisher(r.eventAdapter)
	}
	r.bidService = bidService

	// Deleting a request force-cancels its bids through this hook.
	r.requestService.SetBidCanceller(bidService)

	r.HoldSweeper = bids.NewHoldSweeper(bidService, r.config.Negotiation)

	bidController := bids.NewController(bidService)
	bids.SetupBidRoutes(rg, bidController, r.config)
}

func (r *Router) setupInquiryRoutes(rg *gin.RouterGroup) {
	inquiryRepo := inquiries.NewRepository(r.db.GetPostgreSQL())
	inquiryService := inquiries.NewService(inquiryRepo, r.config.Negotiation)
	if r.eventAdapter != nil {
		inquiryService.SetNotifier(r.eventAdapter)
	}
	r.InquiryService = inquiryService

	// Inquiry expiry rides on the hold sweep schedule.
	if r.HoldSweeper != nil {
		r.HoldSweeper.AddTask(func(ctx context.Context) error {
			_, err := inquiryService.ExpireOverdue(ctx)
			return err
		})
	}

	inquiryController := inquiries.NewController(inquiryService)

	inquiries.SetupInquiryRoutes(rg, inquiryController, r.config)
}
