package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/ngmaloney/train-terminal/internal/config"
	"github.com/ngmaloney/train-terminal/internal/favourites"
	"github.com/ngmaloney/train-terminal/internal/history"
	"github.com/ngmaloney/train-terminal/internal/journeys"
	"github.com/ngmaloney/train-terminal/internal/stations"
	"github.com/ngmaloney/train-terminal/internal/transportapi"
	"github.com/sirupsen/logrus"
)

// Server serves station search, departure boards and saved journeys over HTTP
type Server struct {
	client     transportapi.Client
	directory  *stations.Directory
	journeys   *journeys.Service
	favourites *favourites.Repository
	history    *history.Repository
	db         *sqlx.DB
	logger     *logrus.Logger
	now        func() time.Time
}

// Options are the collaborators a Server needs. DB is only pinged by /health.
// The favourites and history routes are only registered when their
// repositories are set.
type Options struct {
	Client     transportapi.Client
	Directory  *stations.Directory
	Journeys   *journeys.Service
	Favourites *favourites.Repository
	History    *history.Repository
	DB         *sqlx.DB
	Logger     *logrus.Logger
	Now        func() time.Time
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		client:     opts.Client,
		directory:  opts.Directory,
		journeys:   opts.Journeys,
		favourites: opts.Favourites,
		history:    opts.History,
		db:         opts.DB,
		logger:     opts.Logger,
		now:        opts.Now,
	}
}

// Router builds the gin engine with middleware and all routes registered
func (s *Server) Router(corsCfg config.CORSConfig) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))
	router.Use(cors.New(corsConfig(corsCfg)))

	// Health check endpoint
	router.GET("/health", s.health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/stations", s.searchStations)
		v1.GET("/departures/:crs", s.departures)
		v1.GET("/services/:id", s.service)

		j := v1.Group("/journeys")
		{
			j.GET("", s.listJourneys)
			j.POST("", s.createJourney)
			j.GET("/recommended", s.recommended)
			j.GET("/:id", s.getJourney)
			j.DELETE("/:id", s.deleteJourney)
			j.POST("/:id/use", s.useJourney)
			j.POST("/:id/rules", s.addRule)
			j.PUT("/:id/rules/:ruleId", s.updateRule)
			j.DELETE("/:id/rules/:ruleId", s.deleteRule)
		}

		locations := v1.Group("/locations")
		{
			locations.GET("", s.listLocations)
			locations.POST("", s.createLocation)
			locations.PUT("/:id", s.updateLocation)
			locations.DELETE("/:id", s.deleteLocation)
		}

		if s.favourites != nil {
			f := v1.Group("/favourites")
			{
				f.GET("/services", s.listFavouriteServices)
				f.POST("/services", s.addFavouriteService)
				f.DELETE("/services/:id", s.deleteFavouriteService)
				f.GET("/stations", s.listFavouriteStations)
				f.POST("/stations", s.addFavouriteStation)
				f.DELETE("/stations/:crs", s.deleteFavouriteStation)
			}
		}

		if s.history != nil {
			h := v1.Group("/history")
			{
				h.GET("/searches", s.listRecentSearches)
				h.DELETE("/searches", s.deleteRecentSearch)
				h.GET("/stations", s.listRecentStations)
				h.DELETE("/stations", s.clearRecentStations)
			}
		}
	}

	return router
}

// corsConfig maps the configured origins onto gin-contrib/cors. A "*"
// origin allows everything, which rules out credentials.
func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  cfg.AllowedMethods,
		AllowHeaders:  cfg.AllowedHeaders,
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
		c.AllowCredentials = true
	}
	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.AllowHeaders) == 0 {
		c.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	}
	return c
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
		}
		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Error("Request failed with errors")
			return
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// health reports whether the database answers
func (s *Server) health(c *gin.Context) {
	dbStatus := "healthy"
	if s.db != nil {
		if err := s.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  dbStatus,
		"stations":  len(s.directory.All()),
		"timestamp": s.now().Unix(),
	})
}
