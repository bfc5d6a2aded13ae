// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: request decoding, defaults and validation,
// engine invocation, and JSON serialization. It NEVER performs cost logic.
package api

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"grocery-cost/core/engine"
	"grocery-cost/core/types"
	"grocery-cost/internal/config"
	"grocery-cost/internal/errors"
	"grocery-cost/internal/logging"
	"grocery-cost/internal/version"
)

// Server is the API server
type Server struct {
	engine *engine.Engine
	cfg    *config.Config
	router *gin.Engine
	logger *zap.Logger
}

// NewServer creates an API server over an engine.
// A nil config uses config.Default(); a nil logger discards output.
func NewServer(eng *engine.Engine, cfg *config.Config, logger *zap.Logger) *Server {
	if eng == nil {
		panic("INVARIANT VIOLATED: API server requires an engine")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		engine: eng,
		cfg:    cfg,
		router: gin.New(),
		logger: logger,
	}
	s.registerMiddleware()
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer returns an http.Server configured from the server settings
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Server.Address,
		Handler:      s,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

func (s *Server) registerMiddleware() {
	s.router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.NewString()
	})))
	s.router.Use(requestLogger(s.logger))
	s.router.Use(recovery(s.logger))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.cfg.Server.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.Server.AllowOrigins
	}
	s.router.Use(cors.New(corsConfig))

	s.router.Use(bodySizeLimit(s.cfg.Server.MaxBodyBytes))
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	v1 := s.router.Group("/api/" + version.APIVersion)
	{
		// Core endpoint
		v1.POST("/plans", s.handlePlan)

		// Supporting endpoints
		v1.GET("/health", s.handleHealth)
		v1.GET("/version", s.handleVersion)
		v1.GET("/cities", s.handleCities)
	}
}

// handlePlan handles POST /api/v1/plans
func (s *Server) handlePlan(c *gin.Context) {
	start := time.Now()

	var body PlanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		if isBodyTooLarge(err) {
			s.writeError(c, http.StatusRequestEntityTooLarge, errors.Input("request body too large"))
			return
		}
		s.writeError(c, 0, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return
	}

	req := s.toPlanRequest(body)
	if err := req.Validate(); err != nil {
		s.writeError(c, 0, errors.Wrap(errors.TypeInput, "invalid plan request", err))
		return
	}

	// Execute engine (NO COST LOGIC HERE)
	plan := s.engine.ComputeWeeklyPlan(req)
	logging.ForRequest(s.logger, requestid.Get(c)).Info("plan served",
		logging.PlanID(plan.ID),
		logging.Location(plan.Meta.Location),
		zap.String("menu_source", string(plan.MenuSource)),
	)

	c.JSON(http.StatusOK, PlanResponse{
		RequestID: requestid.Get(c),
		Plan:      plan,
		Metadata: ResponseMetadata{
			EngineVersion: version.Version,
			PricebookHash: s.engine.Pricebook().Hash(),
			DurationMs:    time.Since(start).Milliseconds(),
		},
	})
}

// toPlanRequest fills omitted fields from the configured defaults
func (s *Server) toPlanRequest(body PlanRequest) types.PlanRequest {
	d := s.cfg.Defaults
	req := types.PlanRequest{
		Location:     body.Location,
		Headcount:    d.Headcount,
		MealType:     d.MealType,
		Mode:         body.Mode,
		Diet:         body.Diet,
		ExternalMenu: body.Menu,
		Source:       types.SourceAPI,
	}
	if req.Location == "" {
		req.Location = d.Location
	}
	if body.Headcount != nil {
		req.Headcount = *body.Headcount
	}
	if body.MealType != "" {
		req.MealType = types.ParseMealType(body.MealType)
	}
	if req.Mode == "" {
		req.Mode = d.Mode
	}
	return req
}

// handleHealth handles GET /api/v1/health
func (s *Server) handleHealth(c *gin.Context) {
	book := s.engine.Pricebook()
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   version.Version,
		Timestamp: time.Now().UTC(),
		Cities:    len(book.Cities()),
		Items:     len(book.Items()),
	})
}

// handleVersion handles GET /api/v1/version
func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Version:    version.Version,
		Engine:     version.Name,
		APIVersion: version.APIVersion,
	})
}

// handleCities handles GET /api/v1/cities
func (s *Server) handleCities(c *gin.Context) {
	book := s.engine.Pricebook()
	cities := book.Cities()
	resp := CitiesResponse{
		Currency: book.Currency(),
		Cities:   make([]CityResponse, len(cities)),
	}
	for i, city := range cities {
		resp.Cities[i] = CityResponse{Key: city.Key, Multiplier: city.Multiplier.String()}
	}
	c.JSON(http.StatusOK, resp)
}

// writeError writes a typed error. A zero status is derived from the error type.
func (s *Server) writeError(c *gin.Context, status int, err error) {
	if status == 0 {
		status = statusFor(errors.TypeOf(err))
	}
	_ = c.Error(err)

	resp := ErrorResponse{
		Error:     err.Error(),
		Code:      string(errors.TypeOf(err)),
		RequestID: requestid.Get(c),
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		resp.Details = e.Context
	}
	c.AbortWithStatusJSON(status, resp)
}

// statusFor maps error types to HTTP status codes
func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInput, errors.TypeParsing:
		return http.StatusBadRequest
	case errors.TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
