package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cartdomain "github.com/smallbiznis/storefront/internal/cart/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/events"
	"github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/smallbiznis/storefront/internal/render"
	selectiondomain "github.com/smallbiznis/storefront/internal/selection/domain"
)

// Server exposes the product page selection API and the cart display surface.
type Server struct {
	cfg          config.Config
	log          *zap.Logger
	engine       *gin.Engine
	selectionSvc selectiondomain.Service
	cartClient   cartdomain.Client
	bus          *events.Bus
	surface      *render.MemorySurface

	sessionLimiter *rateLimiter
}

type Params struct {
	fx.In

	Config       config.Config
	Log          *zap.Logger
	Engine       *gin.Engine
	SelectionSvc selectiondomain.Service
	CartClient   cartdomain.Client
	Bus          *events.Bus
	Surface      *render.MemorySurface
}

// NewEngine builds the gin engine with recovery and HTTP metrics.
func NewEngine(log *zap.Logger, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:            p.Config,
		log:            p.Log.Named("server"),
		engine:         p.Engine,
		selectionSvc:   p.SelectionSvc,
		cartClient:     p.CartClient,
		bus:            p.Bus,
		surface:        p.Surface,
		sessionLimiter: newRateLimiter(60, time.Minute),
	}
}

// RegisterAPIRoutes wires all HTTP routes.
func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.POST("/sessions", s.CreateSession)
	api.GET("/sessions/:id", s.GetSession)
	api.POST("/sessions/:id/plan", s.SetPlanType)
	api.POST("/sessions/:id/flavor", s.SetFlavor)
	api.POST("/sessions/:id/quantity", s.SetQuantity)
	api.POST("/sessions/:id/image", s.SetImage)
	api.GET("/sessions/:id/quote", s.GetQuote)
	api.POST("/sessions/:id/cart", s.AddToCart)
	api.GET("/cart/display", s.GetDisplayCart)
	api.POST("/cart/notify", s.NotifyCartUpdated)
}

// @Summary      Health Check
// @Description  Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down http server")
			return srv.Shutdown(ctx)
		},
	})
}
