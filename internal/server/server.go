package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"github.com/limanops/tarife/internal/config"
	"github.com/limanops/tarife/internal/observability"
	ratingdomain "github.com/limanops/tarife/internal/rating/domain"
	tariffdomain "github.com/limanops/tarife/internal/tariff/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *observability.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, metrics *observability.Metrics) *gin.Engine {
	return NewEngine(log, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	catalogSvc catalogdomain.CatalogService
	tariffSvc  tariffdomain.Service
	ratingSvc  ratingdomain.Service
	metrics    *observability.Metrics
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	CatalogSvc catalogdomain.CatalogService
	TariffSvc  tariffdomain.Service
	RatingSvc  ratingdomain.Service
	Metrics    *observability.Metrics
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:     p.Gin,
		catalogSvc: p.CatalogSvc,
		tariffSvc:  p.TariffSvc,
		ratingSvc:  p.RatingSvc,
		metrics:    p.Metrics,
	}

	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Catalog --------
	api.GET("/services", s.ListServices)
	api.POST("/services", s.CreateService)
	api.GET("/services/:id", s.GetServiceByID)
	api.GET("/vat-rates", s.ListVatRates)
	api.POST("/vat-rates", s.CreateVatRate)
	api.GET("/vat-exemptions", s.ListVatExemptions)
	api.POST("/vat-exemptions", s.CreateVatExemption)
	api.GET("/pricing-rules", s.ListPricingRules)
	api.POST("/pricing-rules", s.CreatePricingRule)

	// -------- Tariffs --------
	api.GET("/tariffs", s.ListTariffs)
	api.POST("/tariffs", s.CreateTariffDraft)
	api.GET("/tariffs/:id", s.GetTariffByID)
	api.PUT("/tariffs/:id/items", s.PutTariffItem)
	api.POST("/tariffs/:id/approve", s.ApproveTariff)
	api.POST("/tariffs/:id/discard", s.DiscardTariff)
	api.POST("/tariffs/:id/retire", s.RetireTariff)
	api.POST("/tariffs/:id/derive", s.DeriveTariff)

	// -------- Rating --------
	api.POST("/rating/resolve", s.ResolvePrice)
}
