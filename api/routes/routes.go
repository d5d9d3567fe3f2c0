package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"

	"github.com/devpaiola/cadastroLead/internal/config"
	"github.com/devpaiola/cadastroLead/internal/handlers"
	"github.com/devpaiola/cadastroLead/internal/middleware"
)

// HandlerDependencies holds the handlers the router mounts
type HandlerDependencies struct {
	LeadHandler   *handlers.LeadHandler
	PrizeHandler  *handlers.PrizeHandler
	HealthHandler *handlers.HealthHandler
}

// SetupRouter builds the API router. Every route lives under /api; the write
// routes are rate limited per client IP.
func SetupRouter(cfg *config.Config, logger *slog.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg))

	limit := func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.RPS > 0 {
		limit = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware()
	}

	api := router.Group("/api")
	{
		api.GET("/health", deps.HealthHandler.Health)

		api.POST("/cadastrar-usuario", limit, deps.LeadHandler.RegisterUser)
		api.POST("/cadastrar-leads", limit, deps.LeadHandler.RegisterLeads)
		api.GET("/stats", deps.LeadHandler.Stats)

		api.GET("/premios", deps.PrizeHandler.ListPrizes)
		api.POST("/sortear-premio", limit, deps.PrizeHandler.DrawPrize)
		api.GET("/comprovantes/:token", deps.PrizeHandler.VerifyVoucher)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Rota não encontrada"})
	})

	return router
}
