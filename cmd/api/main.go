package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"

	"github.com/devpaiola/cadastroLead/api/routes"
	"github.com/devpaiola/cadastroLead/internal/config"
	"github.com/devpaiola/cadastroLead/internal/handlers"
	"github.com/devpaiola/cadastroLead/internal/repositories"
	"github.com/devpaiola/cadastroLead/internal/repositories/memory"
	mongorepo "github.com/devpaiola/cadastroLead/internal/repositories/mongodb"
	"github.com/devpaiola/cadastroLead/internal/rng"
	"github.com/devpaiola/cadastroLead/internal/services"
	"github.com/devpaiola/cadastroLead/pkg/mongodb"
	"github.com/devpaiola/cadastroLead/pkg/voucher"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.LogLevel)
	if config.ParseLevel(cfg.LogLevel) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		leadRepo  repositories.LeadRepository
		awardRepo repositories.AwardRepository
		db        handlers.Pinger
	)
	if cfg.MongoDB.URI == "" {
		logger.Warn("MongoDB.URI is empty, keeping leads in memory")
		leadRepo, awardRepo = memory.NewLeadRepository(), memory.NewAwardRepository()
	} else {
		client, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database)
		if err != nil {
			logger.Error("Failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("Error disconnecting from MongoDB", "error", err)
			}
		}()

		leads := mongorepo.NewLeadRepository(client.Database())
		awards := mongorepo.NewAwardRepository(client.Database())
		if err := leads.EnsureIndexes(ctx); err != nil {
			logger.Warn("Failed to create lead indexes", "error", err)
		}
		if err := awards.EnsureIndexes(ctx); err != nil {
			logger.Warn("Failed to create award indexes", "error", err)
		}
		leadRepo, awardRepo, db = leads, awards, client
	}

	var vouchers *voucher.Service
	if cfg.Voucher.Secret != "" {
		vouchers, err = voucher.NewService(cfg.Voucher.Secret, cfg.Voucher.ExpiresIn)
		if err != nil {
			logger.Error("Failed to create voucher service", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("Voucher.Secret is empty, draws are issued without vouchers")
	}

	prizeService, err := services.NewPrizeService(cfg.Prizes, rng.NewSource(), vouchers, awardRepo)
	if err != nil {
		logger.Error("Failed to create prize service", "error", err)
		os.Exit(1)
	}
	leadService := services.NewLeadService(leadRepo, awardRepo)

	router := routes.SetupRouter(cfg, logger, routes.HandlerDependencies{
		LeadHandler:   handlers.NewLeadHandler(leadService),
		PrizeHandler:  handlers.NewPrizeHandler(prizeService),
		HealthHandler: handlers.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server exiting")
}
