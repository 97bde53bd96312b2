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

	"github.com/mikawi/g2scv/api/handlers"
	"github.com/mikawi/g2scv/api/routes"
	cfg "github.com/mikawi/g2scv/config"
	"github.com/mikawi/g2scv/internal/service/document"
	"github.com/mikawi/g2scv/pkg/logger"
)

func main() {
	serverConfig := cfg.GetServerConfig()

	// init logger
	log, err := logger.NewLogger(
		logger.WithLevel(serverConfig.LogLevel),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/app.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// init CV parse service
	cvService, err := document.GetService(log)
	if err != nil {
		log.Fatal("Failed to get CV service:", logger.Error(err))
	}

	// init handlers
	h := handlers.NewHandlers(cvService, log)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:    ":" + serverConfig.Port,
		Handler: r,
	}

	// start server
	go func() {
		log.Info("Server starting", logger.String("port", serverConfig.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error:", logger.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown:", logger.Error(err))
	}
}
