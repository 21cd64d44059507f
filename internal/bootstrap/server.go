package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/skyfarehq/skyfare/api"
	"github.com/skyfarehq/skyfare/config"
	"github.com/skyfarehq/skyfare/pkg/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Run serves the API and blocks until the context is cancelled or the
// server fails. Shutdown drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config, services api.Services) error {
	router := api.NewRouter(services)
	mountSwagger(router, cfg.HTTP.SwaggerDir)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	log := logger.WithComponent("bootstrap")

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("address", cfg.HTTP.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("http server stopped")
		return nil
	}
}

// mountSwagger serves the OpenAPI document from swaggerDir and the UI on
// top of it. Skipped when no directory is configured.
func mountSwagger(router *gin.Engine, swaggerDir string) {
	if swaggerDir == "" {
		return
	}
	router.StaticFile("/openapi.json", swaggerDir+"/openapi.json")
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/openapi.json"),
	)))
}
