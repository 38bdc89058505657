package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/app"
	"github.com/OptimisticTrousers/word-reminder-sub001/config"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	// Replaced once the configured level is known
	if err := app.MakeLogger("info"); err != nil {
		panic(err)
	}

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	if err := app.MakeLogger(viper.GetString("app.log_level")); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, closer, err := app.NewDeps(ctx)
	if err != nil {
		panic(err)
	}
	defer closer.Close()

	router := app.NewRouter(d, app.RouterOpts{
		CORSOrigins: viper.GetStringSlice("host.cors_origins"),
		RateLimit:   viper.GetInt("security.rate_limit"),
	})

	go service.ReminderSweeper(ctx, viper.GetDuration("reminders.sweep_interval"), d.Store)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", viper.GetInt("host.port")),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Failed to shut down server", zap.Error(err))
		}
	}()

	zap.L().Info("Server starting", zap.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
