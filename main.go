package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/nemopss/fin-ng/ledger/api"
	"github.com/nemopss/fin-ng/ledger/config"
	"github.com/nemopss/fin-ng/ledger/db"
	_ "github.com/nemopss/fin-ng/ledger/docs"
)

// @title Ledger API
// @version 1.0
// @description Anonymous personal finance ledger. The first POST /transactions issues a sessionId cookie that scopes all reads.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger := newLogger(cfg)

	// Подключение к базе и создание таблицы
	storage, err := db.NewStorage(cfg.DatabaseClient, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Str("client", cfg.DatabaseClient).Msg("connect to database")
	}
	defer storage.Close()

	gin.SetMode(ginMode(cfg.Env))

	handler := api.NewHandler(storage, logger)

	r := gin.New()
	r.Use(api.RequestLogger(logger), api.Recovery(logger))
	handler.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server is listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// Корректное завершение по сигналу
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Env == config.EnvDevelopment {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func ginMode(env string) string {
	switch env {
	case config.EnvDevelopment:
		return gin.DebugMode
	case config.EnvTest:
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
