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

	"igreja_backend/internal/cache"
	"igreja_backend/internal/config"
	api "igreja_backend/internal/http"
	"igreja_backend/internal/logger"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		logger.Init("info", true)
		logger.Get(context.Background()).Fatal().Err(err).Msg("configuração inválida")
	}

	logger.Init(os.Getenv("LOG_LEVEL"), env.Environment == "production")
	log := logger.Get(context.Background())

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := config.ConnectDB(env.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao conectar ao banco")
	}
	defer db.Close()

	rdb, err := config.ConnectRedis(env.RedisAddr, env.RedisPassword, env.RedisDB)
	if err != nil {
		// the cache is an accelerator; every read path degrades to the store,
		// so boot proceeds with a client that keeps retrying
		log.Warn().Err(err).Msg("redis indisponível, seguindo sem cache quente")
		rdb = config.NewRedisClient(env.RedisAddr, env.RedisPassword, env.RedisDB)
	}
	defer rdb.Close()
	store := cache.New(rdb)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           api.NewRouter(env, db, store),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", env.AppAddr).Msg("servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("falha ao iniciar o servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("encerrando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("encerramento forçado")
	}

	log.Info().Msg("servidor encerrado")
}
