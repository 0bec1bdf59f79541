package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/config"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/database"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/handler"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/logger"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/middleware"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/queue"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/repository"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/router"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	issues := repository.NewIssueRepo(db)
	labels := repository.NewLabelRepo(db)
	comments := repository.NewCommentRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	issueH := handler.NewIssueHandler(issues, users, log)
	labelH := handler.NewLabelHandler(labels)
	commentH := handler.NewCommentHandler(comments)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.Register(e, authH, issueH, labelH, commentH, cfg.JWTSecret, rdb)

	if os.Getenv("RABBITMQ_CONSUMER") == "1" {
		go func() {
			if err := queue.StartIssueConsumer(log); err != nil {
				log.Error().Err(err).Msg("issue event consumer stopped")
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
