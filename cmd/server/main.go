// @title           ProjectKeeper API
// @version         1.0
// @description     Projects tracker backend: JWT authentication and CRUD over projects.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения projectkeeper.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации из CONFIG_PATH или ./configs/server.yaml;
//   - открытие пула соединений с PostgreSQL и его закрытие при остановке;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск HTTP или HTTPS (если включён tls) с таймаутами из конфига;
//   - graceful shutdown по SIGINT, SIGTERM, SIGQUIT.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/projectkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/middleware"
	h "github.com/IvanChernomyrdin/projectkeeper/internal/server/net/http"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/repository"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/service"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/projectkeeper/swagger/docs"
)

func main() {
	// до чтения конфига пишем в лог по умолчанию
	boot := logger.NewHTTPLogger().Sugar()

	if err := godotenv.Load(); err != nil {
		boot.Warnf("no .env file loaded, error: %v", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		boot.Fatal(err)
	}

	httpLogger := logger.New(cfg.Log.LoggerOptions())
	defer httpLogger.Sync()
	sugar := httpLogger.Sugar()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем базу данных
	db, err := config.OpenPostgres(ctx, cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer db.Close()

	// создаём репы
	repos := service.Repositories{
		Users:    repository.NewUsersRepository(db, httpLogger),
		Projects: repository.NewProjectsRepository(db, httpLogger),
		Health:   repository.NewHealthRepository(db),
	}
	// создаём сервисы
	svc := service.NewServices(repos, cfg)
	// гейт для защищённых маршрутов
	verifier := middleware.NewJWTVerifier(svc.Auth)
	// создаём хандлер и роутер
	handler := api.NewHandler(svc, httpLogger, verifier)
	router := h.NewRouter(handler, cfg.CORS)

	addr := cfg.Addr()

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infow("server started", "addr", addr, "tls", cfg.TLS.Enabled, "env", cfg.Env)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
