package tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/projectkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/projectkeeper/internal/server/service/mocks"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/logger"
)

type testDeps struct {
	users    *svcmocks.MockUsersRepo
	projects *svcmocks.MockProjectsRepo
	health   *svcmocks.MockHealthRepo
	cfg      *config.Config
	svc      *service.Services
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:    "issuer",
			Audience:  "audience",
			AccessTTL: time.Minute,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456", // >= 32
			},
		},
		Password: config.PasswordConfig{
			Hasher:    "argon2id",
			MinLength: 8,
			Argon2: config.Argon2Config{
				Time:      1,
				MemoryKiB: 8 * 1024,
				Threads:   1,
				KeyLen:    32,
				SaltLen:   16,
			},
		},
		Projects: config.ProjectsConfig{AllowedStatuses: config.DefaultStatuses},
	}
}

// NewTestHandler создаёт Handler с настоящими сервисами поверх мок-репозиториев
func NewTestHandler(t *testing.T) (*api.Handler, *testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	d := &testDeps{
		users:    svcmocks.NewMockUsersRepo(ctrl),
		projects: svcmocks.NewMockProjectsRepo(ctrl),
		health:   svcmocks.NewMockHealthRepo(ctrl),
		cfg:      testConfig(),
	}
	d.svc = service.NewServices(service.Repositories{
		Users:    d.users,
		Projects: d.projects,
		Health:   d.health,
	}, d.cfg)

	verifier := middleware.NewJWTVerifier(d.svc.Auth)
	log := logger.New(logger.Options{Dir: t.TempDir(), FileName: "http.log"})

	return api.NewHandler(d.svc, log, verifier), d
}

// withURLParam эмулирует разбор {id} роутером chi
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
