// Package http реализует маршрутизацию HTTP-слоя сервера projectkeeper.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - общие middleware: request id, real ip, recoverer, CORS, логирование;
//   - подключение проверки токена к защищённым маршрутам.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/projectkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер регистрирует:
//   - /health и /swagger/* вне /api;
//   - публичные /api/auth/register и /api/auth/login;
//   - /api/auth/me и всю группу /api/projects за проверкой токена.
//
// CORS включается, только если в конфиге заданы allowed_origins.
func NewRouter(h *api.Handler, corsCfg config.CORSConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(chimw.Recoverer)

	if len(corsCfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsCfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           corsCfg.MaxAge,
		}))
	}

	r.Get("/health", h.Health)
	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	auth := h.Verifier.AuthMiddleware()

	r.Route("/api", func(r chi.Router) {
		// Публичные пути
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.With(auth).Get("/me", h.Me)
		})

		// защищены пути
		r.Route("/projects", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", h.ListProjects)
			r.Post("/", h.CreateProject)
			r.Get("/{id}", h.GetProject)
			r.Put("/{id}", h.UpdateProject)
			r.Delete("/{id}", h.DeleteProject)
		})
	})

	return r
}
