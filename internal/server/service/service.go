// Package service содержит бизнес-логику приложения (projectkeeper).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_repos.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/projectkeeper/internal/server/config"
	srvmodels "github.com/IvanChernomyrdin/projectkeeper/internal/server/models"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users    UsersRepo
	Projects ProjectsRepo
	Health   HealthRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth     *AuthService
	Projects *ProjectsService
	Health   *HealthService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (хэширование, JWT) и ProjectsService (допустимые статусы).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.Users, cfg),
		Projects: NewProjectsService(repos.Projects, cfg.Projects),
		Health:   NewHealthService(repos.Health),
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login/me).
type UsersRepo interface {
	Create(ctx context.Context, email, name, passwordHash string) (srvmodels.User, error)
	GetByEmail(ctx context.Context, email string) (srvmodels.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (srvmodels.User, error)
}

// ProjectsRepo — репозиторий проектов (CRUD + список с фильтрами).
//
// Отсутствие строки в GetByID/Update/Delete не ошибка: это found/deleted == false.
type ProjectsRepo interface {
	List(ctx context.Context, f models.ProjectFilter) ([]models.Project, error)
	GetByID(ctx context.Context, id int64) (models.Project, bool, error)
	Create(ctx context.Context, p models.Project) (models.Project, error)
	Update(ctx context.Context, id int64, p models.Project) (models.Project, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// HealthService проверяет, что сервер может работать с базой.
type HealthService struct {
	repo HealthRepo
}

func NewHealthService(repo HealthRepo) *HealthService {
	return &HealthService{repo: repo}
}

// Check возвращает ошибку, если база недоступна.
func (s *HealthService) Check(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Ping(ctx)
}
