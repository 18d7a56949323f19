package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/IvanChernomyrdin/projectkeeper/internal/server/config"
	serr "github.com/IvanChernomyrdin/projectkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/utils"
)

// ProjectsService реализует бизнес-логику работы с проектами.
// Сервис:
//   - валидирует входные данные;
//   - применяет политику статусов (ProjectsConfig);
//   - не знает о HTTP и БД напрямую.
type ProjectsService struct {
	repo     ProjectsRepo
	statuses map[string]struct{}
}

// NewProjectsService создаёт новый ProjectsService.
func NewProjectsService(repo ProjectsRepo, cfg config.ProjectsConfig) *ProjectsService {
	allowed := cfg.AllowedStatuses
	if len(allowed) == 0 {
		allowed = config.DefaultStatuses
	}

	statuses := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		statuses[s] = struct{}{}
	}
	return &ProjectsService{repo: repo, statuses: statuses}
}

// List возвращает проекты по фильтру, новые первыми.
//
// Пустой status или "all" — без фильтра по статусу,
// пустой search — без поиска. Неизвестный статус в фильтре не ошибка:
// такой запрос просто ничего не найдёт.
func (s *ProjectsService) List(ctx context.Context, f models.ProjectFilter) ([]models.Project, error) {
	f.Status = strings.TrimSpace(f.Status)
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.List(ctx, f)
}

// Get возвращает проект по id. found=false, если проекта нет.
func (s *ProjectsService) Get(ctx context.Context, id int64) (models.Project, bool, error) {
	if id <= 0 {
		return models.Project{}, false, nil
	}
	return s.repo.GetByID(ctx, id)
}

// Create проверяет поля и сохраняет новый проект.
//
// Ошибки:
//   - ErrInvalidInput — не хватает полей или они некорректны;
//   - ErrInternal — ошибка хранилища.
func (s *ProjectsService) Create(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	p, err := s.validate(in)
	if err != nil {
		return models.Project{}, err
	}
	return s.repo.Create(ctx, p)
}

// Update полностью заменяет изменяемые поля проекта.
// Требования к полям те же, что при создании. found=false, если проекта нет.
func (s *ProjectsService) Update(ctx context.Context, id int64, in models.ProjectInput) (models.Project, bool, error) {
	p, err := s.validate(in)
	if err != nil {
		return models.Project{}, false, err
	}
	if id <= 0 {
		return models.Project{}, false, nil
	}
	return s.repo.Update(ctx, id, p)
}

// Delete удаляет проект. deleted=false, если проекта не было.
func (s *ProjectsService) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return s.repo.Delete(ctx, id)
}

// MaxBudget — наибольший бюджет, который помещается в колонку NUMERIC(14,2).
const MaxBudget = 999999999999.99

// wholeCents сообщает, что в бюджете не больше двух знаков после запятой.
// Смотрим на кратчайшую десятичную запись float64: она совпадает с числом из JSON.
func wholeCents(b float64) bool {
	str := strconv.FormatFloat(b, 'f', -1, 64)
	dot := strings.IndexByte(str, '.')
	return dot < 0 || len(str)-dot-1 <= 2
}

// validate превращает ProjectInput в Project, проверяя каждое поле.
func (s *ProjectsService) validate(in models.ProjectInput) (models.Project, error) {
	var missing []string

	name := strings.TrimSpace(utils.Deref(in.Name))
	if name == "" {
		missing = append(missing, "name")
	}
	status := strings.TrimSpace(utils.Deref(in.Status))
	if status == "" {
		missing = append(missing, "status")
	}
	if in.Deadline == nil {
		missing = append(missing, "deadline")
	}
	member := strings.TrimSpace(utils.Deref(in.AssignedTeamMember))
	if member == "" {
		missing = append(missing, "assigned_team_member")
	}
	if in.Budget == nil {
		missing = append(missing, "budget")
	}

	if len(missing) > 0 {
		return models.Project{}, fmt.Errorf("%w: missing %s", serr.ErrInvalidInput, strings.Join(missing, ", "))
	}

	if _, ok := s.statuses[status]; !ok {
		return models.Project{}, fmt.Errorf("%w: %w %q", serr.ErrInvalidInput, serr.ErrUnknownStatus, status)
	}
	// 0001-01-01 не хранится: нулевая дата уходит в БД как NULL
	if in.Deadline.IsZero() {
		return models.Project{}, fmt.Errorf("%w: invalid deadline %q", serr.ErrInvalidInput, in.Deadline.Format(models.DateLayout))
	}
	if *in.Budget < 0 {
		return models.Project{}, fmt.Errorf("%w: budget must not be negative", serr.ErrInvalidInput)
	}
	if !(*in.Budget <= MaxBudget) {
		return models.Project{}, fmt.Errorf("%w: budget must not exceed %.2f", serr.ErrInvalidInput, MaxBudget)
	}
	if !wholeCents(*in.Budget) {
		return models.Project{}, fmt.Errorf("%w: budget must have at most 2 decimal places", serr.ErrInvalidInput)
	}

	return models.Project{
		Name:               name,
		Status:             status,
		Deadline:           *in.Deadline,
		AssignedTeamMember: member,
		Budget:             *in.Budget,
	}, nil
}
