package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	serr "github.com/IvanChernomyrdin/projectkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/logger"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
)

const projectColumns = `id, name, status, deadline, assigned_team_member, budget, created_at, updated_at`

// ProjectsRepository — доступ к таблице projects.
type ProjectsRepository struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewProjectsRepository создаёт новый экземпляр ProjectsRepository.
func NewProjectsRepository(db *sql.DB, log *logger.HTTPLogger) *ProjectsRepository {
	return &ProjectsRepository{db: db, log: sugar(log)}
}

// BuildListQuery собирает SELECT по таблице projects с учётом фильтров.
//
// Значения фильтров всегда уходят параметрами ($1, $2, ...), в текст
// запроса попадают только фиксированные фрагменты. Порядок аргументов
// совпадает с порядком плейсхолдеров.
//
//	status  — точное совпадение; пустой или "all" не фильтрует
//	search  — ILIKE по name ИЛИ assigned_team_member, подстрока как литерал
func BuildListQuery(f models.ProjectFilter) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`SELECT ` + projectColumns + ` FROM projects WHERE 1=1`)

	if status := strings.TrimSpace(f.Status); status != "" && status != models.StatusAll {
		args = append(args, status)
		sb.WriteString(` AND status = $` + strconv.Itoa(len(args)))
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := strconv.Itoa(len(args))
		sb.WriteString(` AND (name ILIKE $` + n + ` OR assigned_team_member ILIKE $` + n + `)`)
	}

	sb.WriteString(` ORDER BY created_at DESC, id DESC`)

	return sb.String(), args
}

// escapeLike экранирует метасимволы LIKE (escape-символ по умолчанию в PostgreSQL — \).
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Status,
		&p.Deadline,
		&p.AssignedTeamMember,
		&p.Budget,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// List возвращает проекты по фильтру, новые первыми.
// Пустой результат — пустой срез, не nil.
func (r *ProjectsRepository) List(ctx context.Context, f models.ProjectFilter) ([]models.Project, error) {
	query, args := BuildListQuery(f)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorw("list projects", "error", err, "status", f.Status, "search", f.Search)
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	result := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			r.log.Errorw("scan project", "error", err)
			return nil, serr.ErrInternal
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		r.log.Errorw("iterate projects", "error", err)
		return nil, serr.ErrInternal
	}

	return result, nil
}

// GetByID возвращает проект по id.
// Отсутствие строки — found=false и nil-ошибка.
func (r *ProjectsRepository) GetByID(ctx context.Context, id int64) (models.Project, bool, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, false, nil
		}
		r.log.Errorw("get project", "error", err, "id", id)
		return models.Project{}, false, serr.ErrInternal
	}
	return p, true, nil
}

// Create вставляет проект и возвращает сохранённую строку.
func (r *ProjectsRepository) Create(ctx context.Context, p models.Project) (models.Project, error) {
	created, err := scanProject(r.db.QueryRowContext(ctx, `
		INSERT INTO projects (name, status, deadline, assigned_team_member, budget)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+projectColumns,
		p.Name,
		p.Status,
		p.Deadline,
		p.AssignedTeamMember,
		p.Budget,
	))
	if err != nil {
		r.log.Errorw("insert project", "error", err)
		return models.Project{}, serr.ErrInternal
	}
	return created, nil
}

// Update полностью заменяет изменяемые поля проекта и обновляет updated_at.
// Отсутствие строки — found=false и nil-ошибка.
func (r *ProjectsRepository) Update(ctx context.Context, id int64, p models.Project) (models.Project, bool, error) {
	updated, err := scanProject(r.db.QueryRowContext(ctx, `
		UPDATE projects
		SET name = $1,
		    status = $2,
		    deadline = $3,
		    assigned_team_member = $4,
		    budget = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING `+projectColumns,
		p.Name,
		p.Status,
		p.Deadline,
		p.AssignedTeamMember,
		p.Budget,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, false, nil
		}
		r.log.Errorw("update project", "error", err, "id", id)
		return models.Project{}, false, serr.ErrInternal
	}
	return updated, true, nil
}

// Delete удаляет проект. Возвращает false, если строки с таким id не было.
func (r *ProjectsRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		r.log.Errorw("delete project", "error", err, "id", id)
		return false, serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		r.log.Errorw("delete project: rows affected", "error", err, "id", id)
		return false, serr.ErrInternal
	}
	return n > 0, nil
}
