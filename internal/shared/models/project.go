package models

import (
	"time"

	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/utils"
)

// StatusAll — значение фильтра status, означающее «без ограничения по статусу».
// Хранимым статусом проекта быть не может.
const StatusAll = "all"

// Project — проект в том виде, в котором он хранится и отдаётся в HTTP API.
//
// ID назначается базой и после этого не меняется.
// CreatedAt/UpdatedAt проставляются сервером.
type Project struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Status             string    `json:"status"`
	Deadline           Date      `json:"deadline" swaggertype:"string" format:"date" example:"2025-01-01"`
	AssignedTeamMember string    `json:"assigned_team_member"`
	Budget             float64   `json:"budget"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProjectInput — тело запросов создания и обновления проекта.
//
// Используется в:
//
//	POST /api/projects
//	PUT  /api/projects/{id}
//
// Поля — указатели, чтобы отличать «не передано» от нулевого значения.
// PUT — полная замена: все поля обязательны и при обновлении.
type ProjectInput struct {
	Name               *string  `json:"name"`
	Status             *string  `json:"status"`
	Deadline           *Date    `json:"deadline" swaggertype:"string" format:"date" example:"2025-01-01"`
	AssignedTeamMember *string  `json:"assigned_team_member"`
	Budget             *float64 `json:"budget"`
}

// ProjectFilter — фильтры списка проектов (GET /api/projects?status=&search=).
//
// Status применяется, если не пуст и не равен StatusAll.
// Search ищет подстроку без учёта регистра в name или assigned_team_member.
type ProjectFilter struct {
	Status string
	Search string
}

// FromProject заполняет ProjectInput текущими значениями проекта.
// Нужен клиенту, чтобы отправить полную замену после изменения пары полей.
func FromProject(p Project) ProjectInput {
	return ProjectInput{
		Name:               utils.Ptr(p.Name),
		Status:             utils.Ptr(p.Status),
		Deadline:           utils.Ptr(p.Deadline),
		AssignedTeamMember: utils.Ptr(p.AssignedTeamMember),
		Budget:             utils.Ptr(p.Budget),
	}
}
