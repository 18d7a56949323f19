package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
)

const projectsPath = "/api/projects"

func projectPath(id int64) string {
	return projectsPath + "/" + strconv.FormatInt(id, 10)
}

// ListProjects возвращает проекты с учётом фильтров status и search.
// Пустые фильтры в query не передаются.
func (c *Client) ListProjects(token string, filter models.ProjectFilter) ([]models.Project, error) {
	q := url.Values{}
	if s := strings.TrimSpace(filter.Status); s != "" {
		q.Set("status", s)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		q.Set("search", s)
	}

	path := projectsPath
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp := []models.Project{}
	if err := c.GetJSON(path, &resp, token); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetProject возвращает проект по id.
func (c *Client) GetProject(token string, id int64) (models.Project, error) {
	var resp models.Project
	err := c.GetJSON(projectPath(id), &resp, token)
	return resp, err
}

// CreateProject создаёт проект и возвращает его с назначенным id.
func (c *Client) CreateProject(token string, in models.ProjectInput) (models.Project, error) {
	var resp models.Project
	err := c.PostJSON(projectsPath, in, &resp, token)
	return resp, err
}

// UpdateProject полностью заменяет поля проекта (PUT).
func (c *Client) UpdateProject(token string, id int64, in models.ProjectInput) (models.Project, error) {
	var resp models.Project
	err := c.PutJSON(projectPath(id), in, &resp, token)
	return resp, err
}

// DeleteProject удаляет проект. Сервер отвечает 204 без тела.
func (c *Client) DeleteProject(token string, id int64) error {
	return c.DeleteJSON(projectPath(id), nil, token)
}
