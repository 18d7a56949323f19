package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	serr "github.com/IvanChernomyrdin/projectkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/utils"
)

// NewProjectsCmd создаёт группу команд для работы с проектами.
//
// Все подкоманды требуют сохранённого токена (projectctl login).
func NewProjectsCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Работа с проектами",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", outputTable, "output format: table|json")

	cmd.AddCommand(newProjectsListCmd(app, &output))
	cmd.AddCommand(newProjectsGetCmd(app, &output))
	cmd.AddCommand(newProjectsCreateCmd(app, &output))
	cmd.AddCommand(newProjectsUpdateCmd(app, &output))
	cmd.AddCommand(newProjectsDeleteCmd(app))

	return cmd
}

func newProjectsListCmd(app *App, output *string) *cobra.Command {
	var filter models.ProjectFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список проектов (новые сверху)",
		Long: `Список проектов.

Пример:
  projectctl projects list
  projectctl projects list --status active --search alice -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}
			projects, err := app.Client().ListProjects(token, filter)
			if err != nil {
				return err
			}
			return printProjects(cmd.OutOrStdout(), *output, projects)
		},
	}

	cmd.Flags().StringVar(&filter.Status, "status", "", "filter by status (all = no filter)")
	cmd.Flags().StringVar(&filter.Search, "search", "", "case-insensitive substring of name or assignee")

	return cmd
}

func newProjectsGetCmd(app *App, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Показать проект",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			token, err := app.Token()
			if err != nil {
				return err
			}
			p, err := app.Client().GetProject(token, id)
			if err != nil {
				return err
			}
			return printProject(cmd.OutOrStdout(), *output, p)
		},
	}
}

// projectFlags — флаги полей проекта, общие для create и update.
type projectFlags struct {
	name     string
	status   string
	deadline string
	assignee string
	budget   float64
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "project name")
	cmd.Flags().StringVar(&f.status, "status", "", "project status")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "deadline, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.assignee, "assignee", "", "assigned team member")
	cmd.Flags().Float64Var(&f.budget, "budget", 0, "budget, >= 0")
}

// apply переносит в in только явно переданные флаги.
func (f *projectFlags) apply(cmd *cobra.Command, in *models.ProjectInput) (changed int, err error) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = utils.Ptr(f.name)
		changed++
	}
	if flags.Changed("status") {
		in.Status = utils.Ptr(f.status)
		changed++
	}
	if flags.Changed("deadline") {
		d, err := models.ParseDate(strings.TrimSpace(f.deadline))
		if err != nil {
			return 0, fmt.Errorf("%w: %w", serr.ErrInvalidInput, err)
		}
		in.Deadline = &d
		changed++
	}
	if flags.Changed("assignee") {
		in.AssignedTeamMember = utils.Ptr(f.assignee)
		changed++
	}
	if flags.Changed("budget") {
		in.Budget = utils.Ptr(f.budget)
		changed++
	}
	return changed, nil
}

func newProjectsCreateCmd(app *App, output *string) *cobra.Command {
	var f projectFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать проект",
		Long: `Создать проект. Статус по умолчанию — active.

Пример:
  projectctl projects create --name "Website redesign" --deadline 2025-06-30 --assignee Alice --budget 1500
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.ProjectInput{Status: utils.Ptr(defaultProjectStatus)}
			if _, err := f.apply(cmd, &in); err != nil {
				return err
			}

			token, err := app.Token()
			if err != nil {
				return err
			}
			p, err := app.Client().CreateProject(token, in)
			if err != nil {
				return err
			}
			return printProject(cmd.OutOrStdout(), *output, p)
		},
	}

	f.register(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("deadline")
	cmd.MarkFlagRequired("assignee")
	cmd.MarkFlagRequired("budget")

	return cmd
}

func newProjectsUpdateCmd(app *App, output *string) *cobra.Command {
	var f projectFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменить проект",
		Long: `Изменить поля проекта.

Непереданные поля остаются как есть: клиент читает проект
и отправляет серверу полную замену с изменёнными полями.

Пример:
  projectctl projects update 7 --status completed
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			token, err := app.Token()
			if err != nil {
				return err
			}

			c := app.Client()
			current, err := c.GetProject(token, id)
			if err != nil {
				return err
			}

			in := models.FromProject(current)
			changed, err := f.apply(cmd, &in)
			if err != nil {
				return err
			}
			if changed == 0 {
				return fmt.Errorf("%w: nothing to update, pass at least one field flag", serr.ErrInvalidInput)
			}

			p, err := c.UpdateProject(token, id, in)
			if err != nil {
				return err
			}
			return printProject(cmd.OutOrStdout(), *output, p)
		},
	}

	f.register(cmd)
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить проект",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			token, err := app.Token()
			if err != nil {
				return err
			}
			if err := app.Client().DeleteProject(token, id); err != nil {
				if errors.Is(err, serr.ErrNotFound) {
					return fmt.Errorf("project %d not found", id)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "project %d deleted\n", id)
			return nil
		},
	}
}

const defaultProjectStatus = "active"

func parseProjectID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w %q: want a positive integer", serr.ErrInvalidProjectID, s)
	}
	return id, nil
}
