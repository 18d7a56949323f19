// Package cli реализует командный интерфейс (CLI) клиента ProjectKeeper — projectctl.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку и сохранение локального токена сессии;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/projectkeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/projectkeeper/internal/agent/config"
	serr "github.com/IvanChernomyrdin/projectkeeper/internal/shared/errors"
)

// DefaultServerURL — адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:8080"

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// Экземпляр App создаётся при построении root-команды и передаётся в подкоманды.
type App struct {
	// ServerURL — базовый URL сервера (например, "http://127.0.0.1:8080").
	ServerURL string
	// Insecure отключает проверку TLS сертификата сервера.
	Insecure bool

	// CredsPath — путь к файлу с сохранённым токеном.
	CredsPath string
	// Creds — загруженные учётные данные.
	// Может быть nil, если загрузка не выполнялась.
	Creds *config.Credentials
}

// Client создаёт API-клиент для текущего сервера.
func (a *App) Client() *api.Client {
	return NewAPIClient(a.ServerURL, a.Insecure)
}

// Token возвращает сохранённый токен или ошибку, если пользователь не вошёл.
func (a *App) Token() (string, error) {
	if !a.Creds.LoggedIn() {
		return "", fmt.Errorf("%w: not logged in, run `projectctl login` first", serr.ErrUnauthorized)
	}
	return a.Creds.Token, nil
}

// saveToken сохраняет токен сессии в файл учётных данных.
func (a *App) saveToken(token, email string) error {
	if a.Creds == nil {
		a.Creds = &config.Credentials{}
	}
	a.Creds.Token = token
	a.Creds.Email = email
	a.Creds.ServerURL = a.ServerURL
	return config.Save(a.CredsPath, a.Creds)
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE определяется путь к файлу учётных данных и загружается токен.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "projectctl",
		Short: "projectctl — клиент ProjectKeeper (проекты и их статусы)",
		Long: `projectctl — CLI для сервера ProjectKeeper.

Команды:
  register  Регистрация нового пользователя
  login     Логин (получить и сохранить токен)
  logout    Удалить сохранённый токен
  me        Текущий пользователь
  projects  Список, просмотр, создание, изменение и удаление проектов
  version   Версия и дата сборки

Примеры:

Регистрация:
  projectctl register --email test@example.com --name Test --password StrongPass123

Логин (пароль спрашивается интерактивно):
  projectctl login --email test@example.com

Проекты:
  projectctl projects list --status active --search alice
  projectctl projects create --name "Website" --deadline 2025-06-30 --assignee Alice --budget 1500
  projectctl projects update 7 --status completed
  projectctl projects delete 7
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.CredsPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.CredsPath = p
			}

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	serverURL := os.Getenv("PROJECTKEEPER_SERVER")
	if serverURL == "" {
		serverURL = DefaultServerURL
	}

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", serverURL, "server base URL (env PROJECTKEEPER_SERVER)")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")
	cmd.PersistentFlags().StringVar(&app.CredsPath, "creds", "", "credentials file (default ~/.projectkeeper/credentials.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewProjectsCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
