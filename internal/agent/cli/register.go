package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Сервер сразу возвращает токен сессии, он сохраняется так же, как при login.
//
// Пример использования:
//
//	projectctl register --email test@example.com --name Test --password StrongPass123
func NewRegisterCmd(app *App) *cobra.Command {
	var email, name, password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  projectctl register --email test@example.com --name Test --password StrongPass123
  echo StrongPass123 | projectctl register --email test@example.com --name Test --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(cmd, password, passwordStdin)
			if err != nil {
				return err
			}

			// выполняет добавление нового пользователя в бд
			resp, err := app.Client().Register(email, pw, name)
			if err != nil {
				return err
			}
			if err := app.saveToken(resp.Token, resp.User.Email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registration successful: %s (token saved)\n", resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}
