package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMeCmd создаёт команду, показывающую пользователя текущего токена.
func NewMeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Показать текущего пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}
			u, err := app.Client().Me(token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "id=%s\nemail=%s\nname=%s\n", u.ID, u.Email, u.Name)
			return nil
		},
	}
}
