package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/agent/config"
)

// NewLogoutCmd удаляет локально сохранённые токены. На сервере ничего не меняется.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Удалить сохранённые токены",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Remove(app.CredsPath); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}

			fmt.Fprintln(cmd.OutOrStdout(), "logout ok (tokens removed)")
			return nil
		},
	}
}
