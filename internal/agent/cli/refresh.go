package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/agent/config"
)

// NewRefreshCmd создаёт CLI-команду для обновления access токена.
//
// Команда отправляет сохранённый refresh токен и сохраняет полученный
// access токен. Refresh токен сервер не ротирует, он остаётся прежним.
//
// Пример использования:
//
//	authctl refresh
func NewRefreshCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Обновить access токен по refresh токену",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds.RefreshToken == "" {
				return fmt.Errorf("no refresh_token in config, run: authctl login")
			}

			c := NewAPIClient(app.ServerURL, app.Insecure)
			resp, err := c.Refresh(app.Creds.RefreshToken)
			if err != nil {
				return err
			}

			app.Creds.AccessToken = resp.AccessToken
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "refresh ok (access token updated)")
			return nil
		},
	}

	return cmd
}
