package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/agent/api"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/agent/config"
)

// NewWhoAmICmd создаёт команду проверки access токена через защищённый эндпоинт.
//
// Если сервер отвечает 401 и есть refresh токен, команда один раз обновляет
// access токен, сохраняет его и повторяет запрос.
func NewWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Проверить access токен (GET /api/auth/protected)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds.AccessToken == "" {
				return fmt.Errorf("no access_token in config, run: authctl login")
			}

			c := NewAPIClient(app.ServerURL, app.Insecure)
			msg, err := c.WhoAmI(app.Creds.AccessToken)
			if api.IsUnauthorized(err) && app.Creds.RefreshToken != "" {
				resp, rerr := c.Refresh(app.Creds.RefreshToken)
				if rerr != nil {
					return fmt.Errorf("session expired, run: authctl login: %w", rerr)
				}
				app.Creds.AccessToken = resp.AccessToken
				if err := config.Save(app.CredsPath, app.Creds); err != nil {
					return err
				}
				msg, err = c.WhoAmI(app.Creds.AccessToken)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
