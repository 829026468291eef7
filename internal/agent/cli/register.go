package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Обязательны --name и --email. Пароль берётся из --password, из stdin
// (--password-stdin) или запрашивается с терминала вместе с подтверждением.
// --confirm по умолчанию равен паролю только при чтении из stdin.
//
// Пример использования:
//
//	authctl register --name Alice --email alice@example.com
//
// Регистрация не выдаёт токены, после неё нужно выполнить login.
func NewRegisterCmd(app *App) *cobra.Command {
	var name, email, password, confirm string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя.

Примеры:
  authctl register --name Alice --email alice@example.com
  echo -n 'StrongPass123' | authctl register --name Alice --email alice@example.com --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := ReadPassword(cmd, "Password: ", passwordStdin)
				if err != nil {
					return err
				}
				password = pw

				if confirm == "" && passwordStdin {
					confirm = password
				}
			}
			if confirm == "" {
				pw, err := ReadPassword(cmd, "Confirm password: ", false)
				if err != nil {
					return err
				}
				confirm = pw
			}

			c := NewAPIClient(app.ServerURL, app.Insecure)
			msg, err := c.Register(name, email, password, confirm)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if empty)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation (prompted if empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")

	return cmd
}
