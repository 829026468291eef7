package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewUsersCmd создаёт команду вывода списка пользователей (GET /api/user).
func NewUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Список зарегистрированных пользователей",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := NewAPIClient(app.ServerURL, app.Insecure).Users()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, u := range users {
				fmt.Fprintf(tw, "%d\t%s\n", u.ID, u.Name)
			}
			return tw.Flush()
		},
	}
}
