package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd создаёт команду вывода информации о сборке authctl.
//
// Версия и дата задаются при сборке через -ldflags (см. cmd/authctl),
// версия Go и платформа берутся из runtime.
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Версия authctl, дата сборки и платформа",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(),
				"authctl version=%s\nbuild_date=%s\ngo=%s\nplatform=%s/%s\n",
				buildVersion, buildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH,
			)
			return err
		},
	}
}
