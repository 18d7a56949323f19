package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd создаёт команду, печатающую версию и дату сборки клиента.
//
//	projectctl version
//	projectctl version --short
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Показать версию и дату сборки",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%s\nbuild_date=%s\ngo=%s %s/%s\n",
				buildVersion, buildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")

	return cmd
}
