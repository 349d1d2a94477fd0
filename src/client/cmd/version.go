package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apimgr/swapi/src/common/version"
)

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			info := version.Get()

			fmt.Fprintf(out, "%s v%s (%s) built %s\n", getBinaryName(), info.Version, info.ShortCommit(), info.BuildDate)
			fmt.Fprintf(out, "\nAPI: %s\n", a.v.GetString("api.base_url"))
			fmt.Fprintf(out, "\nBuild Info:\n%s\n", info.Full())
		},
	}
}
