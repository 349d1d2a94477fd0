package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/apimgr/swapi/src/client/tui"
)

var errNoTerminal = errors.New("tui requires an interactive terminal")

func (a *app) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive character search",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, ok := cmd.OutOrStdout().(*os.File)
			if !ok || !term.IsTerminal(int(out.Fd())) {
				return errNoTerminal
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), client)
		},
	}
}
