package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/apimgr/swapi/src/client/api"
)

func (a *app) newCharactersCmd() *cobra.Command {
	var (
		id     string
		search string
	)

	cmd := &cobra.Command{
		Use:   "characters",
		Short: "Look up Star Wars characters",
		Long: `With this command, you can retrieve information about characters from Star Wars using the Star Wars Web API.

When both --id and --search are given, --id is used. Without either flag the
help text is shown.`,
		Example: `  ` + getBinaryName() + ` characters --id 1
  ` + getBinaryName() + ` characters --search vader`,
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case cmd.Flags().Changed("id"):
				return a.showCharacter(cmd, id)
			case cmd.Flags().Changed("search"):
				return a.searchCharacters(cmd, search)
			default:
				return cmd.Help()
			}
		},
	}

	cmd.Flags().StringVarP(&id, "id", "i", "", "Get a specific character by ID.")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search a character in the star wars API. Use this option if you don't know the unique ID of a specific character.")
	return cmd
}

func (a *app) showCharacter(cmd *cobra.Command, id string) error {
	client, err := a.newClient()
	if err != nil {
		return err
	}

	character, err := client.GetCharacter(cmd.Context(), id)
	if err != nil {
		return err
	}

	printCharacter(cmd.OutOrStdout(), *character)
	return nil
}

func (a *app) searchCharacters(cmd *cobra.Command, term string) error {
	client, err := a.newClient()
	if err != nil {
		return err
	}

	characters, err := client.SearchCharacters(cmd.Context(), term)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, c := range characters {
		printCharacter(out, c)
		fmt.Fprintln(out)
	}
	return nil
}

func printCharacter(w io.Writer, c api.Character) {
	fmt.Fprint(w, c.String())
}
