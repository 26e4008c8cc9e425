package cmd

import (
	"github.com/spf13/cobra"

	"github.com/csg33k/masterdash/internal/terminal"
)

var listFlags viewFlags

var ListCmd = &cobra.Command{
	Use:       "list <employees|customers>",
	Short:     "Print one page of a dataset",
	Args:      cobra.ExactArgs(1),
	ValidArgs: entities,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()
		view, err := loadEntity(cmd.Context(), s.data, s.loc, args[0], listFlags.state())
		if err != nil {
			return err
		}
		return terminal.Render(cmd.OutOrStdout(), view.page, s.loc)
	},
}

func init() {
	listFlags.add(ListCmd, true)
}
