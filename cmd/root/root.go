package root

import (
	"github.com/spf13/cobra"

	"github.com/groupsolver/grouper/cmd/solve"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "grouper",
		Short: "Grouper is a SAT-backed group-selection solver",
		Long: `Grouper finds assignments of items to an active subset of groups that
satisfy all structural constraints, and enumerates distinct valid
assignments using a boolean satisfiability engine.`,
	}

	rootCmd.AddCommand(solve.NewSolveCommand())

	return rootCmd
}
