package solve

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groupsolver/grouper/pkg/grouper"
)

func NewSolveCommand() *cobra.Command {
	var (
		solutions int
		groupSize int
		total     int
	)

	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Enumerates valid selections for a group-selection problem",
		Long: `Enumerates distinct valid selections for a group-selection problem
given as a TOML file. For instance:

names = ["a", "b", "c", "d", "e", "f", "g", "h"]

[props]
G1 = ["a", "b", "c", "d"]
G2 = ["e", "f", "g", "h"]

[limits]
avoid-grouping = [["a", "e"]]
ignore-group = ["G2"]
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd, args[0], solutions, groupSize, total)
		},
	}

	cmd.Flags().IntVarP(&solutions, "solutions", "n", grouper.DefaultSolutionCap, "maximum number of distinct selections to enumerate")
	cmd.Flags().IntVar(&groupSize, "group-size", grouper.DefaultGroupSize, "selected members required per active group")
	cmd.Flags().IntVar(&total, "total", grouper.DefaultTotal, "items selected overall")
	return cmd
}

func solve(cmd *cobra.Command, path string, n, groupSize, total int) error {
	problem, err := grouper.LoadProblem(path)
	if err != nil {
		return err
	}

	s := grouper.New(problem, grouper.WithGroupSize(groupSize), grouper.WithTotal(total))
	it := s.Iterator()

	found := 0
	for found < n {
		sol, ok := it.Next(cmd.Context())
		if !ok {
			break
		}
		found++
		fmt.Fprintf(cmd.OutOrStdout(), "Selection %d\n%s\n", found, sol)
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("enumeration failed after %d selections: %w", found, err)
	}
	if found == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no valid selections")
	}
	return nil
}
