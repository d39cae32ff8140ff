package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <kind> <key> <rev> [rev]",
	Short: "Diff a record's snapshots between two revisions (or against latest)",
	Args:  cobra.RangeArgs(3, 4),
	Run: func(cmd *cobra.Command, args []string) {
		rev1 := ""
		if len(args) == 4 {
			rev1 = args[3]
		}
		m, err := newManager()
		if err != nil {
			logFatalln(err)
		}
		difference, err := m.DiffRevisions(context.Background(), args[0], args[1], args[2], rev1)
		if err != nil {
			logFatalln(err)
		}

		names := make([]string, 0, len(difference))
		for name := range difference {
			names = append(names, name)
		}
		sort.Strings(names)

		header := color.New(color.FgCyan, color.Bold).SprintFunc()
		for _, name := range names {
			if difference[name] == "" {
				continue
			}
			fmt.Println(header(name))
			fmt.Print(difference[name])
		}
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
