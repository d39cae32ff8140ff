package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <kind> <key>",
	Short: "List the revision history of one record, most recent first",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newManager()
		if err != nil {
			logFatalln(err)
		}
		history, err := m.History(context.Background(), args[0], args[1])
		if err != nil {
			logFatalln(err)
		}
		highlight := color.New(color.FgYellow).SprintFunc()
		for i, rev := range history {
			marker := " "
			if i == 0 {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, highlight(rev))
		}
		fmt.Printf("%d revision(s)\n", len(history))
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
