package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

var showCmd = &cobra.Command{
	Use:   "show <kind> <key> [rev]",
	Short: "Print a record's stored snapshot, latest or as of a revision",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		rev := ""
		if len(args) == 3 {
			rev = args[2]
		}
		m, err := newManager()
		if err != nil {
			logFatalln(err)
		}
		snap, err := m.VersionAt(context.Background(), args[0], args[1], rev)
		if err != nil {
			logFatalln(err)
		}
		buf, err := yaml.Marshal(map[string]interface{}{
			"field":   snap.Field,
			"related": snap.Related,
		})
		if err != nil {
			logFatalln(err)
		}
		fmt.Print(string(buf))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
