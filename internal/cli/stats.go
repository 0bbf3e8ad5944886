package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsDB string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "List the frequency tables recorded in the stats database",
	Run: func(cmd *cobra.Command, args []string) {
		db, store, err := openStore(statsDB)
		if err != nil {
			exitErr("stats", err)
		}
		defer func() {
			store.Close()
			_ = db.Close()
		}()

		metas, err := store.ListTables(cmd.Context())
		if err != nil {
			exitErr("stats", err)
		}
		if len(metas) == 0 {
			fmt.Println("no tables recorded")
			return
		}
		fmt.Println("table\ttotal\tupdated")
		for _, m := range metas {
			fmt.Printf("%s\t%d\t%s\n", m.Name, m.Total, m.UpdatedAt)
		}
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsDB, "db", "Output/stats.db", "Stats database path")
	RootCmd.AddCommand(statsCmd)
}
