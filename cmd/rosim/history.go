package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past simulation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer closeHistory(store)

			records, err := store.Load(context.Background())
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}

			if limit > 0 && len(records) > limit {
				records = records[len(records)-limit:]
			}

			if asJSON {
				out := make([]resultJSON, 0, len(records))
				for _, rec := range records {
					rj := toResultJSON(rec.Result)
					rj.Timestamp = rec.Timestamp.Format(time.RFC3339)
					out = append(out, rj)
				}
				return printJSON(out)
			}

			if len(records) == 0 {
				fmt.Println("no history")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tPRODUCT\tELEMENTS\tFEED (m3/h)\tPERMEATE (m3/h)\tRECOVERY (%)\tPERMEATE TDS (mg/L)")
			for _, rec := range records {
				r := rec.Result
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.3f\t%.2f\t%.2f\n",
					formatTimestamp(rec.Timestamp), r.Product, r.NumElements,
					r.FeedFlow, r.PermeateFlow, r.RecoveryPct, r.PermeateTDS)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show only the most recent N runs (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the history as JSON")
	return cmd
}
