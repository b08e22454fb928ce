package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/osmoflow/rosim/internal/domain"
	"github.com/osmoflow/rosim/internal/transport"
	"github.com/osmoflow/rosim/internal/vessel"
	"github.com/osmoflow/rosim/pkg/log"
)

func newSimulateCmd() *cobra.Command {
	var (
		in     domain.SimulationInput
		noSave bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a vessel simulation and append it to the history",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}

			sim := vessel.New(reg, transport.DefaultParams(), logger)
			res, err := sim.Simulate(in)
			if err != nil {
				return err
			}

			if !noSave {
				store, err := openHistory()
				if err != nil {
					return err
				}
				defer closeHistory(store)

				rec := domain.HistoryRecord{Timestamp: time.Now(), Result: res}
				if err := store.Append(context.Background(), rec); err != nil {
					// The result is still valid; the run just isn't recorded.
					logger.Warn("append history", log.Err(err))
				}
			}

			if asJSON {
				return printJSON(toResultJSON(res))
			}
			printResultTable(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Product, "product", "", "membrane product name (required)")
	cmd.Flags().Float64Var(&in.FeedFlow, "feed-flow", 0, "feed flow in m3/h")
	cmd.Flags().Float64Var(&in.FeedTDS, "feed-tds", 0, "feed TDS in mg/L")
	cmd.Flags().Float64Var(&in.FeedPressure, "feed-pressure", 0, "feed pressure in bar")
	cmd.Flags().Float64Var(&in.Temperature, "temperature", 25.0, "feed temperature in degC")
	cmd.Flags().IntVar(&in.NumElements, "elements", 1, "number of elements in series")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not append the run to the history")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	if err := cmd.MarkFlagRequired("product"); err != nil {
		panic(fmt.Sprintf("mark product flag required: %v", err))
	}

	return cmd
}
