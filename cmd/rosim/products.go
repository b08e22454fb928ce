package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProductsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the membrane products in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}

			specs := reg.Products()

			if asJSON {
				type entry struct {
					Name      string  `json:"name"`
					AValue    float64 `json:"a_value"`
					BValue    float64 `json:"b_value"`
					AreaM2    float64 `json:"area_m2"`
					DPElement float64 `json:"default_dp_element"`
					OsmCoef   float64 `json:"default_osm_coef"`
				}
				out := make([]entry, 0, len(specs))
				for _, s := range specs {
					out = append(out, entry{
						Name:      s.Name,
						AValue:    s.AValue,
						BValue:    s.BValue,
						AreaM2:    s.AreaM2,
						DPElement: s.DPElement,
						OsmCoef:   s.OsmCoef,
					})
				}
				return printJSON(out)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tA (m/s/bar)\tB (m/s)\tAREA (m2)\tDP/ELEMENT (bar)\tOSM COEF")
			for _, s := range specs {
				fmt.Fprintf(w, "%s\t%.3g\t%.3g\t%.1f\t%.2f\t%.2g\n",
					s.Name, s.AValue, s.BValue, s.AreaM2, s.DPElement, s.OsmCoef)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}
