package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/pricing"
	"github.com/Soborbo/bristolhouseclearances/utils"
)

func estimateCmd() *cobra.Command {
	var (
		itemFlags   []string
		accessFlags []string
		miles       float64
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Price a quote from the command line",
		Example: `  bhc estimate --item sofa_qty=1 --item mattress_qty=2 --access no-lift
  bhc estimate --item room_qty=1 --miles 12.34`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := parseItems(itemFlags)
			if err != nil {
				return err
			}
			for _, code := range accessFlags {
				if !models.IsAccessIssue(code) {
					return fmt.Errorf("unknown access issue %q", code)
				}
			}
			if miles < 0 {
				return fmt.Errorf("miles must not be negative")
			}

			printEstimate(cmd.OutOrStdout(), pricing.Compute(items, accessFlags, miles))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&itemFlags, "item", nil, "item quantity as code=qty (repeatable)")
	cmd.Flags().StringArrayVar(&accessFlags, "access", nil, "access issue code (repeatable)")
	cmd.Flags().Float64Var(&miles, "miles", 0, "distance from the depot in miles")
	return cmd
}

// parseItems turns code=qty pairs into a quantity map
func parseItems(pairs []string) (map[string]int, error) {
	items := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		code, qtyText, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid item %q, expected code=qty", pair)
		}
		if !models.IsCatalogItem(code) {
			return nil, fmt.Errorf("unknown item %q", code)
		}
		qty, err := strconv.Atoi(qtyText)
		if err != nil || qty < 0 || qty > 99 {
			return nil, fmt.Errorf("invalid quantity %q for %s, expected 0-99", qtyText, code)
		}
		items[code] += qty
	}
	return items, nil
}

func printEstimate(w io.Writer, result models.PriceResult) {
	if len(result.Breakdown) == 0 {
		fmt.Fprintln(w, "Nothing selected")
	}
	for _, line := range result.Breakdown {
		fmt.Fprintf(w, "%-36s %6s x %10s = %10s\n",
			line.Label,
			strconv.FormatFloat(line.Quantity, 'f', -1, 64),
			utils.FormatGBP(line.UnitPrice),
			utils.FormatGBP(line.LineTotal))
	}
	fmt.Fprintf(w, "%-36s %32s\n", "Total", utils.FormatGBP(result.Total))
}
