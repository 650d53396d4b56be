/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labdash/lab"
)

var CmdIndicators = newIndicatorsCommand()

func newIndicatorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "indicators",
		Usage: "Print the indicator dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Value: string(lab.FilterAll),
				Usage: "filter by category (all, blood, urine, biochemistry)",
			},
			&cli.StringFlag{
				Name:  "tab",
				Value: string(lab.TabLatest),
				Usage: "what to print per indicator (latest, history, trend)",
			},
		},
		Action: printIndicators,
	}
}

func printIndicators(_ context.Context, cmd *cli.Command) error {
	category, err := lab.ParseCategory(cmd.String("category"))
	if err != nil {
		return err
	}

	tab, err := lab.ParseTab(cmd.String("tab"))
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if w := cmd.Root().Writer; w != nil {
		out = w
	}

	return writeIndicators(out, lab.FilterIndicators(category, lab.Indicators()), tab)
}

func writeIndicators(out io.Writer, list []lab.Indicator, tab lab.Tab) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	switch tab {
	case lab.TabHistory:
		fmt.Fprintln(w, "ID\tNAME\tDATE\tVALUE")
		for _, ind := range list {
			for _, p := range ind.History {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ind.ID, ind.Name, p.Date.Format("2006-01-02"), formatValue(p.Value))
			}
		}

	case lab.TabTrend:
		fmt.Fprintln(w, "ID\tNAME\tTREND\tVALUE\tFORECAST")
		for _, ind := range list {
			forecast := "-"
			if next, ok := lab.ProjectNext(ind.History); ok {
				forecast = strconv.FormatFloat(next, 'f', 2, 64)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ind.ID, ind.Name, ind.Trend, formatValue(ind.Value), forecast)
		}

	default:
		fmt.Fprintln(w, "ID\tNAME\tVALUE\tUNIT\tRANGE\tABNORMAL\tCATEGORY")
		for _, ind := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
				ind.ID, ind.Name, formatValue(ind.Value), ind.Unit, ind.NormalRange, ind.IsAbnormal, ind.Category)
		}
	}

	return w.Flush()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
