package cmd

import (
	"fmt"

	"github.com/bimmills/portal/db"
	"github.com/bimmills/portal/export"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy orders, sales and invoices into a DuckDB file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "ledger.duckdb", "path of the DuckDB file to write")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	database, err := db.Open(cfg.Database)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to open database")
	}
	defer database.Close()

	sum, err := export.Ledger(cmd.Context(), database, exportOut)
	if err != nil {
		return pkgerrors.Wrap(err, "export failed")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wrote %s: %d orders, %d sales, %d invoices\n",
		exportOut, sum.Rows["orders"], sum.Rows["sales"], sum.Rows["invoices"])
	for _, d := range sum.RevenueDay {
		fmt.Fprintf(out, "  %-10s %12.2f\n", d.Day, d.Amount)
	}
	return nil
}
