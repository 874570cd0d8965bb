package cmd

import (
	"fmt"

	"github.com/bimmills/portal/db"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	action := "up"
	if len(args) == 1 {
		action = args[0]
	}

	database, err := db.Open(cfg.Database)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to open database")
	}
	defer database.Close()

	p, err := db.NewMigrator(database, cfg.Database.Driver)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	switch action {
	case "up":
		results, err := p.Up(ctx)
		if err != nil {
			return pkgerrors.Wrap(err, "migrate up")
		}
		fmt.Fprintf(out, "applied %d migration(s)\n", len(results))
	case "down":
		r, err := p.Down(ctx)
		if err != nil {
			return pkgerrors.Wrap(err, "migrate down")
		}
		fmt.Fprintf(out, "rolled back version %d\n", r.Source.Version)
	case "status":
		statuses, err := p.Status(ctx)
		if err != nil {
			return pkgerrors.Wrap(err, "migrate status")
		}
		for _, s := range statuses {
			fmt.Fprintf(out, "%5d  %-8s  %s\n", s.Source.Version, s.State, s.Source.Path)
		}
	}
	return nil
}
