package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/repositories"
	"github.com/gimhantharuke456/policeappbackend/internal/core/services"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/pagination"

	"github.com/spf13/cobra"
)

func rosterCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the service numbers allowed to register",
	}
	cmd.AddCommand(
		rosterImportCommand(a),
		rosterListCommand(a),
	)
	return cmd
}

func (a *app) rosterService() (*services.RosterService, error) {
	db, err := a.openDB()
	if err != nil {
		return nil, err
	}
	return services.NewRosterService(repositories.NewRosterRepository(db), a.cfg.Database.QueryTimeout), nil
}

func rosterImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import officerSVC,officerRank,policeStation rows; existing numbers are skipped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.rosterService()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := svc.ImportCSV(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d, skipped %d\n", result.Inserted, result.Skipped)
			return nil
		},
	}
}

func rosterListCommand(a *app) *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List roster entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.rosterService()
			if err != nil {
				return err
			}

			params, err := pagination.New(fmt.Sprint(page), fmt.Sprint(limit), "")
			if err != nil {
				return err
			}

			result, err := svc.List(cmd.Context(), params)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SVC\tRANK\tSTATION\tACTIVE")
			for _, e := range result.Entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", e.OfficerSVC, e.OfficerRank, e.PoliceStation, e.IsActive)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d entries)\n",
				result.Pagination.CurrentPage, result.Pagination.TotalPages, result.Pagination.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", pagination.MaxLimit, "entries per page (1-50)")
	return cmd
}
