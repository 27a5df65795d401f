package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"auditdesk/internal/balance"
	"auditdesk/internal/config"
	"auditdesk/internal/domain"
	"auditdesk/internal/repository/postgres"
)

func newParseBalancesCmd() *cobra.Command {
	var (
		projectID string
		tenantID  string
		fallback  bool
	)

	cmd := &cobra.Command{
		Use:   "parse-balances <workbook.xlsm>",
		Short: "Parse a trial balance workbook; print JSON or upsert into an engagement",
		Long: "Parses the N and N-1 sheets of a trial balance workbook. Without\n" +
			"--project-id the rows are printed as JSON. With --project-id (and\n" +
			"--tenant-id) the engagement's balance record is replaced in the database\n" +
			"configured through the environment.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flag preconditions fail before any file or DB I/O.
			var engagementID, tenant uuid.UUID
			persist := projectID != ""
			if persist {
				var err error
				if engagementID, err = uuid.Parse(projectID); err != nil {
					return fmt.Errorf("invalid --project-id: %w", err)
				}
				if tenant, err = uuid.Parse(tenantID); err != nil {
					return fmt.Errorf("invalid --tenant-id: %w", err)
				}
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading workbook: %w", err)
			}

			result, err := balance.Parse(data, balance.Options{PositionalFallback: fallback})
			if err != nil {
				return err
			}

			if !persist {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			db, err := postgres.NewDB(&cfg.DB)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer db.Close()

			set := &domain.BalanceSet{
				EngagementID: engagementID,
				TenantID:     tenant,
				Status:       domain.BalanceStatusDone,
				BalanceN:     result.N,
				BalanceN1:    result.N1,
				SourcePath:   args[0],
				ParsedAt:     time.Now().UTC(),
			}
			if err := postgres.NewBalanceRepo(db).Upsert(cmd.Context(), set); err != nil {
				return fmt.Errorf("persisting balances: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "upserted %d + %d balance rows for engagement %s\n",
				len(result.N), len(result.N1), engagementID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "engagement to upsert the parsed balances into")
	cmd.Flags().StringVar(&tenantID, "tenant-id", "", "tenant owning the engagement (required with --project-id)")
	cmd.Flags().BoolVar(&fallback, "fallback", true, "parse renamed sheets by position")
	return cmd
}
