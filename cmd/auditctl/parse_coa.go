package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"auditdesk/internal/coa"
	"auditdesk/internal/config"
	"auditdesk/internal/repository/postgres"
)

func newParseCOACmd() *cobra.Command {
	var (
		projectID       string
		tenantID        string
		knowledgeBaseID string
		apply           bool
	)

	cmd := &cobra.Command{
		Use:   "parse-coa <plan.txt>",
		Short: "Parse a plan comptable text export into chart-of-accounts nodes",
		Long: "Parses account lines, resolves parent codes, and reports what would be\n" +
			"written. With --apply the accounts are upserted in batches of 400 into the\n" +
			"database configured through the environment, along with the template and\n" +
			"rule aggregate documents.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engagementID, err := uuid.Parse(projectID)
			if err != nil {
				return fmt.Errorf("invalid --project-id: %w", err)
			}
			tenant, err := uuid.Parse(tenantID)
			if err != nil {
				return fmt.Errorf("invalid --tenant-id: %w", err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening plan file: %w", err)
			}
			defer f.Close()

			entries, err := coa.ParseText(f)
			if err != nil {
				return err
			}
			accounts := coa.BuildTree(tenant, engagementID, knowledgeBaseID, entries)

			roots := 0
			for _, a := range accounts {
				if a.ParentCode == nil {
					roots++
				}
			}

			if !apply {
				fmt.Fprintf(cmd.OutOrStdout(),
					"dry run: %d accounts (%d roots); re-run with --apply to write\n",
					len(accounts), roots)
				return nil
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

			repo := postgres.NewCOARepo(db)
			if err := repo.BatchUpsert(cmd.Context(), accounts); err != nil {
				return fmt.Errorf("writing accounts: %w", err)
			}
			docs := coa.BuildDocuments(tenant, engagementID, knowledgeBaseID, entries)
			for i := range docs {
				if err := repo.UpsertDocument(cmd.Context(), &docs[i]); err != nil {
					return fmt.Errorf("writing %s document: %w", docs[i].Kind, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"wrote %d accounts (%d roots) and %d aggregate documents for engagement %s\n",
				len(accounts), roots, len(docs), engagementID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "engagement the accounts belong to")
	cmd.Flags().StringVar(&tenantID, "tenant-id", "", "tenant owning the engagement")
	cmd.Flags().StringVar(&knowledgeBaseID, "knowledge-base-id", "", "knowledge base stamped on every account")
	cmd.Flags().BoolVar(&apply, "apply", false, "write the accounts instead of reporting counts")
	_ = cmd.MarkFlagRequired("project-id")
	_ = cmd.MarkFlagRequired("tenant-id")
	_ = cmd.MarkFlagRequired("knowledge-base-id")
	return cmd
}

func newConvertPCMCmd() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert-pcm",
		Short: "Convert a plan comptable text export to JSON records",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("opening %s: %w", input, err)
			}
			defer f.Close()

			entries, err := coa.ParseText(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				of, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer of.Close()
				out = of
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "plan comptable text file")
	cmd.Flags().StringVar(&output, "output", "-", "destination JSON file, - for stdout")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
