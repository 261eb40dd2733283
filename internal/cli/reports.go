package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/spf13/cobra"

	"github.com/dmarins/paslint/internal/domain"
)

func reportsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reports",
		Short: "Inspect saved lint reports",
	}

	c.AddCommand(reportsListCmd())
	c.AddCommand(reportsShowCmd())
	c.AddCommand(reportsQueryCmd())
	return c
}

func reportsListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved reports",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			refs, err := ws.store.ListReports()
			if err != nil {
				return err
			}

			if len(refs) == 0 {
				fmt.Println("(no reports found)")
				return nil
			}

			fmt.Printf("Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				fmt.Printf("- %s  %s  %d finding(s)\n", r.ID, r.StartedAt.Format(time.RFC3339), r.Findings)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func reportsShowCmd() *cobra.Command {
	var workspace string
	var format string

	cmd := &cobra.Command{
		Use:   "show <report-id>",
		Short: "Print one saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			artifact, err := ws.store.LoadReport(args[0])
			if err != nil {
				return err
			}

			report := domain.Report{
				WorkspaceRoot: artifact.WorkspaceRoot,
				StartedAt:     artifact.StartedAt,
				EndedAt:       artifact.EndedAt,
				Files:         artifact.Files,
			}
			return printReport(os.Stdout, report, artifact.ID, format)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func reportsQueryCmd() *cobra.Command {
	var workspace string
	var path string

	cmd := &cobra.Command{
		Use:   "query <report-id>",
		Short: "Query a saved report with a JSONPath expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			artifact, err := ws.store.LoadReport(args[0])
			if err != nil {
				return err
			}

			// Round-trip to plain maps so jsonpath expressions see the same
			// shape as the stored JSON.
			b, err := json.Marshal(artifact)
			if err != nil {
				return err
			}
			var doc any
			if err := json.Unmarshal(b, &doc); err != nil {
				return err
			}

			val, err := jsonpath.Get(path, doc)
			if err != nil {
				return fmt.Errorf("jsonpath %q: %w", path, err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(val)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVarP(&path, "path", "p", "", "JSONPath expression, e.g. $.files[0].violations (required)")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
