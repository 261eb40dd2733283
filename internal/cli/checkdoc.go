package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/infra/mdcheck"
	"github.com/dmarins/paslint/internal/infra/scanner"
	"github.com/dmarins/paslint/internal/usecase"
)

func checkDocCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "check-doc <file.md>...",
		Short: "Check the structure of Markdown guide documents",
		Long: "Validates that code fences are closed, headings have bodies, and " +
			"Pascal snippets lex cleanly.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := mdcheck.New(scanner.New())
			uc := usecase.NewCheckDocument(checker)

			report, err := uc.Execute(cmd.Context(), args)
			if err != nil {
				return err
			}

			if err := printReport(os.Stdout, report, "", format); err != nil {
				return err
			}

			if report.Failed(domain.SeverityWarning) {
				return fmt.Errorf("document check failed (%d finding(s))", report.ViolationCount())
			}
			return nil
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}
