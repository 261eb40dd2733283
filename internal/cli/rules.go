package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dmarins/paslint/internal/domain"
)

func rulesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the style rules",
	}

	c.AddCommand(rulesListCmd())
	c.AddCommand(rulesDescribeCmd())
	return c
}

func rulesListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rules and their effective state",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			for _, meta := range ws.engine.Rules() {
				st, _ := ws.engine.Settings(meta.ID)
				state := "on"
				if !st.Enabled {
					state = "off"
				}
				fmt.Printf("- %-18s %-3s %-8s %s\n", meta.ID, state, st.Severity, meta.Summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func rulesDescribeCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "describe <rule-id>",
		Short: "Show a rule's settings and parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			id := domain.RuleID(args[0])
			st, ok := ws.engine.Settings(id)
			if !ok {
				return fmt.Errorf("unknown rule %q (see `paslint rules list`)", id)
			}

			var meta domain.RuleMeta
			for _, m := range ws.engine.Rules() {
				if m.ID == id {
					meta = m
					break
				}
			}

			fmt.Printf("Rule:     %s\n", meta.ID)
			fmt.Printf("Summary:  %s\n", meta.Summary)
			fmt.Printf("Enabled:  %v\n", st.Enabled)
			fmt.Printf("Severity: %s (default %s)\n", st.Severity, meta.DefaultSeverity)

			if len(st.Params) > 0 {
				fmt.Println("Params:")
				keys := make([]string, 0, len(st.Params))
				for k := range st.Params {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Printf("  %s: %v\n", k, st.Params[k])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}
