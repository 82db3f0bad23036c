package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/sift/internal/config"
	"github.com/Iron-Ham/sift/internal/rule"
)

func newFiltersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the filters declared in the config file",
		Args:  cobra.NoArgs,
		RunE:  runFilterList,
	}
}

func runFilterList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(cfg.Filters) == 0 {
		fmt.Fprintln(out, "No filters configured.")
		return nil
	}

	for _, spec := range cfg.Filters {
		fmt.Fprintln(out, spec.String())
	}
	fmt.Fprintf(out, "\nOperators: %s\n", strings.Join(rule.Operators(), ", "))
	return nil
}
