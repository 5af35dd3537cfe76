package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tagbuilder/internal/catalog"
)

// ValidateCmd returns the `tagbuilder validate` command.
func ValidateCmd() *cobra.Command {
	var flags Flags
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog for mistakes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := OpenSession(cmd.Context(), flags, OpenOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			ix := s.Loaded.Index
			findings := catalog.Lint(ix)
			warnings := 0
			for _, f := range findings {
				if f.Severity == catalog.SeverityWarning {
					warnings++
				}
				fmt.Fprintln(out, f.String())
			}

			fmt.Fprintf(out, "%s: %d categories, %d tags", s.Loaded.Source, len(ix.Categories()), ix.Len())
			if s.Loaded.Stale {
				fmt.Fprint(out, " (cached copy)")
			}
			fmt.Fprintln(out)

			if strict && warnings > 0 {
				return fmt.Errorf("%d warning(s)", warnings)
			}
			return nil
		},
	}
	flags.Register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when warnings are found")
	return cmd
}
