package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ClickCmd returns the `tagbuilder click` command.
func ClickCmd() *cobra.Command {
	var flags Flags
	var text string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "click <Category:Tag>...",
		Short: "Toggle tags the way button clicks do",
		Long: "Start from --text (if any), then toggle each Category:Tag in order.\n" +
			"Clicks that would exceed the character limit are rolled back and reported.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clicks := make([][2]string, 0, len(args))
			for _, arg := range args {
				category, tag, ok := strings.Cut(arg, ":")
				if !ok || category == "" || tag == "" {
					return fmt.Errorf("invalid click %q: want Category:Tag", arg)
				}
				clicks = append(clicks, [2]string{category, tag})
			}

			s, err := OpenSession(cmd.Context(), flags, OpenOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			s.Engine.Parse(text)
			var rejected []rejection
			for _, c := range clicks {
				res, err := s.Engine.Click(c[0], c[1])
				if err != nil {
					return fmt.Errorf("click %s:%s: %w", c[0], c[1], err)
				}
				if res.Rejected {
					rejected = append(rejected, rejection{Category: c[0], Tag: c[1], Length: res.Attempted})
				}
			}

			r := buildReport(s.Engine, s.Dedup, s.Engine.Canonical())
			r.Rejected = rejected
			return writeReport(cmd.OutOrStdout(), r, asJSON)
		},
	}
	flags.Register(cmd)
	cmd.Flags().StringVarP(&text, "text", "t", "", "starting text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
