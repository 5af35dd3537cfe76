package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// ParseCmd returns the `tagbuilder parse` command.
func ParseCmd() *cobra.Command {
	var flags Flags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "parse [text]",
		Short: "Resolve free text against the catalog",
		Long: "Parse free text into a selection and print the canonical and alternative strings.\n" +
			"Reads stdin when no text is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}

			s, err := OpenSession(cmd.Context(), flags, OpenOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			s.Engine.Parse(text)
			return writeReport(cmd.OutOrStdout(), buildReport(s.Engine, s.Dedup, text), asJSON)
		},
	}
	flags.Register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
