package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/tagbuilder/internal/catalog"
)

// TagsCmd returns the `tagbuilder tags` command.
func TagsCmd() *cobra.Command {
	var flags Flags
	cmd := &cobra.Command{
		Use:   "tags [category]",
		Short: "List catalog categories and tags",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := OpenSession(cmd.Context(), flags, OpenOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			ix := s.Loaded.Index
			cats := ix.Categories()
			if len(args) == 1 {
				cat, ok := ix.Category(args[0])
				if !ok {
					return fmt.Errorf("unknown category %q", args[0])
				}
				cats = []*catalog.CategoryIndex{cat}
			}

			out := cmd.OutOrStdout()
			for _, cat := range cats {
				fmt.Fprintf(out, "%s (%s)\n", cat.Name(), cat.Type())
				for _, sub := range cat.Groups() {
					indent := "  "
					if !sub.TitleHidden() {
						fmt.Fprintf(out, "  [%s]\n", sub.Title)
						indent = "    "
					}
					for _, item := range sub.Items {
						line := strings.Join(item.Names, " | ")
						if tag, ok := cat.Tag(item.Names[0]); ok && tag.IsMainTag() {
							line += " *"
						}
						if item.Description != "" {
							line += "  - " + item.Description
						}
						fmt.Fprintln(out, indent+line)
					}
				}
			}
			return nil
		},
	}
	flags.Register(cmd)
	return cmd
}
