package main

import (
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/config"
	"github.com/Odunjoy/NaijaStoic-props/seo"
	"github.com/spf13/cobra"
	"strings"
	"text/tabwriter"
)

func newTemplatesCmd() *cobra.Command {
	var match string
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the SEO templates, or show the auto match for --match",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := seo.Load(config.TheConfig.SeoCsv)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if match != "" {
				t, err := store.Match(match, seo.Auto)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%d\t%s\t%s\tscore %d\n", t.ID, t.LocalizedTitle, strings.Join(t.Hashtags, " "), store.Scores(match)[t.ID])
				return w.Flush()
			}
			for _, t := range store.All() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.LocalizedTitle, t.OriginalTitle)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&match, "match", "", "text to auto-match against the table")
	return cmd
}
