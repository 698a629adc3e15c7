package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iota-uz/refconsole/pkg/refapi"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	var (
		query   string
		filters []string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "search <resource-path>",
		Short: "Search a resource, e.g. refctl search /api/partners --query acme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := refapi.SearchParams{Query: query, Page: page, PerPage: perPage, Filters: map[string]string{}}
			for _, f := range filters {
				key, value, ok := strings.Cut(f, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid --filter %q, expected key=value", f)
				}
				params.Filters[key] = value
			}
			client, err := root.client()
			if err != nil {
				return err
			}
			res, err := refapi.NewResource[json.RawMessage](client, args[0]).Search(cmd.Context(), params)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Free-text query")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Field filter key=value (repeatable)")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page")
	cmd.Flags().IntVar(&perPage, "limit", 20, "Page size")
	return cmd
}
