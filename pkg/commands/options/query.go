package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/query"
)

// QueryOptions captures the search and sort flags of listing commands.
type QueryOptions struct {
	Search string
	Sort   string
}

// AddSearchArg registers --search.
func AddSearchArg(cmd *cobra.Command, o *QueryOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show journals whose title, location or content contains the text.")
}

// AddSortArg registers --sort. An empty default defers to the configured
// sort.
func AddSortArg(cmd *cobra.Command, o *QueryOptions) {
	names := make([]string, 0, len(query.SortOptions()))
	for _, opt := range query.SortOptions() {
		names = append(names, opt.String())
	}
	cmd.Flags().StringVar(&o.Sort, "sort", "",
		"Sort order. One of "+strings.Join(names, ", ")+".")
	_ = cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// SortOption resolves --sort, falling back to configured when the flag is
// empty.
func (o *QueryOptions) SortOption(configured string) (query.SortOption, error) {
	if o.Sort != "" {
		return query.ParseSortOption(o.Sort)
	}
	return query.ParseSortOption(configured)
}
