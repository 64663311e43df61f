package query

import (
	"fmt"
	"strings"
)

// SortOption selects the display order. The zero value is DateDescending.
type SortOption int

const (
	DateDescending SortOption = iota
	DateAscending
	TitleAZ
	TitleZA
)

var sortOptions = []SortOption{DateDescending, DateAscending, TitleAZ, TitleZA}

// SortOptions lists every option in menu order.
func SortOptions() []SortOption {
	return append([]SortOption{}, sortOptions...)
}

// String is the flag and config name of the option.
func (o SortOption) String() string {
	switch o {
	case DateDescending:
		return "newest"
	case DateAscending:
		return "oldest"
	case TitleAZ:
		return "title-az"
	case TitleZA:
		return "title-za"
	}
	return fmt.Sprintf("SortOption(%d)", int(o))
}

// Label is the long menu label.
func (o SortOption) Label() string {
	switch o {
	case DateDescending:
		return "Date: Newest first"
	case DateAscending:
		return "Date: Oldest first"
	case TitleAZ:
		return "Title: A → Z"
	case TitleZA:
		return "Title: Z → A"
	}
	return o.String()
}

// ShortLabel is the compact label shown next to the search field.
func (o SortOption) ShortLabel() string {
	switch o {
	case DateDescending:
		return "Newest"
	case DateAscending:
		return "Oldest"
	case TitleAZ:
		return "Title A–Z"
	case TitleZA:
		return "Title Z–A"
	}
	return o.String()
}

// Next cycles to the following option, wrapping around.
func (o SortOption) Next() SortOption {
	for i, opt := range sortOptions {
		if opt == o {
			return sortOptions[(i+1)%len(sortOptions)]
		}
	}
	return DateDescending
}

// Valid reports whether o is one of the declared options.
func (o SortOption) Valid() bool {
	return o >= DateDescending && o <= TitleZA
}

// ParseSortOption accepts the String form, case-insensitively. An empty
// name yields the default.
func ParseSortOption(name string) (SortOption, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DateDescending, nil
	}
	for _, opt := range sortOptions {
		if opt.String() == name {
			return opt, nil
		}
	}
	return DateDescending, fmt.Errorf("query: unknown sort option %q", name)
}
