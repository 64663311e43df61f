// Package query turns the full journal collection into the display list:
// a case-insensitive search filter followed by a stable sort.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/journey/pkg/journal"
)

// Pipeline holds the locale used for title comparison. The zero value
// compares titles as English.
type Pipeline struct {
	Language language.Tag
}

// Apply runs the default pipeline.
func Apply(records []*journal.Journal, searchText string, opt SortOption) []*journal.Journal {
	return Pipeline{}.Apply(records, searchText, opt)
}

// Apply filters records by searchText and orders the survivors by opt. The
// input slice is never modified; the result is always a new slice holding a
// subset of the input pointers.
func (p Pipeline) Apply(records []*journal.Journal, searchText string, opt SortOption) []*journal.Journal {
	out := Filter(records, searchText)
	p.Sort(out, opt)
	return out
}

// Filter keeps records whose title, location or content contains searchText,
// ignoring case. A blank search keeps everything; absent fields never match.
func Filter(records []*journal.Journal, searchText string) []*journal.Journal {
	out := make([]*journal.Journal, 0, len(records))
	if strings.TrimSpace(searchText) == "" {
		for _, r := range records {
			if r != nil {
				out = append(out, r)
			}
		}
		return out
	}

	needle := strings.ToLower(searchText)
	for _, r := range records {
		if r == nil {
			continue
		}
		if contains(r.Title, needle) || contains(r.Location, needle) || contains(r.Content, needle) {
			out = append(out, r)
		}
	}
	return out
}

func contains(field *string, needle string) bool {
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), needle)
}

// Sort orders records in place. Equal keys keep their relative order.
func (p Pipeline) Sort(records []*journal.Journal, opt SortOption) {
	switch opt {
	case DateAscending:
		sort.SliceStable(records, func(i, j int) bool {
			return dateLess(records[i], records[j], false)
		})
	case TitleAZ, TitleZA:
		p.sortTitles(records, opt == TitleZA)
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return dateLess(records[i], records[j], true)
		})
	}
}

// dateLess compares creation times; records without one go last in either
// direction.
func dateLess(left, right *journal.Journal, descending bool) bool {
	lv, rv := left.CreatedAt.Valid(), right.CreatedAt.Valid()
	switch {
	case !lv:
		return false
	case !rv:
		return true
	case descending:
		return left.CreatedAt.After(right.CreatedAt.Time)
	default:
		return left.CreatedAt.Before(right.CreatedAt.Time)
	}
}

func (p Pipeline) sortTitles(records []*journal.Journal, descending bool) {
	tag := p.Language
	if tag == language.Und {
		tag = language.English
	}
	// A Collator carries scratch buffers, so each sort gets its own.
	c := collate.New(tag, collate.IgnoreCase)

	titles := make(map[*journal.Journal]string, len(records))
	for _, r := range records {
		if r.Title != nil {
			titles[r] = *r.Title
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		cmp := c.CompareString(titles[records[i]], titles[records[j]])
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}
