// Package journal defines the journal record and its derived read-only views.
package journal

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

const (
	// SnippetLength is the number of characters kept by Snippet.
	SnippetLength = 100

	// Ellipsis marks a truncated snippet.
	Ellipsis = "..."

	// Untitled is shown in place of an absent title.
	Untitled = "Untitled"

	temporaryPrefix = "local-"
)

// Journal is one journal entry. Title, Location and Content are optional:
// nil means absent, which is distinct from an empty string.
type Journal struct {
	ID        string     `json:"id"`
	CreatedAt *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`
	Title     *string    `json:"title,omitempty"`
	Location  *string    `json:"location,omitempty"`
	Content   *string    `json:"content,omitempty"`
	Images    []string   `json:"images,omitempty"`
}

// New returns an unpersisted journal carrying a temporary id so it stays
// addressable until a store confirms it.
func New(f Fields) *Journal {
	j := &Journal{ID: NewTemporaryID()}
	f.Apply(j)
	return j
}

// NewTemporaryID generates a local id for a record the store has not seen.
func NewTemporaryID() string {
	return temporaryPrefix + uuid.NewString()
}

// IsTemporaryID reports whether id was generated locally by NewTemporaryID.
func IsTemporaryID(id string) bool {
	return strings.HasPrefix(id, temporaryPrefix)
}

// Text returns a pointer to s, for populating optional fields.
func Text(s string) *string {
	return &s
}

// Snippet is a short preview of the content: the first SnippetLength
// characters followed by Ellipsis when truncated, or "" without content.
func (j *Journal) Snippet() string {
	if j == nil || j.Content == nil {
		return ""
	}
	content := *j.Content
	if uniseg.GraphemeClusterCount(content) <= SnippetLength {
		return content
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(content)
	for n := 0; n < SnippetLength && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return b.String() + Ellipsis
}

// Thumbnail returns the first image, if any.
func (j *Journal) Thumbnail() (string, bool) {
	if j == nil || len(j.Images) == 0 {
		return "", false
	}
	return j.Images[0], true
}

// DisplayTitle is the title, or Untitled when absent.
func (j *Journal) DisplayTitle() string {
	if j == nil || j.Title == nil {
		return Untitled
	}
	return *j.Title
}

// Temporary reports whether the record still carries a local id.
func (j *Journal) Temporary() bool {
	return IsTemporaryID(j.ID)
}

// Clone returns a deep copy.
func (j *Journal) Clone() *Journal {
	if j == nil {
		return nil
	}
	c := &Journal{
		ID:        j.ID,
		CreatedAt: j.CreatedAt.clone(),
		UpdatedAt: j.UpdatedAt.clone(),
		Title:     cloneText(j.Title),
		Location:  cloneText(j.Location),
		Content:   cloneText(j.Content),
	}
	if j.Images != nil {
		c.Images = append([]string{}, j.Images...)
	}
	return c
}

func cloneText(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
