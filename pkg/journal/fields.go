package journal

// Field names an optional field of a journal.
type Field string

const (
	FieldTitle    Field = "title"
	FieldLocation Field = "location"
	FieldContent  Field = "content"
	FieldImages   Field = "images"
)

// Fields is a change set. Nil members are left untouched; fields listed in
// Unset are reset to absent after the populated members are applied.
type Fields struct {
	Title    *string
	Location *string
	Content  *string
	Images   *[]string

	Unset []Field
}

// Empty reports whether applying f would change nothing.
func (f Fields) Empty() bool {
	return f.Title == nil && f.Location == nil && f.Content == nil && f.Images == nil && len(f.Unset) == 0
}

// Apply copies the populated fields onto j. Timestamps are the store's
// concern and are not touched.
func (f Fields) Apply(j *Journal) {
	if f.Title != nil {
		j.Title = cloneText(f.Title)
	}
	if f.Location != nil {
		j.Location = cloneText(f.Location)
	}
	if f.Content != nil {
		j.Content = cloneText(f.Content)
	}
	if f.Images != nil {
		j.Images = append([]string{}, (*f.Images)...)
	}
	for _, field := range f.Unset {
		switch field {
		case FieldTitle:
			j.Title = nil
		case FieldLocation:
			j.Location = nil
		case FieldContent:
			j.Content = nil
		case FieldImages:
			j.Images = nil
		}
	}
}
