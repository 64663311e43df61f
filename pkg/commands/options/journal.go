package options

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/journey/pkg/journal"
)

// JournalOptions holds the field flags of add and edit.
type JournalOptions struct {
	Title    string
	Location string
	Content  string
	Images   []string

	ClearTitle    bool
	ClearLocation bool
	ClearContent  bool
	ClearImages   bool
}

// AddJournalArgs wires the field flags. Only flags the user actually passes
// end up in Fields, so `--title ""` sets an empty title while leaving the
// flag off keeps the field absent.
func AddJournalArgs(cmd *cobra.Command, o *JournalOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title of the journal.")
	cmd.Flags().StringVarP(&o.Location, "location", "l", "",
		"Where the journal was written.")
	cmd.Flags().StringArrayVar(&o.Images, "image", nil,
		"Image URL; repeat for more than one.")
}

// AddContentArg registers --content for commands that do not take the
// content as arguments.
func AddContentArg(cmd *cobra.Command, o *JournalOptions) {
	cmd.Flags().StringVarP(&o.Content, "content", "c", "",
		"Body of the journal.")
}

// AddClearArgs registers the flags that reset fields to absent.
func AddClearArgs(cmd *cobra.Command, o *JournalOptions) {
	cmd.Flags().BoolVar(&o.ClearTitle, "clear-title", false, "Remove the title.")
	cmd.Flags().BoolVar(&o.ClearLocation, "clear-location", false, "Remove the location.")
	cmd.Flags().BoolVar(&o.ClearContent, "clear-content", false, "Remove the content.")
	cmd.Flags().BoolVar(&o.ClearImages, "clear-images", false, "Remove all images.")
}

// SetContent takes the content from positional arguments.
func (o *JournalOptions) SetContent(args []string) {
	o.Content = strings.Join(args, " ")
}

// Fields converts the flags that were set on cmd into a change set.
// hasContent reports whether content came from somewhere other than a flag.
func (o *JournalOptions) Fields(cmd *cobra.Command, hasContent bool) journal.Fields {
	f := journal.Fields{}
	fs := cmd.Flags()
	changed := func(name string) bool { return flagChanged(fs, name) }
	if changed("title") {
		f.Title = journal.Text(o.Title)
	}
	if changed("location") {
		f.Location = journal.Text(o.Location)
	}
	if hasContent || changed("content") {
		f.Content = journal.Text(o.Content)
	}
	if changed("image") {
		images := append([]string{}, o.Images...)
		f.Images = &images
	}
	if o.ClearTitle {
		f.Unset = append(f.Unset, journal.FieldTitle)
	}
	if o.ClearLocation {
		f.Unset = append(f.Unset, journal.FieldLocation)
	}
	if o.ClearContent {
		f.Unset = append(f.Unset, journal.FieldContent)
	}
	if o.ClearImages {
		f.Unset = append(f.Unset, journal.FieldImages)
	}
	return f
}

func flagChanged(fs *pflag.FlagSet, name string) bool {
	fl := fs.Lookup(name)
	return fl != nil && fl.Changed
}
