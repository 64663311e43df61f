// Package sample holds the journals used to seed an empty store.
package sample

import (
	"time"

	"tableflip.dev/journey/pkg/journal"
)

const day = 24 * time.Hour

// Journals returns the sample journals relative to now. Each call returns
// fresh records with temporary ids.
func Journals(now time.Time) []*journal.Journal {
	return []*journal.Journal{
		build(now.Add(-1*day),
			"Morning Reflections",
			"San Francisco, CA",
			"Woke up early today and spent some time thinking about my goals for this year. I want to focus on personal growth and building meaningful connections.",
			"https://i.imgur.com/IdorGF4.png"),
		build(now.Add(-2*day),
			"Beach Day Adventures",
			"Malibu, CA",
			"The ocean was so calm today. Spent hours just walking along the shore, collecting shells and watching the sunset. Sometimes the simple moments are the best.",
			"https://i.imgur.com/f45Vtup.png"),
		build(now.Add(-3*day),
			"Coffee Shop Musings",
			"Seattle, WA",
			"Found this amazing little coffee shop downtown. The atmosphere is perfect for journaling. Met an interesting person who shared their travel stories with me.",
			"https://i.imgur.com/HYXlcFI.jpeg"),
		build(now,
			"My Trip to Paris",
			"Paris, France",
			"At vero eos et accusamus et iusto odio dignissimos ducimus qui blanditiis praesentium voluptatum deleniti atque corrupti quos dolores et quas molestias excepturi sint occaecati cupiditate non provident, similique sunt in culpa qui officia deserunt mollitia animi, id est laborum et dolorum fuga. Et harum quidem rerum facilis est et expedita distinctio. Nam libero tempore, cum soluta nobis est eligendi optio cumque nihil impedit quo minus id quod maxime placeat facere possimus, omnis voluptas assumenda est, omnis dolor repellendus. Temporibus autem quibusdam et aut officiis debitis aut rerum necessitatibus saepe eveniet ut et voluptates repudiandae sint et molestiae non recusandae. Itaque earum rerum hic tenetur a sapiente delectus, ut aut reiciendis voluptatibus maiores alias consequatur aut perferendis doloribus asperiores repellat."),
	}
}

func build(created time.Time, title, location, content string, images ...string) *journal.Journal {
	j := journal.New(journal.Fields{
		Title:    journal.Text(title),
		Location: journal.Text(location),
		Content:  journal.Text(content),
	})
	if len(images) > 0 {
		j.Images = images
	}
	j.CreatedAt = journal.At(created)
	j.UpdatedAt = journal.At(created)
	return j
}
