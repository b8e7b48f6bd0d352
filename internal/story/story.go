// Package story models the story feed: single submitted links and the
// paginated working set shown to the user.
package story

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/snooze-project/snoozectl/internal/api"
)

// PageSize is the number of stories per feed page, fixed by the API.
const PageSize = 10

// unknownHost is the placeholder returned for URLs without a parseable
// host component.
const unknownHost = "unknown"

// Story is one submitted link. It is an immutable value: edits replace
// the instance rather than mutating fields, and the server-assigned ID
// never changes after creation.
type Story struct {
	ID        string    `json:"storyId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromRecord builds a Story from a server record, failing fast when the
// record has no storyId. Server-only fields such as updatedAt are not
// carried over.
func FromRecord(rec api.StoryRecord) (Story, error) {
	if rec.StoryID == "" {
		return Story{}, errors.New("story record missing storyId")
	}
	return Story{
		ID:        rec.StoryID,
		Title:     rec.Title,
		Author:    rec.Author,
		URL:       rec.URL,
		Username:  rec.Username,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// FromRecords maps a slice of server records to stories.
func FromRecords(recs []api.StoryRecord) ([]Story, error) {
	stories := make([]Story, 0, len(recs))
	for i, rec := range recs {
		st, err := FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		stories = append(stories, st)
	}
	return stories, nil
}

// HostName returns the host component of the story's URL for display.
// A URL without a parseable host yields the fixed placeholder "unknown".
func (s Story) HostName() string {
	u, err := url.Parse(s.URL)
	if err != nil || u.Hostname() == "" {
		return unknownHost
	}
	return u.Hostname()
}
