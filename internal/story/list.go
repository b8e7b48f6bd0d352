package story

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/snooze-project/snoozectl/internal/api"
)

// ErrNotFound is returned when a story ID has no matching entry in the
// local list.
var ErrNotFound = errors.New("story not found in list")

// TokenHolder provides the bearer token of an authenticated account.
// Mutating list operations require one.
type TokenHolder interface {
	Token() string
}

// List is the ordered working set of stories. Newly added stories go to
// the front; fetched pages keep the API's order. No two entries share an
// ID after a successful mutation.
type List struct {
	client  *api.Client
	stories []Story
}

// NewList creates a list over the given client and initial stories.
func NewList(client *api.Client, stories []Story) *List {
	return &List{client: client, stories: stories}
}

// FetchPage fetches one page of up to PageSize stories starting at
// offset skip and wraps it in a new List. No authentication required;
// errors propagate to the caller unretried.
func FetchPage(ctx context.Context, client *api.Client, skip int) (*List, error) {
	recs, err := client.ListStories(ctx, PageSize, skip)
	if err != nil {
		return nil, err
	}
	stories, err := FromRecords(recs)
	if err != nil {
		return nil, fmt.Errorf("fetching page at skip %d: %w", skip, err)
	}
	return NewList(client, stories), nil
}

// FetchPages fetches several consecutive pages concurrently and merges
// them in page order. Page fetches are read-only, so they are safe to
// run in parallel; mutations are not and stay serialized elsewhere.
func FetchPages(ctx context.Context, client *api.Client, skip, pages int) (*List, error) {
	if pages < 1 {
		pages = 1
	}

	results := make([][]Story, pages)
	g, ctx := errgroup.WithContext(ctx)
	for i := range pages {
		g.Go(func() error {
			recs, err := client.ListStories(ctx, PageSize, skip+i*PageSize)
			if err != nil {
				return err
			}
			stories, err := FromRecords(recs)
			if err != nil {
				return fmt.Errorf("fetching page at skip %d: %w", skip+i*PageSize, err)
			}
			results[i] = stories
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []Story
	for _, page := range results {
		merged = append(merged, page...)
	}
	return NewList(client, merged), nil
}

// Stories returns the current sequence.
func (l *List) Stories() []Story { return l.stories }

// Len returns the number of stories in the list.
func (l *List) Len() int { return len(l.stories) }

// Find returns the story with the given ID, if present.
func (l *List) Find(storyID string) (Story, bool) {
	idx := l.indexOf(storyID)
	if idx < 0 {
		return Story{}, false
	}
	return l.stories[idx], true
}

// Add posts a new story as the given user. The server assigns the ID and
// creation time; the resulting Story is inserted at the front of the
// list and returned.
func (l *List) Add(ctx context.Context, user TokenHolder, fields api.StoryFields) (Story, error) {
	rec, err := l.client.CreateStory(ctx, user.Token(), fields)
	if err != nil {
		return Story{}, err
	}
	st, err := FromRecord(rec)
	if err != nil {
		return Story{}, fmt.Errorf("adding story: %w", err)
	}
	l.stories = append([]Story{st}, l.stories...)
	return st, nil
}

// Remove deletes a story. The local entry is dropped before the server
// confirms, and is not restored if the delete fails; the next fetch
// resynchronizes. A story absent from the local list still has its
// delete forwarded to the API.
func (l *List) Remove(ctx context.Context, user TokenHolder, storyID string) error {
	if idx := l.indexOf(storyID); idx >= 0 {
		l.stories = append(l.stories[:idx], l.stories[idx+1:]...)
	}
	return l.client.DeleteStory(ctx, user.Token(), storyID)
}

// Edit sends a partial update for a story in the list and replaces the
// local entry with a Story built from the server's response, updatedAt
// discarded. The local entry is resolved first: without one the
// replacement target is ambiguous, so Edit returns ErrNotFound and the
// server is never contacted.
func (l *List) Edit(ctx context.Context, user TokenHolder, storyID string, fields api.StoryFields) (Story, error) {
	idx := l.indexOf(storyID)
	if idx < 0 {
		return Story{}, fmt.Errorf("editing story %s: %w", storyID, ErrNotFound)
	}

	rec, err := l.client.UpdateStory(ctx, user.Token(), storyID, fields)
	if err != nil {
		return Story{}, err
	}
	st, err := FromRecord(rec)
	if err != nil {
		return Story{}, fmt.Errorf("editing story %s: %w", storyID, err)
	}
	l.stories[idx] = st
	return st, nil
}

// indexOf returns the position of the story with the given ID, or -1.
func (l *List) indexOf(storyID string) int {
	for i, st := range l.stories {
		if st.ID == storyID {
			return i
		}
	}
	return -1
}
