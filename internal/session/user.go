// Package session holds the current account for a snoozectl run: the
// user model, the on-disk credential cache that makes auto-login work
// across invocations, and the manager that serializes everything that
// mutates session state.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snooze-project/snoozectl/internal/api"
	"github.com/snooze-project/snoozectl/internal/story"
)

// User is the authenticated account for the current session. Favorites
// and OwnStories hold independent copies of stories that may also appear
// in a feed List; the two are not kept in sync. The login token is
// present for the lifetime of the instance.
type User struct {
	Username   string
	Name       string
	CreatedAt  time.Time
	Favorites  []story.Story
	OwnStories []story.Story

	token string
}

// Token returns the opaque bearer credential issued at signup or login.
func (u *User) Token() string { return u.token }

// fromRecord builds a User from a profile record and a token. The
// server's "stories" field becomes OwnStories here; this is the only
// place that rename happens.
func fromRecord(rec api.UserRecord, token string) (*User, error) {
	if token == "" {
		return nil, errors.New("user record without login token")
	}
	favorites, err := story.FromRecords(rec.Favorites)
	if err != nil {
		return nil, fmt.Errorf("favorites: %w", err)
	}
	ownStories, err := story.FromRecords(rec.Stories)
	if err != nil {
		return nil, fmt.Errorf("own stories: %w", err)
	}
	return &User{
		Username:   rec.Username,
		Name:       rec.Name,
		CreatedAt:  rec.CreatedAt,
		Favorites:  favorites,
		OwnStories: ownStories,
		token:      token,
	}, nil
}

// Signup registers a new account. On rejection there is no user: the
// caller gets nil plus an error carrying the server's message.
func Signup(ctx context.Context, client *api.Client, username, password, name string) (*User, error) {
	rec, token, err := client.Signup(ctx, username, password, name)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return fromRecord(rec, token)
}

// Login authenticates an existing account. Same contract as Signup:
// nil user plus an error on rejection, never a panic.
func Login(ctx context.Context, client *api.Client, username, password string) (*User, error) {
	rec, token, err := client.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return fromRecord(rec, token)
}

// Restore rebuilds a session from a previously issued token by fetching
// the profile. Failures are for the caller to log, not to surface as a
// user-facing alert; the session simply stays anonymous.
func Restore(ctx context.Context, client *api.Client, token, username string) (*User, error) {
	rec, err := client.GetUser(ctx, token, username)
	if err != nil {
		return nil, fmt.Errorf("restoring session for %s: %w", username, err)
	}
	return fromRecord(rec, token)
}

// AddFavorite appends the story locally and then tells the server. The
// append happens before the call resolves and is not undone on failure.
// No duplicate check is made; callers ensure the story is not already a
// favorite.
func (u *User) AddFavorite(ctx context.Context, client *api.Client, st story.Story) error {
	u.Favorites = append(u.Favorites, st)
	return client.AddFavorite(ctx, u.token, u.Username, st.ID)
}

// RemoveFavorite drops the favorite at index locally and then tells the
// server, identifying the story by st.ID. The index is trusted to match
// st apart from a bounds check; derive it with FavoriteIndex immediately
// before calling to avoid desync.
func (u *User) RemoveFavorite(ctx context.Context, client *api.Client, st story.Story, index int) error {
	if index < 0 || index >= len(u.Favorites) {
		return fmt.Errorf("favorite index %d out of range (have %d favorites)", index, len(u.Favorites))
	}
	u.Favorites = append(u.Favorites[:index], u.Favorites[index+1:]...)
	return client.RemoveFavorite(ctx, u.token, u.Username, st.ID)
}

// EditInfo updates the profile name and optionally the password. An
// empty password means "keep the current password" and is omitted from
// the request entirely. Returns a fresh User reusing the existing token,
// since the edit endpoint does not reissue one.
func (u *User) EditInfo(ctx context.Context, client *api.Client, name, password string) (*User, error) {
	update := api.UserUpdate{Name: name}
	if password != "" {
		update.Password = password
	}
	rec, err := client.UpdateUser(ctx, u.token, u.Username, update)
	if err != nil {
		return nil, err
	}
	return fromRecord(rec, u.token)
}

// IsFavorite reports whether the story ID is in the user's favorites.
func (u *User) IsFavorite(storyID string) bool {
	return u.FavoriteIndex(storyID) >= 0
}

// FavoriteIndex returns the position of the story ID in the favorites,
// or -1 when absent.
func (u *User) FavoriteIndex(storyID string) int {
	for i, st := range u.Favorites {
		if st.ID == storyID {
			return i
		}
	}
	return -1
}

// OwnsStory reports whether the story ID was authored by this user.
func (u *User) OwnsStory(storyID string) bool {
	for _, st := range u.OwnStories {
		if st.ID == storyID {
			return true
		}
	}
	return false
}
