// Package api implements the typed HTTP client for the Hack or Snooze
// REST API. It owns the wire formats, the request envelopes and the
// error taxonomy; the domain packages above it only ever see records and
// typed errors. No call is retried: a request either resolves or fails,
// and the failure propagates to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to one Hack or Snooze API instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the API at baseURL. A non-positive
// timeout disables the request deadline.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// storyEnvelope wraps single-story responses: {"story": {...}}
type storyEnvelope struct {
	Story StoryRecord `json:"story"`
}

// storiesEnvelope wraps feed responses: {"stories": [...]}
type storiesEnvelope struct {
	Stories []StoryRecord `json:"stories"`
}

// userEnvelope wraps profile responses. Token is only present on signup
// and login.
type userEnvelope struct {
	User  UserRecord `json:"user"`
	Token string     `json:"token"`
}

// errorEnvelope is the server's error body: {"error": {"message": ...}}
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ListStories fetches up to limit stories starting at offset skip.
// No authentication required.
func (c *Client) ListStories(ctx context.Context, limit, skip int) ([]StoryRecord, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var env storiesEnvelope
	if err := c.do(ctx, http.MethodGet, "/stories", q, nil, &env); err != nil {
		return nil, err
	}
	return env.Stories, nil
}

// CreateStory posts a new story. The server assigns storyId and
// createdAt.
func (c *Client) CreateStory(ctx context.Context, token string, fields StoryFields) (StoryRecord, error) {
	body := struct {
		Token string      `json:"token"`
		Story StoryFields `json:"story"`
	}{Token: token, Story: fields}

	var env storyEnvelope
	if err := c.do(ctx, http.MethodPost, "/stories", nil, body, &env); err != nil {
		return StoryRecord{}, err
	}
	return env.Story, nil
}

// UpdateStory sends a partial update for an existing story and returns
// the server's view of it. The response may carry updatedAt.
func (c *Client) UpdateStory(ctx context.Context, token, storyID string, fields StoryFields) (StoryRecord, error) {
	body := struct {
		Token string      `json:"token"`
		Story StoryFields `json:"story"`
	}{Token: token, Story: fields}

	var env storyEnvelope
	if err := c.do(ctx, http.MethodPatch, "/stories/"+url.PathEscape(storyID), nil, body, &env); err != nil {
		return StoryRecord{}, err
	}
	return env.Story, nil
}

// DeleteStory removes a story. The token rides in the query string, as
// the API requires for DELETE.
func (c *Client) DeleteStory(ctx context.Context, token, storyID string) error {
	q := url.Values{}
	q.Set("token", token)
	return c.do(ctx, http.MethodDelete, "/stories/"+url.PathEscape(storyID), q, nil, nil)
}

// Signup registers a new account and returns the profile plus the
// issued token.
func (c *Client) Signup(ctx context.Context, username, password, name string) (UserRecord, string, error) {
	body := struct {
		User struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Name     string `json:"name"`
		} `json:"user"`
	}{}
	body.User.Username = username
	body.User.Password = password
	body.User.Name = name

	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/signup", nil, body, &env); err != nil {
		return UserRecord{}, "", err
	}
	return env.User, env.Token, nil
}

// Login authenticates an existing account and returns the profile plus
// the issued token.
func (c *Client) Login(ctx context.Context, username, password string) (UserRecord, string, error) {
	body := struct {
		User struct {
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"user"`
	}{}
	body.User.Username = username
	body.User.Password = password

	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &env); err != nil {
		return UserRecord{}, "", err
	}
	return env.User, env.Token, nil
}

// GetUser fetches a profile with a previously issued token.
func (c *Client) GetUser(ctx context.Context, token, username string) (UserRecord, error) {
	q := url.Values{}
	q.Set("token", token)

	var env userEnvelope
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), q, nil, &env); err != nil {
		return UserRecord{}, err
	}
	return env.User, nil
}

// AddFavorite marks a story as a favorite of the given user.
func (c *Client) AddFavorite(ctx context.Context, token, username, storyID string) error {
	body := struct {
		Token string `json:"token"`
	}{Token: token}
	path := "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

// RemoveFavorite removes a story from the given user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, token, username, storyID string) error {
	q := url.Values{}
	q.Set("token", token)
	path := "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
	return c.do(ctx, http.MethodDelete, path, q, nil, nil)
}

// UpdateUser patches the profile and returns the server's view of it.
// The endpoint does not reissue a token.
func (c *Client) UpdateUser(ctx context.Context, token, username string, update UserUpdate) (UserRecord, error) {
	body := struct {
		Token string     `json:"token"`
		User  UserUpdate `json:"user"`
	}{Token: token, User: update}

	var env userEnvelope
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(username), nil, body, &env); err != nil {
		return UserRecord{}, err
	}
	return env.User, nil
}

// do performs one request/response round trip. A transport failure
// becomes a NetworkError, a non-2xx status is classified into the error
// taxonomy, and a 2xx body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(resp.StatusCode, serverMessage(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// serverMessage pulls the message out of an error body, tolerating
// bodies that are not the expected envelope.
func serverMessage(data []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return ""
	}
	return env.Error.Message
}
