package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nil)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestListStories(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/stories", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "20", r.URL.Query().Get("skip"))

		stories := make([]string, 0, 10)
		for i := range 10 {
			stories = append(stories, fmt.Sprintf(
				`{"storyId":"id-%d","title":"story %d","author":"a","url":"https://example.com/%d","username":"alice","createdAt":"2024-01-02T03:04:05Z"}`,
				i, i, i))
		}
		writeJSON(t, w, http.StatusOK, `{"stories":[`+joinJSON(stories)+`]}`)
	}))

	recs, err := client.ListStories(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, recs, 10)
	assert.Equal(t, "id-0", recs[0].StoryID)
	assert.Equal(t, "alice", recs[0].Username)
	assert.Equal(t, 2024, recs[0].CreatedAt.Year())
}

func joinJSON(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}

func TestCreateStory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/stories", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Token string      `json:"token"`
			Story StoryFields `json:"story"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok-1", body.Token)
		assert.Equal(t, "A", body.Story.Title)

		writeJSON(t, w, http.StatusCreated,
			`{"story":{"storyId":"new-1","title":"A","author":"B","url":"http://x.com","username":"alice","createdAt":"2024-01-02T03:04:05Z"}}`)
	}))

	rec, err := client.CreateStory(context.Background(), "tok-1", StoryFields{Title: "A", Author: "B", URL: "http://x.com"})
	require.NoError(t, err)
	assert.Equal(t, "new-1", rec.StoryID)
}

func TestUpdateStory_CarriesUpdatedAt(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/stories/id-7", r.URL.Path)

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		// Partial update: unset fields must not appear in the body.
		assert.Contains(t, string(data), `"title"`)
		assert.NotContains(t, string(data), `"author"`)
		assert.NotContains(t, string(data), `"url"`)

		writeJSON(t, w, http.StatusOK,
			`{"story":{"storyId":"id-7","title":"new title","author":"a","url":"https://example.com","username":"alice","createdAt":"2024-01-02T03:04:05Z","updatedAt":"2024-02-03T04:05:06Z"}}`)
	}))

	rec, err := client.UpdateStory(context.Background(), "tok", "id-7", StoryFields{Title: "new title"})
	require.NoError(t, err)
	assert.Equal(t, "new title", rec.Title)
	assert.False(t, rec.UpdatedAt.IsZero())
}

func TestDeleteStory_TokenInQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/stories/id-3", r.URL.Path)
		assert.Equal(t, "tok-del", r.URL.Query().Get("token"))
		writeJSON(t, w, http.StatusOK, `{}`)
	}))

	require.NoError(t, client.DeleteStory(context.Background(), "tok-del", "id-3"))
}

func TestSignupAndLogin(t *testing.T) {
	userBody := `{"user":{"username":"alice","name":"Alice","createdAt":"2024-01-02T03:04:05Z","favorites":[],"stories":[]},"token":"tok-new"}`

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/signup":
			var body struct {
				User struct {
					Username string `json:"username"`
					Password string `json:"password"`
					Name     string `json:"name"`
				} `json:"user"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Alice", body.User.Name)
			writeJSON(t, w, http.StatusCreated, userBody)
		case "/login":
			writeJSON(t, w, http.StatusOK, userBody)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	rec, token, err := client.Signup(context.Background(), "alice", "pw", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)
	assert.Equal(t, "alice", rec.Username)

	rec, token, err = client.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)
	assert.Equal(t, "Alice", rec.Name)
}

func TestGetUser_MapsStoriesField(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("token"))
		writeJSON(t, w, http.StatusOK,
			`{"user":{"username":"alice","name":"Alice","createdAt":"2024-01-02T03:04:05Z","favorites":[{"storyId":"f-1","title":"fav","author":"a","url":"https://example.com","username":"bob","createdAt":"2024-01-02T03:04:05Z"}],"stories":[{"storyId":"s-1","title":"own","author":"a","url":"https://example.com","username":"alice","createdAt":"2024-01-02T03:04:05Z"}]}}`)
	}))

	rec, err := client.GetUser(context.Background(), "tok", "alice")
	require.NoError(t, err)
	require.Len(t, rec.Favorites, 1)
	require.Len(t, rec.Stories, 1)
	assert.Equal(t, "s-1", rec.Stories[0].StoryID)
}

func TestFavoriteEndpoints(t *testing.T) {
	var gotPost, gotDelete bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/favorites/id-9", r.URL.Path)
		switch r.Method {
		case http.MethodPost:
			gotPost = true
			data, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"token":"tok"}`, string(data))
		case http.MethodDelete:
			gotDelete = true
			assert.Equal(t, "tok", r.URL.Query().Get("token"))
		}
		writeJSON(t, w, http.StatusOK, `{}`)
	}))

	require.NoError(t, client.AddFavorite(context.Background(), "tok", "alice", "id-9"))
	require.NoError(t, client.RemoveFavorite(context.Background(), "tok", "alice", "id-9"))
	assert.True(t, gotPost)
	assert.True(t, gotDelete)
}

func TestUpdateUser_PasswordOmittedWhenEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "password")
		writeJSON(t, w, http.StatusOK,
			`{"user":{"username":"alice","name":"New Name","createdAt":"2024-01-02T03:04:05Z","favorites":[],"stories":[]}}`)
	}))

	rec, err := client.UpdateUser(context.Background(), "tok", "alice", UserUpdate{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", rec.Name)
}

func TestDo_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"token expired"}}`,
			check: func(t *testing.T, err error) {
				assert.True(t, IsAuthError(err))
				assert.Equal(t, "token expired", ServerMessage(err))
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			body:   `{"error":{"message":"not yours"}}`,
			check: func(t *testing.T, err error) {
				assert.True(t, IsAuthError(err))
			},
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   `{"error":{"message":"url is required"}}`,
			check: func(t *testing.T, err error) {
				assert.True(t, IsValidationError(err))
				assert.Equal(t, "url is required", ServerMessage(err))
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `boom`,
			check: func(t *testing.T, err error) {
				assert.False(t, IsAuthError(err))
				assert.False(t, IsValidationError(err))
				assert.Contains(t, err.Error(), "500")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			}))
			_, err := client.ListStories(context.Background(), 10, 0)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refused connection from here on
	client := NewClient(srv.URL, time.Second, nil)

	_, err := client.ListStories(context.Background(), 10, 0)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.False(t, IsAuthError(err))
}
