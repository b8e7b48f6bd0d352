package api

import "time"

// StoryRecord is the wire representation of a story as returned by the
// remote API.
type StoryRecord struct {
	StoryID   string    `json:"storyId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt appears only on PATCH responses. It is server-only
	// bookkeeping and is discarded when the record becomes a Story.
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// UserRecord is the wire representation of a user profile. The server
// names authored stories "stories"; locally that collection is known as
// the user's own stories, and the mapping happens at this boundary.
type UserRecord struct {
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	Favorites []StoryRecord `json:"favorites"`
	Stories   []StoryRecord `json:"stories"`
}

// StoryFields carries the caller-supplied story attributes for create
// and partial-update requests. Empty fields are omitted so a PATCH only
// touches what the caller set.
type StoryFields struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url,omitempty"`
}

// UserUpdate carries a profile update. An absent Password means "do not
// change the password" and the field is left out of the request body
// entirely.
type UserUpdate struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}
