package client

import "time"

// Health is the body of a health check response.
type Health struct {
	Status   string            `json:"status"`
	Database string            `json:"database"`
	Details  map[string]string `json:"details,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// User is the stored profile of an authenticated user.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Person is a rolodex contact with its relations.
type Person struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	IsFavorite  bool       `json:"isFavorite"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`

	Roles   []Role `json:"roles"`
	Tags    []Tag  `json:"tags"`
	Notes   []Note `json:"notes"`
	Asks    []Task `json:"asks"`
	Favours []Task `json:"favours"`
}

// Role is a position a person holds.
type Role struct {
	ID        string    `json:"id"`
	PersonID  string    `json:"personId"`
	Title     string    `json:"title"`
	Company   *string   `json:"company"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Note is an append-only note on a person.
type Note struct {
	ID        string    `json:"id"`
	PersonID  string    `json:"personId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tag is a user-owned label, unique by name per user.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Task is an ask or favour row. ParentID links to another task of the same
// kind when this one is a sub-task.
type Task struct {
	ID          string    `json:"id"`
	PersonID    string    `json:"personId"`
	ParentID    *string   `json:"parentId"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Integration is one entry of the integrations catalog with the user's
// connection state.
type Integration struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Email       *string        `json:"email,omitempty"`
	Connected   bool           `json:"connected"`
	ConnectedAt *time.Time     `json:"connectedAt,omitempty"`
	Settings    map[string]any `json:"settings,omitempty"`
}

// SyncUserInput mirrors the identity provider profile pushed at login.
type SyncUserInput struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

// ListPeopleOptions filters and pages a people listing. All fields are
// optional.
type ListPeopleOptions struct {
	Search string
	TagIDs []string
	Limit  *int
	Offset *int
}

// CreatePersonInput creates a person. TagIDs must name tags the user owns.
type CreatePersonInput struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	IsFavorite  *bool    `json:"isFavorite,omitempty"`
	TagIDs      []string `json:"tagIds,omitempty"`
}

// UpdatePersonInput changes a person. Nil fields are left untouched; a
// non-nil TagIDs replaces the tag set.
type UpdatePersonInput struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	IsFavorite  *bool     `json:"isFavorite,omitempty"`
	TagIDs      *[]string `json:"tagIds,omitempty"`
}

// CreateRoleInput attaches a role to a person.
type CreateRoleInput struct {
	Title   string  `json:"title"`
	Company *string `json:"company,omitempty"`
}

// CreateNoteInput appends a note to a person.
type CreateNoteInput struct {
	Content string `json:"content"`
}

// CreateTagInput creates a tag.
type CreateTagInput struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

// UpdateTagInput changes a tag. Nil fields are left untouched.
type UpdateTagInput struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// ListTasksOptions filters an ask or favour listing.
type ListTasksOptions struct {
	PersonID  string
	Completed *bool
}

// CreateTaskInput creates an ask or favour.
type CreateTaskInput struct {
	PersonID    string  `json:"personId"`
	ParentID    *string `json:"parentId,omitempty"`
	Description string  `json:"description"`
}

// UpdateTaskInput changes an ask or favour. Nil fields are left untouched.
// ClearParent detaches the task from its parent; it wins over ParentID.
type UpdateTaskInput struct {
	Description *string
	Completed   *bool
	ParentID    *string
	ClearParent bool
}
