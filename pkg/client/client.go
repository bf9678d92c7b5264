// Package client is a Go SDK for the lifeos rolodex API. Every call carries
// the X-User-Id identity header and unwraps the {success,data}/{success,error}
// envelope the server speaks.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// APIError is the decoded error envelope from a failed call.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// IsNotFound reports whether err is an APIError with HTTP 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == 404
}

// IsConflict reports whether err is an APIError with HTTP 409.
func IsConflict(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == 409
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

// Client talks to one lifeos server on behalf of one user.
type Client struct {
	http *resty.Client
}

// Option adjusts the underlying HTTP client.
type Option func(*resty.Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(rc *resty.Client) {
		rc.SetTimeout(d)
	}
}

// New creates a client for the server at baseURL acting as userID.
// baseURL is the server root, without the /api prefix.
func New(baseURL, userID string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/") + "/api").
		SetHeader("Content-Type", "application/json").
		SetHeader("X-User-Id", userID).
		SetTimeout(defaultTimeout)
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%s %s: status %d with undecodable body: %w", method, path, resp.StatusCode(), err)
	}
	if !env.Success {
		if env.Error != nil {
			return env.Error
		}
		return fmt.Errorf("%s %s: status %d without error detail", method, path, resp.StatusCode())
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}
	return nil
}

// Health reports server and database health. Unlike the rest of the API
// the health route answers with a bare status document, not the envelope.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		return nil, fmt.Errorf("GET /health: %w", err)
	}
	var out Health
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("GET /health: status %d with undecodable body: %w", resp.StatusCode(), err)
	}
	return &out, nil
}

// SyncUser upserts the acting user's profile. The id must match the
// client's user.
func (c *Client) SyncUser(ctx context.Context, input SyncUserInput) (*User, error) {
	var out User
	if err := c.do(ctx, "POST", "/users/sync", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the acting user's stored profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, "GET", "/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPeople returns the acting user's people, newest favorites first.
func (c *Client) ListPeople(ctx context.Context, opts *ListPeopleOptions) ([]Person, error) {
	query := map[string]string{}
	if opts != nil {
		if opts.Search != "" {
			query["search"] = opts.Search
		}
		if len(opts.TagIDs) > 0 {
			query["tagIds"] = strings.Join(opts.TagIDs, ",")
		}
		if opts.Limit != nil {
			query["limit"] = strconv.Itoa(*opts.Limit)
		}
		if opts.Offset != nil {
			query["offset"] = strconv.Itoa(*opts.Offset)
		}
	}
	var out []Person
	if err := c.do(ctx, "GET", "/rolodex/people", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPerson fetches one person with roles, tags, notes, asks and favours.
func (c *Client) GetPerson(ctx context.Context, id string) (*Person, error) {
	var out Person
	if err := c.do(ctx, "GET", "/rolodex/people/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePerson creates a person, optionally pre-tagged.
func (c *Client) CreatePerson(ctx context.Context, input CreatePersonInput) (*Person, error) {
	var out Person
	if err := c.do(ctx, "POST", "/rolodex/people", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePerson applies the non-nil fields of input. A non-nil TagIDs
// replaces the person's tag set wholesale.
func (c *Client) UpdatePerson(ctx context.Context, id string, input UpdatePersonInput) (*Person, error) {
	var out Person
	if err := c.do(ctx, "PUT", "/rolodex/people/"+id, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePerson soft-deletes a person. The record disappears from reads but
// its asks and favours stay listed.
func (c *Client) DeletePerson(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/rolodex/people/"+id, nil, nil, nil)
}

// AddRole attaches a role to a person.
func (c *Client) AddRole(ctx context.Context, personID string, input CreateRoleInput) (*Role, error) {
	var out Role
	if err := c.do(ctx, "POST", "/rolodex/people/"+personID+"/roles", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddNote appends a note to a person.
func (c *Client) AddNote(ctx context.Context, personID string, input CreateNoteInput) (*Note, error) {
	var out Note
	if err := c.do(ctx, "POST", "/rolodex/people/"+personID+"/notes", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTags returns the acting user's tags ordered by name.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var out []Tag
	if err := c.do(ctx, "GET", "/rolodex/tags", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTag creates a tag. A duplicate name yields a 409 APIError.
func (c *Client) CreateTag(ctx context.Context, input CreateTagInput) (*Tag, error) {
	var out Tag
	if err := c.do(ctx, "POST", "/rolodex/tags", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTag applies the non-nil fields of input.
func (c *Client) UpdateTag(ctx context.Context, id string, input UpdateTagInput) (*Tag, error) {
	var out Tag
	if err := c.do(ctx, "PUT", "/rolodex/tags/"+id, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTag removes a tag and its person associations.
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/rolodex/tags/"+id, nil, nil, nil)
}

// ListAsks returns asks across the user's people, newest first.
func (c *Client) ListAsks(ctx context.Context, opts *ListTasksOptions) ([]Task, error) {
	return c.listTasks(ctx, "asks", opts)
}

// CreateAsk creates an ask for an owned, non-deleted person.
func (c *Client) CreateAsk(ctx context.Context, input CreateTaskInput) (*Task, error) {
	return c.createTask(ctx, "asks", input)
}

// UpdateAsk applies the set fields of input to an ask.
func (c *Client) UpdateAsk(ctx context.Context, id string, input UpdateTaskInput) (*Task, error) {
	return c.updateTask(ctx, "asks", id, input)
}

// DeleteAsk hard-deletes an ask. Children of the ask keep their parentId.
func (c *Client) DeleteAsk(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/rolodex/asks/"+id, nil, nil, nil)
}

// ListFavours returns favours across the user's people, newest first.
func (c *Client) ListFavours(ctx context.Context, opts *ListTasksOptions) ([]Task, error) {
	return c.listTasks(ctx, "favours", opts)
}

// CreateFavour creates a favour for an owned, non-deleted person.
func (c *Client) CreateFavour(ctx context.Context, input CreateTaskInput) (*Task, error) {
	return c.createTask(ctx, "favours", input)
}

// UpdateFavour applies the set fields of input to a favour.
func (c *Client) UpdateFavour(ctx context.Context, id string, input UpdateTaskInput) (*Task, error) {
	return c.updateTask(ctx, "favours", id, input)
}

// DeleteFavour hard-deletes a favour. Children keep their parentId.
func (c *Client) DeleteFavour(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/rolodex/favours/"+id, nil, nil, nil)
}

// ListIntegrations returns the integration catalog with the acting user's
// connection state merged in.
func (c *Client) ListIntegrations(ctx context.Context) ([]Integration, error) {
	var out []Integration
	if err := c.do(ctx, "GET", "/integrations", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConnectIntegration marks an integration connected; settings may be nil.
func (c *Client) ConnectIntegration(ctx context.Context, integrationType string, settings map[string]any) (*Integration, error) {
	var body any
	if settings != nil {
		body = map[string]any{"settings": settings}
	}
	var out Integration
	if err := c.do(ctx, "POST", "/integrations/"+integrationType+"/connect", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DisconnectIntegration marks a previously connected integration
// disconnected.
func (c *Client) DisconnectIntegration(ctx context.Context, integrationType string) (*Integration, error) {
	var out Integration
	if err := c.do(ctx, "POST", "/integrations/"+integrationType+"/disconnect", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) listTasks(ctx context.Context, kind string, opts *ListTasksOptions) ([]Task, error) {
	query := map[string]string{}
	if opts != nil {
		if opts.PersonID != "" {
			query["personId"] = opts.PersonID
		}
		if opts.Completed != nil {
			query["completed"] = strconv.FormatBool(*opts.Completed)
		}
	}
	var out []Task
	if err := c.do(ctx, "GET", "/rolodex/"+kind, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) createTask(ctx context.Context, kind string, input CreateTaskInput) (*Task, error) {
	var out Task
	if err := c.do(ctx, "POST", "/rolodex/"+kind, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) updateTask(ctx context.Context, kind, id string, input UpdateTaskInput) (*Task, error) {
	// The parentId field is tri-state on the wire: absent leaves it alone,
	// null clears it, a value re-parents. A map keeps absent distinct from
	// null, which struct tags cannot express.
	body := map[string]any{}
	if input.Description != nil {
		body["description"] = *input.Description
	}
	if input.Completed != nil {
		body["completed"] = *input.Completed
	}
	if input.ClearParent {
		body["parentId"] = nil
	} else if input.ParentID != nil {
		body["parentId"] = *input.ParentID
	}
	var out Task
	if err := c.do(ctx, "PUT", "/rolodex/"+kind+"/"+id, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
