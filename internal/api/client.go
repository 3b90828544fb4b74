// Package api is the JSON-over-HTTP client for the production-tracking
// backend. The backend owns all entity rows; this client only queries and
// mutates them. Endpoint shapes follow the backend contract: query endpoints
// take a JSON filter and return an array of records, single-field updates
// take {id, field, value}, creates take a full payload and return the created
// record.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"slate-cli/internal/fieldmap"
	"slate-cli/internal/model"

	"github.com/google/uuid"
)

type Client struct {
	BaseURL string
	// ActorEmail is sent with destructive calls as a server-side
	// authorization hint. The real permission check lives server-side.
	ActorEmail string

	HTTPClient *http.Client
}

func New(baseURL, actorEmail string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		ActorEmail: strings.TrimSpace(actorEmail),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is a non-2xx response, with the server's optional {message} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("backend error: status %d", e.Status)
	}
	return fmt.Sprintf("backend error: status %d: %s", e.Status, e.Message)
}

var ErrNoBaseURL = errors.New("no backend URL configured; run `slate config set --url ...`")

// Filter scopes a query. ProjectID is required by every collection endpoint;
// EntityType/EntityID narrow relationship collections (tasks and notes attach
// to a shot or an asset).
type Filter struct {
	ProjectID  int64  `json:"project_id"`
	EntityType string `json:"entity_type,omitempty"`
	EntityID   int64  `json:"entity_id,omitempty"`
}

// DeleteOpts carry the actor email and permission string some deletion
// endpoints expect as an authorization hint.
type DeleteOpts struct {
	ActorEmail string `json:"email,omitempty"`
	Permission string `json:"permission,omitempty"`
}

func kindPath(kind model.Kind) string {
	// Collection segment per kind, e.g. /api/v1/shots/query.
	return string(kind) + "s"
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrNoBaseURL
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Correlation id for backend logs; the client never retries, so one id
	// maps to one attempt.
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.ActorEmail != "" {
		req.Header.Set("X-Actor-Email", c.ActorEmail)
	}

	httpc := c.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		if json.Unmarshal(b, &body) == nil {
			apiErr.Message = strings.TrimSpace(body.Message)
		}
	}
	return apiErr
}

// Query fetches the collection of a kind matching filter. Records come back
// normalized to client field names (backend columns renamed through the field
// map), so every caller sees one vocabulary.
func (c *Client) Query(ctx context.Context, kind model.Kind, filter Filter) ([]model.Record, error) {
	var out []model.Record
	if err := c.do(ctx, http.MethodPost, "/api/v1/"+kindPath(kind)+"/query", filter, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Record{}
	}
	for _, rec := range out {
		fieldmap.Normalize(kind, rec)
	}
	return out, nil
}

// UpdateField issues a single-field update {id, field, value}. field is the
// backend column name, already resolved through the field map.
func (c *Client) UpdateField(ctx context.Context, kind model.Kind, id int64, column string, value any) error {
	payload := map[string]any{
		"id":    id,
		"field": column,
		"value": value,
	}
	return c.do(ctx, http.MethodPost, "/api/v1/"+kindPath(kind)+"/update", payload, nil)
}

// Create posts a full payload and returns the created record (the backend
// assigns the id; nothing is known client-side until it responds).
func (c *Client) Create(ctx context.Context, kind model.Kind, payload model.Record) (model.Record, error) {
	var out struct {
		Data model.Record `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/"+kindPath(kind)+"/create", payload, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = model.Record{}
	}
	return fieldmap.Normalize(kind, out.Data), nil
}

// Delete removes a row. 200/204 means deleted; the caller decides how local
// lists converge (see mutate.Controller.Delete).
func (c *Client) Delete(ctx context.Context, kind model.Kind, id int64, opts DeleteOpts) error {
	payload := map[string]any{"id": id}
	if strings.TrimSpace(opts.ActorEmail) != "" {
		payload["email"] = opts.ActorEmail
	}
	if strings.TrimSpace(opts.Permission) != "" {
		payload["permission"] = opts.Permission
	}
	return c.do(ctx, http.MethodPost, "/api/v1/"+kindPath(kind)+"/delete", payload, nil)
}
