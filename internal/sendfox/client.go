// Package sendfox is a small client for the SendFox mailing-list REST API,
// plus the batched list-migration routine built on top of it.
package sendfox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the production API base.
const DefaultBaseURL = "https://api.sendfox.com"

// Client calls the SendFox API with a personal access token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client. baseURL falls back to DefaultBaseURL when empty.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the SendFox API. The raw body is kept
// so handlers can pass the remote detail through.
type APIError struct {
	Status int
	Body   json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sendfox: status %d: %s", e.Status, e.Body)
}

// HTTPStatus propagates the downstream status code to the HTTP layer.
func (e *APIError) HTTPStatus() int { return e.Status }

// Detail returns the remote error payload for inclusion in responses.
func (e *APIError) Detail() any {
	if len(e.Body) == 0 {
		return nil
	}
	return e.Body
}

// List is a mailing list.
type List struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Contact is a mailing-list contact with its list memberships. A contact
// missing the lists field decodes to an empty membership set.
type Contact struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Lists []List `json:"lists"`
}

// ListIDs returns the contact's current membership ids.
func (c Contact) ListIDs() []int64 {
	ids := make([]int64, 0, len(c.Lists))
	for _, l := range c.Lists {
		ids = append(ids, l.ID)
	}
	return ids
}

// page is the envelope SendFox wraps collection responses in.
type page[T any] struct {
	Data  []T `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

func (c *Client) do(ctx context.Context, method, url string, body any, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sendfox: %s %s: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sendfox: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: raw}
	}
	if dest != nil {
		if err := json.Unmarshal(raw, dest); err != nil {
			return fmt.Errorf("sendfox: decode response: %w", err)
		}
	}
	return nil
}

// Lists fetches all mailing lists.
func (c *Client) Lists(ctx context.Context) ([]List, error) {
	var p page[List]
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/lists", nil, &p); err != nil {
		return nil, err
	}
	return p.Data, nil
}

// ContactInput holds the fields for creating or updating a contact. The
// create endpoint upserts by email.
type ContactInput struct {
	Email     string  `json:"email"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	Lists     []int64 `json:"lists,omitempty"`
}

// CreateContact creates or updates a contact by email and returns the stored
// record.
func (c *Client) CreateContact(ctx context.Context, input ContactInput) (*Contact, error) {
	var contact Contact
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/contacts", input, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListContacts fetches every contact in the given list, following the
// server-supplied next-page links until exhausted.
func (c *Client) ListContacts(ctx context.Context, listID int64) ([]Contact, error) {
	var all []Contact
	url := fmt.Sprintf("%s/lists/%d/contacts", c.baseURL, listID)
	for url != "" {
		var p page[Contact]
		if err := c.do(ctx, http.MethodGet, url, nil, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Data...)
		url = p.Links.Next
	}
	return all, nil
}

// UpdateContact rewrites a contact's list memberships and marks it
// subscribed. The endpoint takes POST on the contact id.
func (c *Client) UpdateContact(ctx context.Context, contactID int64, email string, lists []int64) error {
	payload := struct {
		Email  string  `json:"email"`
		Lists  []int64 `json:"lists"`
		Status string  `json:"status"`
	}{Email: email, Lists: lists, Status: "subscribed"}
	url := fmt.Sprintf("%s/contacts/%d", c.baseURL, contactID)
	return c.do(ctx, http.MethodPost, url, payload, nil)
}
