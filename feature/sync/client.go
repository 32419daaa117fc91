package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog-manager/feature/library/models"
)

// Payload is the data exchanged with the remote endpoint on push and pull.
// BoyouBooks is an opaque object the endpoint contract carries; the
// coordinator echoes back whatever the last pull delivered.
type Payload struct {
	Books         []models.BookRecord `json:"books"`
	BorrowedBooks []models.LoanRecord `json:"borrowedBooks"`
	BoyouBooks    map[string]any      `json:"boyouBooks"`
}

type pushRequest struct {
	Action  string  `json:"action"`
	Payload Payload `json:"payload"`
}

type pullRequest struct {
	Action string `json:"action"`
}

type statusResponse struct {
	OK bool `json:"ok"`
}

// pullData uses pointers to sequences so a missing field is distinguishable
// from an empty one; both books and borrowedBooks must be present.
type pullData struct {
	Books         *[]models.BookRecord `json:"books"`
	BorrowedBooks *[]models.LoanRecord `json:"borrowedBooks"`
	BoyouBooks    map[string]any       `json:"boyouBooks"`
}

type pullResponse struct {
	OK   bool      `json:"ok"`
	Data *pullData `json:"data"`
}

// Client posts push and pull requests to the remote spreadsheet-backed
// endpoint. The protocol is a single POST URL with an action discriminator.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a client for the endpoint at url.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Push uploads the full local payload. Transport failures, non-2xx statuses
// and ok:false responses all wrap ErrPushFailed.
func (c *Client) Push(ctx context.Context, payload Payload) error {
	if payload.BoyouBooks == nil {
		payload.BoyouBooks = map[string]any{}
	}
	var status statusResponse
	if err := c.post(ctx, pushRequest{Action: "push", Payload: payload}, &status); err != nil {
		return fmt.Errorf("%w: %v", ErrPushFailed, err)
	}
	if !status.OK {
		return fmt.Errorf("%w: endpoint reported ok=false", ErrPushFailed)
	}
	return nil
}

// Pull downloads the remote payload. The response must carry both the books
// and borrowedBooks sequences or ErrMalformedResponse is returned.
func (c *Client) Pull(ctx context.Context) (Payload, error) {
	var resp pullResponse
	if err := c.post(ctx, pullRequest{Action: "pull"}, &resp); err != nil {
		return Payload{}, err
	}
	if !resp.OK || resp.Data == nil {
		return Payload{}, fmt.Errorf("%w: missing data", ErrMalformedResponse)
	}
	if resp.Data.Books == nil || resp.Data.BorrowedBooks == nil {
		return Payload{}, fmt.Errorf("%w: books and borrowedBooks must both be present", ErrMalformedResponse)
	}
	return Payload{
		Books:         *resp.Data.Books,
		BorrowedBooks: *resp.Data.BorrowedBooks,
		BoyouBooks:    resp.Data.BoyouBooks,
	}, nil
}

func (c *Client) post(ctx context.Context, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
