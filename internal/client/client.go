// Package client talks to a running VentureCompass web API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
	"github.com/1234bibhash/venture-idea-compass/internal/subscription"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status=%d)", e.Code, e.Message, e.Status)
}

type Client struct {
	baseURL string
	userID  string
	http    *http.Client
}

// NewClient sends every request as userID; empty means anonymous.
func NewClient(baseURL, userID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  strings.TrimSpace(userID),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	blob, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Code: "http_error", Message: strings.TrimSpace(string(blob))}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(blob, &envelope) == nil && envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return blob, apiErr
	}
	return blob, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	blob, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(blob, out)
}

func (c *Client) Industries(ctx context.Context) ([]string, error) {
	var resp struct {
		Industries []string `json:"industries"`
	}
	if err := c.getJSON(ctx, "/industries", &resp); err != nil {
		return nil, err
	}
	return resp.Industries, nil
}

// Submit posts an idea for validation and returns its tracking token.
func (c *Client) Submit(ctx context.Context, idea ideaanalysis.IdeaSubmission) (string, error) {
	blob, _ := json.Marshal(idea)
	out, err := c.do(ctx, http.MethodPost, "/validate", blob)
	if err != nil {
		return "", err
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(out, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return "", fmt.Errorf("missing token in response")
	}
	return resp.Token, nil
}

type SubmissionStatus struct {
	Token  string `json:"token"`
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
	Error  string `json:"error,omitempty"`
	IdeaID string `json:"idea_id,omitempty"`
}

func (c *Client) Status(ctx context.Context, token string) (SubmissionStatus, error) {
	var st SubmissionStatus
	err := c.getJSON(ctx, "/status/"+token, &st)
	return st, err
}

func (c *Client) Report(ctx context.Context, token string) (ideaanalysis.AnalysisReport, error) {
	var r ideaanalysis.AnalysisReport
	err := c.getJSON(ctx, "/results/"+token, &r)
	return r, err
}

// WaitForReport polls the submission every interval until the report is
// ready, the analysis fails, or ctx ends.
func (c *Client) WaitForReport(ctx context.Context, token string, interval time.Duration) (ideaanalysis.AnalysisReport, error) {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		st, err := c.Status(ctx, token)
		if err != nil {
			return ideaanalysis.AnalysisReport{}, err
		}
		switch {
		case st.Ready:
			return c.Report(ctx, token)
		case st.Status == "error":
			return ideaanalysis.AnalysisReport{}, fmt.Errorf("analysis %s failed: %s", token, st.Error)
		}
		select {
		case <-ctx.Done():
			return ideaanalysis.AnalysisReport{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Plan downloads the business plan; format is "txt", "html" or "pdf".
func (c *Client) Plan(ctx context.Context, token, format string) ([]byte, error) {
	path := "/plan/" + token
	if format != "" && format != "txt" {
		path += "." + format
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

type Dashboard struct {
	Subscription subscription.Status `json:"subscription"`
	Ideas        []IdeaSummary       `json:"ideas"`
}

type IdeaSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Industry  string    `json:"industry"`
	Template  string    `json:"template"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	err := c.getJSON(ctx, "/dashboard", &d)
	return d, err
}

func (c *Client) SetPremium(ctx context.Context, premium bool) (subscription.Status, error) {
	blob, _ := json.Marshal(map[string]bool{"premium": premium})
	out, err := c.do(ctx, http.MethodPost, "/premium", blob)
	if err != nil {
		return subscription.Status{}, err
	}
	var st subscription.Status
	err = json.Unmarshal(out, &st)
	return st, err
}
