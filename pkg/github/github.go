package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// Client publishes files to a GitHub repository through the contents API.
// The blob SHA returned by Get doubles as the revision token that must
// accompany updates and deletes, so conflicting writers fail with 409
// instead of clobbering each other.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	owner      string
	repo       string
	branch     string
}

type Config struct {
	Token  string
	Owner  string
	Repo   string
	Branch string
}

func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      cfg.Token,
		owner:      cfg.Owner,
		repo:       cfg.Repo,
		branch:     cfg.Branch,
	}
}

type contentResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type writeRequest struct {
	Message string `json:"message"`
	Content string `json:"content,omitempty"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type writeResponse struct {
	Content *struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, c.repo, path)
}

// Get fetches a file from the publishing branch. A missing file is reported
// through the found flag, not as an error.
func (c *Client) Get(ctx context.Context, path string) ([]byte, string, bool, error) {
	endpoint := c.contentsURL(path) + "?ref=" + url.QueryEscape(c.branch)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", false, fmt.Errorf("build request for %s: %w", path, err)
	}
	c.setHeaders(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", false, fmt.Errorf("get %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, "", false, nil
	}
	if res.StatusCode != http.StatusOK {
		return nil, "", false, c.apiError("get", path, res)
	}

	var body contentResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, "", false, fmt.Errorf("decode %s: %w", path, err)
	}

	// The API wraps base64 content at 60 columns.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(body.Content, "\n", ""))
	if err != nil {
		return nil, "", false, fmt.Errorf("decode content of %s: %w", path, err)
	}

	return raw, body.SHA, true, nil
}

// Put creates or updates a file. The revision must be the SHA from the last
// Get when the file already exists, and empty when creating it.
func (c *Client) Put(ctx context.Context, path string, content []byte, message, revision string) (string, error) {
	payload := writeRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  c.branch,
		SHA:     revision,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", path, err)
	}
	c.setHeaders(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("put %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return "", c.apiError("put", path, res)
	}

	var result writeResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response for %s: %w", path, err)
	}
	if result.Content == nil {
		return "", nil
	}
	return result.Content.SHA, nil
}

// Delete removes a file at the given revision.
func (c *Client) Delete(ctx context.Context, path, message, revision string) error {
	payload := writeRequest{
		Message: message,
		Branch:  c.branch,
		SHA:     revision,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	c.setHeaders(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return c.apiError("delete", path, res)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
}

func (c *Client) apiError(op, path string, res *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("github %s %s: status %d: %s", op, path, res.StatusCode, strings.TrimSpace(string(snippet)))
}
