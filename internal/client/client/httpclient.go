package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 4 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", credentials{email, password}, &u, false); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", credentials{email, password}, &resp, false); err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, false)
}

func (c *HTTPClient) ListJobs(ctx context.Context) ([]models.Job, error) {
	jobs := []models.Job{}
	if err := c.do(ctx, http.MethodGet, "/api/jobs", nil, &jobs, true); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *HTTPClient) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	if err := c.do(ctx, http.MethodGet, jobPath(id), nil, &j, true); err != nil {
		return nil, err
	}
	return &j, nil
}

func (c *HTTPClient) CreateJob(ctx context.Context, in models.JobInput) (*models.Job, error) {
	var j models.Job
	if err := c.do(ctx, http.MethodPost, "/api/jobs", in, &j, true); err != nil {
		return nil, err
	}
	return &j, nil
}

func (c *HTTPClient) UpdateJob(ctx context.Context, id string, in models.JobInput) (*models.Job, error) {
	var j models.Job
	if err := c.do(ctx, http.MethodPut, jobPath(id), in, &j, true); err != nil {
		return nil, err
	}
	return &j, nil
}

func (c *HTTPClient) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, jobPath(id), nil, nil, true)
}

func jobPath(id string) string {
	return "/api/jobs/" + url.PathEscape(id)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, auth bool) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if auth {
		if tok := c.currentToken(); tok != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapStatus(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(b, &payload)

	msg := payload.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		return fmt.Errorf("%w: %d %s", ErrServer, resp.StatusCode, msg)
	}
}
