// Package client is a typed HTTP client for the admin dashboard API.
//
// It is the data layer a dashboard frontend binds charts and tables to.
// The current session and the last-fetched overview snapshot live on the
// Client value itself and are passed explicitly to whatever consumes
// them; there is no ambient global state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"admindash/internal/model"
	"admindash/internal/service"
)

// Client talks to one dashboard API server. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.RWMutex
	token    string
	overview *model.Overview
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken seeds an existing bearer token (e.g. restored from storage).
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-success envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Token returns the current bearer token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Signup registers an account and stores the issued token on the client.
func (c *Client) Signup(ctx context.Context, in service.SignupInput) (service.AuthUser, error) {
	var user service.AuthUser
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, in, &user); err != nil {
		return service.AuthUser{}, err
	}
	c.setSession(user.Token)
	return user, nil
}

// Login authenticates and stores the issued token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (service.AuthUser, error) {
	var user service.AuthUser
	in := service.LoginInput{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, in, &user); err != nil {
		return service.AuthUser{}, err
	}
	c.setSession(user.Token)
	return user, nil
}

// Logout drops the session token and the cached overview.
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.overview = nil
	c.mu.Unlock()
}

func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user)
	return user, err
}

// Overview returns the cached dashboard snapshot, fetching it on first
// use. The cached value may be stale until RefreshOverview is called.
func (c *Client) Overview(ctx context.Context) (model.Overview, error) {
	c.mu.RLock()
	cached := c.overview
	c.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}
	return c.RefreshOverview(ctx)
}

// RefreshOverview fetches a fresh snapshot and replaces the cached one.
func (c *Client) RefreshOverview(ctx context.Context) (model.Overview, error) {
	var overview model.Overview
	if err := c.do(ctx, http.MethodGet, "/api/analytics/overview", nil, nil, &overview); err != nil {
		return model.Overview{}, err
	}
	c.mu.Lock()
	c.overview = &overview
	c.mu.Unlock()
	return overview, nil
}

func (c *Client) SignupsTrend(ctx context.Context, days int) ([]model.TrendPoint, error) {
	var trend []model.TrendPoint
	err := c.do(ctx, http.MethodGet, "/api/analytics/signups-trend", daysQuery(days), nil, &trend)
	return trend, err
}

func (c *Client) ActivityTrend(ctx context.Context, days int) ([]model.TrendPoint, error) {
	var trend []model.TrendPoint
	err := c.do(ctx, http.MethodGet, "/api/analytics/activity-trend", daysQuery(days), nil, &trend)
	return trend, err
}

func (c *Client) SalesTrend(ctx context.Context, days int) ([]model.SalesTrendPoint, error) {
	var trend []model.SalesTrendPoint
	err := c.do(ctx, http.MethodGet, "/api/analytics/sales", daysQuery(days), nil, &trend)
	return trend, err
}

func (c *Client) RecordEvent(ctx context.Context, in service.RecordEventInput) (model.AnalyticsEvent, error) {
	var event model.AnalyticsEvent
	err := c.do(ctx, http.MethodPost, "/api/analytics", nil, in, &event)
	return event, err
}

func (c *Client) ListUsers(ctx context.Context, page, limit int64) ([]model.User, service.Pagination, error) {
	var users []model.User
	pagination, err := c.doPaged(ctx, "/api/users", pageQuery(page, limit), &users)
	return users, pagination, err
}

func (c *Client) UserStats(ctx context.Context) (model.UserStats, error) {
	var stats model.UserStats
	err := c.do(ctx, http.MethodGet, "/api/users/stats", nil, nil, &stats)
	return stats, err
}

func (c *Client) BanUser(ctx context.Context, id string) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id)+"/ban", nil, nil, &user)
	return user, err
}

func (c *Client) UnbanUser(ctx context.Context, id string) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id)+"/unban", nil, nil, &user)
	return user, err
}

func (c *Client) ListContent(ctx context.Context, page, limit int64) ([]model.Content, service.Pagination, error) {
	var items []model.Content
	pagination, err := c.doPaged(ctx, "/api/content", pageQuery(page, limit), &items)
	return items, pagination, err
}

func (c *Client) GetContent(ctx context.Context, id string) (model.Content, error) {
	var content model.Content
	err := c.do(ctx, http.MethodGet, "/api/content/"+url.PathEscape(id), nil, nil, &content)
	return content, err
}

func (c *Client) ContentStats(ctx context.Context) (model.ContentStats, error) {
	var stats model.ContentStats
	err := c.do(ctx, http.MethodGet, "/api/content/stats/overview", nil, nil, &stats)
	return stats, err
}

func (c *Client) setSession(token string) {
	c.mu.Lock()
	c.token = token
	c.overview = nil
	c.mu.Unlock()
}

type responseEnvelope struct {
	Status     string              `json:"status"`
	Data       json.RawMessage     `json:"data"`
	Message    string              `json:"message"`
	Pagination *service.Pagination `json:"pagination"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	env, err := c.roundTrip(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (c *Client) doPaged(ctx context.Context, path string, query url.Values, out any) (service.Pagination, error) {
	env, err := c.roundTrip(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return service.Pagination{}, err
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return service.Pagination{}, err
		}
	}
	if env.Pagination != nil {
		return *env.Pagination, nil
	}
	return service.Pagination{}, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) (*responseEnvelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 || env.Status == "error" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

func daysQuery(days int) url.Values {
	if days <= 0 {
		return nil
	}
	return url.Values{"days": []string{strconv.Itoa(days)}}
}

func pageQuery(page, limit int64) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.FormatInt(page, 10))
	}
	if limit > 0 {
		q.Set("limit", strconv.FormatInt(limit, 10))
	}
	return q
}
