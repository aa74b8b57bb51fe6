package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/repcoin/repcoin/internal/models"
	"github.com/repcoin/repcoin/internal/storage"
)

// HTTPClient implements DataSource by calling the RepCoin REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// bucketToAgg maps MCP bucket values to REST API agg parameter values.
func bucketToAgg(bucket string) string {
	switch bucket {
	case "hour":
		return "hourly"
	case "week":
		return "weekly"
	default:
		return "daily"
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) GetWallet(ctx context.Context) (*models.Wallet, error) {
	body, err := c.get(ctx, "/api/v1/wallet", nil)
	if err != nil {
		return nil, err
	}

	var wallet models.Wallet
	if err := json.Unmarshal(body, &wallet); err != nil {
		return nil, fmt.Errorf("httpclient: decode wallet: %w", err)
	}
	return &wallet, nil
}

func (c *HTTPClient) QueryRecentReps(ctx context.Context, limit int) ([]models.Rep, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/api/v1/reps", params)
	if err != nil {
		return nil, err
	}

	var reps []models.Rep
	if err := json.Unmarshal(body, &reps); err != nil {
		return nil, fmt.Errorf("httpclient: decode reps: %w", err)
	}
	return reps, nil
}

func (c *HTTPClient) QueryRecentSessions(ctx context.Context, limit int) ([]models.WorkoutSession, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/api/v1/sessions", params)
	if err != nil {
		return nil, err
	}

	var sessions []models.WorkoutSession
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return sessions, nil
}

func (c *HTTPClient) GetRepStats(ctx context.Context, start, end time.Time, bucket string) ([]storage.RepStatsPoint, error) {
	params := url.Values{}
	params.Set("start", start.Format(time.RFC3339))
	params.Set("end", end.Format(time.RFC3339))
	params.Set("agg", bucketToAgg(bucket))

	body, err := c.get(ctx, "/api/v1/reps/stats", params)
	if err != nil {
		return nil, err
	}

	var points []storage.RepStatsPoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("httpclient: decode rep stats: %w", err)
	}
	return points, nil
}
