package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/config"
	"github.com/zoklk/ProjectTracker/internal/model"
	"github.com/zoklk/ProjectTracker/pkg/metrics"
)

const (
	notionVersion = "2022-06-28"
	pageSize      = 100
)

// Client fetches project records from one Notion database.
type Client struct {
	baseURL    string
	apiKey     string
	databaseID string
	props      config.NotionProperties
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.NotionConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		databaseID: cfg.DatabaseID,
		props:      cfg.Properties,
		httpClient: &http.Client{
			Timeout: 10 * time.Second, // 페이지당 타임아웃
		},
		logger: logger,
	}
}

type queryRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// FetchAllProjects retrieves the full remote project set, following the
// cursor until the database is exhausted. No status filter is applied:
// the complete remote set is authoritative for reconciliation.
//
// Records without a name are dropped; missing or unparseable dates
// default to the current date.
func (c *Client) FetchAllProjects(ctx context.Context) ([]model.RemoteProject, error) {
	var (
		projects []model.RemoteProject
		cursor   string
		pages    int
	)

	for {
		resp, err := c.queryPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		pages++

		for _, p := range resp.Results {
			record := c.extractProject(p)
			if record == nil {
				continue
			}
			projects = append(projects, *record)
		}

		if !resp.HasMore || resp.NextCursor == nil {
			break
		}
		cursor = *resp.NextCursor
	}

	c.logger.Info("Fetched projects from Notion",
		zap.Int("count", len(projects)),
		zap.Int("pages", pages),
	)
	return projects, nil
}

func (c *Client) queryPage(ctx context.Context, cursor string) (*queryResponse, error) {
	endpoint := fmt.Sprintf("/v1/databases/%s/query", c.databaseID)

	body, err := json.Marshal(queryRequest{PageSize: pageSize, StartCursor: cursor})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", notionVersion)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)

	if err != nil {
		metrics.RecordNotionCallLatency("/databases/query", "error", latency)
		return nil, fmt.Errorf("failed to call notion api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		status := fmt.Sprintf("%d", resp.StatusCode)
		metrics.RecordNotionCallLatency("/databases/query", status, latency)
		return nil, fmt.Errorf("notion api returned status %d", resp.StatusCode)
	}
	metrics.RecordNotionCallLatency("/databases/query", "success", latency)

	var out queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode notion response: %w", err)
	}
	return &out, nil
}
