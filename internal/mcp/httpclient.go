package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the RepKeeper REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL,
// authenticating with the given bearer token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
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
	req.Header.Set("Authorization", "Bearer "+c.token)

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

func (c *HTTPClient) GetRoutines(ctx context.Context) ([]models.Routine, error) {
	body, err := c.get(ctx, "/api/v1/routines", nil)
	if err != nil {
		return nil, err
	}

	var routines []models.Routine
	if err := json.Unmarshal(body, &routines); err != nil {
		return nil, fmt.Errorf("httpclient: decode routines: %w", err)
	}
	return routines, nil
}

func (c *HTTPClient) GetActiveRoutines(ctx context.Context) ([]models.Routine, error) {
	body, err := c.get(ctx, "/api/v1/routines/active", nil)
	if err != nil {
		return nil, err
	}

	var routines []models.Routine
	if err := json.Unmarshal(body, &routines); err != nil {
		return nil, fmt.Errorf("httpclient: decode active routines: %w", err)
	}
	return routines, nil
}

func (c *HTTPClient) GetTrainingDaysWithExercises(ctx context.Context, routineID uuid.UUID) ([]models.TrainingDayWithExercises, error) {
	body, err := c.get(ctx, "/api/v1/routines/"+routineID.String()+"/training_days/with_exercises", nil)
	if err != nil {
		return nil, err
	}

	var days []models.TrainingDayWithExercises
	if err := json.Unmarshal(body, &days); err != nil {
		return nil, fmt.Errorf("httpclient: decode training days: %w", err)
	}
	return days, nil
}

func (c *HTTPClient) SearchExercises(ctx context.Context, name string) ([]models.Exercise, error) {
	params := url.Values{}
	params.Set("name", name)

	body, err := c.get(ctx, "/api/v1/exercises/search", params)
	if err != nil {
		return nil, err
	}

	var exercises []models.Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return exercises, nil
}

func (c *HTTPClient) GetSessionsByDay(ctx context.Context, dayID uuid.UUID) ([]models.Session, error) {
	body, err := c.get(ctx, "/api/v1/training_days/"+dayID.String()+"/sessions", nil)
	if err != nil {
		return nil, err
	}

	var sessions []models.Session
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return sessions, nil
}

func (c *HTTPClient) GetSessionInProgress(ctx context.Context, routineID uuid.UUID) (*models.SessionWithPerformance, error) {
	body, err := c.get(ctx, "/api/v1/routines/"+routineID.String()+"/sessions/in_progress", nil)
	if err != nil {
		return nil, err
	}

	// The server responds with null when the routine is idle.
	var view *models.SessionWithPerformance
	if err := json.Unmarshal(body, &view); err != nil {
		return nil, fmt.Errorf("httpclient: decode session in progress: %w", err)
	}
	return view, nil
}
