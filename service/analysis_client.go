package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"health-advisor/domain"
)

const maxErrorBody = 4 << 10

// AnalysisClient talks to the remote analysis and recommendation services.
// Every call is a single attempt; failures are returned, never retried.
type AnalysisClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAnalysisClient(baseURL string, timeout time.Duration) *AnalysisClient {
	return &AnalysisClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Analyze posts validated metrics to /api/health/analyze.
func (c *AnalysisClient) Analyze(
	ctx context.Context,
	session domain.Session,
	input domain.AnalysisRequest,
) (domain.AnalysisResult, error) {

	jsonData, err := json.Marshal(input)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/health/analyze", bytes.NewReader(jsonData))
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result domain.AnalysisResult
	if err := c.do(req, session, "analyze", &result); err != nil {
		return domain.AnalysisResult{}, err
	}
	return result, nil
}

// Recommendations fetches the diet, exercise and lifestyle bundle for the session's user.
func (c *AnalysisClient) Recommendations(
	ctx context.Context,
	session domain.Session,
) (domain.Recommendation, error) {

	url := fmt.Sprintf("%s/api/recommendations/%d", c.baseURL, session.UserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Recommendation{}, err
	}

	var rec domain.Recommendation
	if err := c.do(req, session, "recommendations", &rec); err != nil {
		return domain.Recommendation{}, err
	}
	return rec, nil
}

func (c *AnalysisClient) do(req *http.Request, session domain.Session, op string, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", session.Token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrSessionExpired
	case resp.StatusCode == http.StatusBadRequest:
		return ErrServerRejected
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
