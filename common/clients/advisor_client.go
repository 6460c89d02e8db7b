package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AdvisorClient calls the external text-generation service that turns
// aggregated inventory/sales figures into a narrative report. The service
// itself (model, prompting) is outside this codebase; we only own the
// request/response shape.
type AdvisorClient struct {
	http        *HTTPClient
	endpointURL string
	logger      Logger
}

// AdvisorRequest is the payload sent to the generation endpoint
type AdvisorRequest struct {
	ReportKind string         `json:"report_kind"`
	Stats      map[string]any `json:"stats"`
}

// AdvisorResponse is the generation endpoint's reply
type AdvisorResponse struct {
	Text string `json:"text"`
}

// NewAdvisorClient creates a new advisor client
func NewAdvisorClient(endpointURL string, timeout time.Duration, logger Logger) *AdvisorClient {
	return &AdvisorClient{
		http:        NewHTTPClient(&http.Client{Timeout: timeout}, logger),
		endpointURL: endpointURL,
		logger:      logger,
	}
}

// GenerateReport asks the external service for a textual report over the
// given stats. Returns the generated text.
func (c *AdvisorClient) GenerateReport(ctx context.Context, kind string, stats map[string]any) (string, error) {
	payload, err := json.Marshal(AdvisorRequest{ReportKind: kind, Stats: stats})
	if err != nil {
		return "", fmt.Errorf("failed to marshal advisor request: %w", err)
	}

	resp, err := c.http.PostJSON(ctx, c.endpointURL, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("advisor request failed", "kind", kind, "error", err)
		return "", fmt.Errorf("advisor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("advisor returned status %d: %s", resp.StatusCode, string(body))
	}

	var out AdvisorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode advisor response: %w", err)
	}

	if out.Text == "" {
		return "", fmt.Errorf("advisor returned an empty report")
	}

	c.logger.Debug("advisor report generated", "kind", kind, "chars", len(out.Text))
	return out.Text, nil
}
