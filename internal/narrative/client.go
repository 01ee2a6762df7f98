package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to an external content-generation service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) MarketEvent(ctx context.Context, req MarketEventRequest) (MarketEvent, error) {
	var out MarketEvent
	if err := c.postJSON(ctx, "/v1/market-event", req, &out); err != nil {
		return MarketEvent{}, err
	}
	return out, nil
}

func (c *Client) ScanReport(ctx context.Context, req ScanRequest) (string, error) {
	var out struct {
		Report string `json:"report"`
	}
	if err := c.postJSON(ctx, "/v1/scan-report", req, &out); err != nil {
		return "", err
	}
	return out.Report, nil
}

func (c *Client) ResolveEncounter(ctx context.Context, req EncounterRequest) (EncounterOutcome, error) {
	var out EncounterOutcome
	if err := c.postJSON(ctx, "/v1/encounter", req, &out); err != nil {
		return EncounterOutcome{}, err
	}
	switch out.Result {
	case ResultVictory, ResultDefeat, ResultEscaped, ResultBribed:
	default:
		return EncounterOutcome{}, fmt.Errorf("service returned unknown result %q", out.Result)
	}
	return out, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("content service %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
