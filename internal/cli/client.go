// Package cli is the thin HTTP client behind the heggiectl command.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) State(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/state", nil, &out)
	return out, err
}

func (c *Client) NewGame(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/new-game", nil, &out)
	return out, err
}

func (c *Client) Trade(ctx context.Context, item, direction string, quantity int) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/trade", map[string]any{
		"item":      item,
		"direction": direction,
		"quantity":  quantity,
	}, &out)
	return out, err
}

func (c *Client) PlanTravel(ctx context.Context, destination string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/travel/plan", map[string]any{
		"destination": destination,
	}, &out)
	return out, err
}

func (c *Client) Travel(ctx context.Context, destination string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/travel", map[string]any{
		"destination": destination,
	}, &out)
	return out, err
}

func (c *Client) ScanEncounter(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/encounter/scan", nil, &out)
	return out, err
}

func (c *Client) ResolveEncounter(ctx context.Context, action string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/encounter/resolve", map[string]any{
		"action": action,
	}, &out)
	return out, err
}

func (c *Client) VentureAction(ctx context.Context, venture, action string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	path := "/v1/ventures/" + url.PathEscape(venture) + "/" + action
	err := c.jsonRequest(ctx, http.MethodPost, path, body, &out)
	return out, err
}

func (c *Client) GenerateMissions(ctx context.Context, kind string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/missions/"+url.PathEscape(kind)+"/generate", nil, &out)
	return out, err
}

func (c *Client) AcceptMission(ctx context.Context, missionID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/missions/"+url.PathEscape(missionID)+"/accept", nil, &out)
	return out, err
}

func (c *Client) TakeLoan(ctx context.Context, amount int64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/loans", map[string]any{
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) RepayLoan(ctx context.Context, loanID string, amount int64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/loans/"+url.PathEscape(loanID)+"/repay", map[string]any{
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) ExportToken(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.jsonRequest(ctx, http.MethodGet, "/v1/save/token", nil, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) ImportToken(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/save/token", map[string]any{
		"token": token,
	}, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
