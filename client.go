package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// apiResponse mirrors Response with the payload left raw for the caller to decode.
type apiResponse struct {
	Success bool            `json:"success"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// APIClient reads entries from another moodtick server.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetEntries fetches all entries, or one month's when month is set (2006-01).
func (c *APIClient) GetEntries(ctx context.Context, month string) ([]APIEntry, error) {
	endpoint := fmt.Sprintf("%s/api/entries", c.baseURL)
	if month != "" {
		endpoint += "?" + url.Values{"month": {month}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer res.Body.Close()

	var apiRes apiResponse
	if err := json.NewDecoder(res.Body).Decode(&apiRes); err != nil {
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
		}
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	if res.StatusCode != http.StatusOK || !apiRes.Success {
		if apiRes.Message == "" {
			return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
		}
		return nil, fmt.Errorf("%s", apiRes.Message)
	}

	var entriesResp EntriesResponse
	if err := json.Unmarshal(apiRes.Data, &entriesResp); err != nil {
		return nil, fmt.Errorf("error decoding entries data: %w", err)
	}

	return entriesResp.Entries, nil
}
