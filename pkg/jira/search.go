package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Issue is the subset of tracker metadata the release document needs.
type Issue struct {
	Key     string
	Summary string
	Status  string
}

// searchResponse mirrors the fields we request from /rest/api/2/search.
type searchResponse struct {
	Issues []struct {
		Key    string `json:"key"`
		Fields struct {
			Summary string `json:"summary"`
			Status  struct {
				Name string `json:"name"`
			} `json:"status"`
		} `json:"fields"`
	} `json:"issues"`
}

// SearchIssues resolves the given issue keys to summary and status in a
// single bulk query. Keys the tracker does not recognize are simply absent
// from the returned map.
func (c *Client) SearchIssues(ctx context.Context, keys []string) (map[string]*Issue, error) {
	if len(keys) == 0 {
		return map[string]*Issue{}, nil
	}

	query := url.Values{}
	query.Set("jql", fmt.Sprintf("issueKey IN (%s)", strings.Join(keys, ",")))
	query.Set("fields", "summary,status")
	query.Set("maxResults", strconv.Itoa(len(keys)))
	apiURL := c.baseURL + "/rest/api/2/search?" + query.Encode()

	resp, err := c.doRequest(ctx, http.MethodGet, apiURL)
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}
	defer drainAndCloseBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("search issues: status %d (could not read body: %w)", resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("search issues: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	found := make(map[string]*Issue, len(parsed.Issues))
	for _, item := range parsed.Issues {
		found[item.Key] = &Issue{
			Key:     item.Key,
			Summary: item.Fields.Summary,
			Status:  item.Fields.Status.Name,
		}
	}

	slog.Debug("Bulk search finished", "component", "jira", "requested", len(keys), "found", len(found))
	return found, nil
}
