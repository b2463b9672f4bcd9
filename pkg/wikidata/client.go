// Package wikidata implements a client for the Wikidata MediaWiki action
// API: label search, outgoing entity-valued statements, and label lookup.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Wikidata action API endpoint.
	DefaultBaseURL = "https://www.wikidata.org/w/api.php"

	defaultUserAgent = "relate/1.0 (entity relationship extractor)"

	searchLimit    = 10
	labelBatchSize = 50
)

// Client talks to a Wikidata-compatible action API endpoint. All methods
// honor the context and the configured request timeout.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClientParams contains configuration for creating a Client.
type NewClientParams struct {
	BaseURL   string        // empty → DefaultBaseURL
	UserAgent string        // empty → a default identifying string
	Timeout   time.Duration // per-request timeout, 0 → 10s
}

// NewClient creates a Wikidata API client.
func NewClient(params NewClientParams) *Client {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := params.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("wikidata returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// SearchEntities searches entities by label or alias and returns up to 10
// candidates in relevance order.
func (c *Client) SearchEntities(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", "en")
	params.Set("uselang", "en")
	params.Set("type", "item")
	params.Set("limit", fmt.Sprintf("%d", searchLimit))

	var res searchResponse
	if err := c.get(ctx, params, &res); err != nil {
		return nil, fmt.Errorf("entity search failed for %q: %w", query, err)
	}
	if res.Error != nil {
		return nil, fmt.Errorf("entity search failed for %q: %s (%s)", query, res.Error.Info, res.Error.Code)
	}

	return res.Search, nil
}

// GetStatements returns the outgoing entity-valued statements of qid as a
// map from property ID to the target entity IDs. Statements whose value is
// not another entity (strings, quantities, dates) are skipped, as are
// deprecated statements.
func (c *Client) GetStatements(ctx context.Context, qid string) (map[string][]string, error) {
	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", qid)
	params.Set("props", "claims")

	var res entitiesResponse
	if err := c.get(ctx, params, &res); err != nil {
		return nil, fmt.Errorf("statement fetch failed for %s: %w", qid, err)
	}
	if res.Error != nil {
		return nil, fmt.Errorf("statement fetch failed for %s: %s (%s)", qid, res.Error.Info, res.Error.Code)
	}

	ent, ok := res.Entities[qid]
	if !ok || ent.Missing != nil {
		return nil, fmt.Errorf("entity %s not found", qid)
	}

	statements := make(map[string][]string)
	for pid, claims := range ent.Claims {
		for _, cl := range claims {
			if cl.Rank == "deprecated" {
				continue
			}
			if cl.MainSnak.SnakType != "value" || cl.MainSnak.DataValue == nil {
				continue
			}
			dv := cl.MainSnak.DataValue
			if dv.Type != "wikibase-entityid" || dv.Value.ID == "" {
				continue
			}
			statements[pid] = append(statements[pid], dv.Value.ID)
		}
	}

	return statements, nil
}

// GetLabels returns the English labels for the given entity or property IDs.
// IDs without an English label are absent from the result. Requests are
// batched at the API limit of 50 IDs.
func (c *Client) GetLabels(ctx context.Context, ids []string) (map[string]string, error) {
	labels := make(map[string]string, len(ids))

	for start := 0; start < len(ids); start += labelBatchSize {
		end := start + labelBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		params := url.Values{}
		params.Set("action", "wbgetentities")
		params.Set("ids", strings.Join(ids[start:end], "|"))
		params.Set("props", "labels")
		params.Set("languages", "en")

		var res entitiesResponse
		if err := c.get(ctx, params, &res); err != nil {
			return nil, fmt.Errorf("label fetch failed: %w", err)
		}
		if res.Error != nil {
			return nil, fmt.Errorf("label fetch failed: %s (%s)", res.Error.Info, res.Error.Code)
		}

		for id, ent := range res.Entities {
			if ent.Missing != nil {
				continue
			}
			if label, ok := ent.Labels["en"]; ok {
				labels[id] = label.Value
			}
		}
	}

	return labels, nil
}
