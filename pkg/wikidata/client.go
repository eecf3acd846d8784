package wikidata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/OFFIS-RIT/wikigraph/internal/util"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"
)

const (
	DefaultBaseURL   = "https://www.wikidata.org/w"
	DefaultLanguage  = "en"
	DefaultUserAgent = "wikigraph/1.0 (https://github.com/OFFIS-RIT/wikigraph)"
	DefaultTimeout   = 30 * time.Second
)

// EntityFetcher retrieves entity records by id.
type EntityFetcher interface {
	FetchEntity(ctx context.Context, id string) (*Entity, error)
}

// Client fetches entities from the wbgetentities endpoint of a Wikibase API.
//
// A Client should be created using NewClient.
type Client struct {
	baseURL    string
	language   string
	userAgent  string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
}

// NewClientParams configures a Client. Zero values select the defaults.
//
// MaxRetries is the total number of attempts per entity; the default of 1
// disables retries. Only transport errors, 429 and 5xx responses are retried.
type NewClientParams struct {
	BaseURL    string
	Language   string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	HTTPClient *http.Client
}

// NewClient creates a Client from params.
func NewClient(params NewClientParams) *Client {
	c := &Client{
		baseURL:    params.BaseURL,
		language:   params.Language,
		userAgent:  params.UserAgent,
		maxRetries: params.MaxRetries,
		retryDelay: params.RetryDelay,
		httpClient: params.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.language == "" {
		c.language = DefaultLanguage
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.maxRetries <= 0 {
		c.maxRetries = 1
	}
	if c.httpClient == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type getEntitiesResponse struct {
	Entities map[string]*Entity `json:"entities"`
	Error    *apiError          `json:"error"`
}

// FetchEntity requests a single entity. A non-200 status is returned as a
// *FetchError; an unknown id yields an error matching ErrEntityNotFound.
func (c *Client) FetchEntity(ctx context.Context, id string) (*Entity, error) {
	return util.RetryIfWithContext(ctx, c.maxRetries, c.retryDelay, isTemporary, func(ctx context.Context) (*Entity, error) {
		return c.fetchOnce(ctx, id)
	})
}

func isTemporary(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Temporary()
	}
	return false
}

func (c *Client) endpoint(id string) string {
	q := url.Values{}
	q.Set("action", "wbgetentities")
	q.Set("ids", id)
	q.Set("languages", c.language)
	q.Set("format", "json")
	return c.baseURL + "/api.php?" + q.Encode()
}

func (c *Client) fetchOnce(ctx context.Context, id string) (*Entity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &FetchError{ID: id, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		logger.Warn("[Wikidata] There was an error calling endpoint", "id", id, "status", resp.StatusCode)
		return nil, &FetchError{ID: id, StatusCode: resp.StatusCode}
	}

	var content getEntitiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return nil, &FetchError{ID: id, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if content.Error != nil {
		if content.Error.Code == "no-such-entity" {
			return nil, &FetchError{ID: id, StatusCode: resp.StatusCode, Err: ErrEntityNotFound}
		}
		return nil, &FetchError{ID: id, StatusCode: resp.StatusCode, Err: fmt.Errorf("api error %s: %s", content.Error.Code, content.Error.Info)}
	}

	entity := lookupEntity(content.Entities, id)
	if entity == nil || entity.Missing {
		return nil, &FetchError{ID: id, StatusCode: resp.StatusCode, Err: ErrEntityNotFound}
	}
	return entity, nil
}

// lookupEntity returns the record stored under id. Redirected ids are keyed
// by the requested id but a single entry is accepted under any key.
func lookupEntity(entities map[string]*Entity, id string) *Entity {
	if e, ok := entities[id]; ok {
		return e
	}
	if len(entities) == 1 {
		for _, e := range entities {
			return e
		}
	}
	return nil
}
