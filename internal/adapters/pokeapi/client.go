package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/pokedex/pkg/logger"
	"github.com/okian/pokedex/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL = "https://pokeapi.co/api/v2"
	defaultTimeout = 5 * time.Second
)

// Client fetches and decodes upstream PokeAPI resources. It applies a hard
// per-call timeout and retries a non-success response exactly once against
// the same URL with a trailing slash stripped, a quirk of the upstream's
// redirect handling.
type Client struct {
	http    *http.Client
	baseURL string
	memo    *Memo
	log     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the upstream root URL (no trailing slash).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithMemo attaches a memo cache consulted before any network call.
func WithMemo(m *Memo) Option {
	return func(c *Client) {
		c.memo = m
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New constructs a Client with default configuration.
func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: defaultBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		c.log = logger.Get().Named("pokeapi")
	}
	return c
}

// Get fetches url and returns the raw JSON body. All failures collapse to a
// typed error; nothing panics across the ingestion pipeline.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if c.memo != nil {
		if body, ok := c.memo.Get(url); ok {
			return body, nil
		}
	}

	body, status, err := c.do(ctx, url)
	if err != nil {
		metrics.RecordUpstreamRequest("error")
		c.log.Warn(ctx, "upstream fetch failed", logger.String("url", url), logger.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		trimmed := strings.TrimSuffix(url, "/")
		if trimmed == url {
			metrics.RecordUpstreamRequest("error")
			c.log.Warn(ctx, "upstream returned error status", logger.String("url", url), logger.Int("status", status))
			return nil, fmt.Errorf("%w: %s: HTTP %d", ErrStatus, url, status)
		}

		c.log.Warn(ctx, "retrying without trailing slash", logger.String("url", url), logger.Int("status", status))
		metrics.RecordUpstreamRequest("retry")
		body, status, err = c.do(ctx, trimmed)
		if err != nil {
			metrics.RecordUpstreamRequest("error")
			c.log.Warn(ctx, "upstream retry failed", logger.String("url", trimmed), logger.Error(err))
			return nil, fmt.Errorf("%w: %s: %w", ErrFetch, trimmed, err)
		}
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			metrics.RecordUpstreamRequest("error")
			c.log.Warn(ctx, "upstream error status after retry", logger.String("url", trimmed), logger.Int("status", status))
			return nil, fmt.Errorf("%w: %s: HTTP %d", ErrStatus, trimmed, status)
		}
	}

	if !json.Valid(body) {
		metrics.RecordUpstreamRequest("error")
		c.log.Warn(ctx, "upstream body is not JSON", logger.String("url", url))
		return nil, fmt.Errorf("%w: %s", ErrDecode, url)
	}

	metrics.RecordUpstreamRequest("success")
	if c.memo != nil {
		c.memo.Set(url, body)
	}
	return body, nil
}

// do performs one HTTP round trip and reads the full body.
func (c *Client) do(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	metrics.RecordUpstreamLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, 0, fmt.Errorf("round trip: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}
	return body, res.StatusCode, nil
}

// validator is satisfied by every upstream DTO.
type validator interface {
	Validate() error
}

// decode unmarshals and structurally validates one upstream payload.
func decode(body []byte, url string, v validator) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPayload, url, err)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%s: %w", url, err)
	}
	return nil
}

// GenerationList fetches the generation index resource.
func (c *Client) GenerationList(ctx context.Context) (*GenerationList, error) {
	url := c.baseURL + "/generation/"
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	var v GenerationList
	if err := decode(body, url, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Generation fetches one generation's detail by its index.
func (c *Client) Generation(ctx context.Context, id int) (*Generation, error) {
	url := fmt.Sprintf("%s/generation/%d", c.baseURL, id)
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	var v Generation
	if err := decode(body, url, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Species fetches a species detail resource by URL.
func (c *Client) Species(ctx context.Context, url string) (*Species, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	var v Species
	if err := decode(body, url, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Pokemon fetches a pokemon detail resource by URL.
func (c *Client) Pokemon(ctx context.Context, url string) (*PokemonDetail, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	var v PokemonDetail
	if err := decode(body, url, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// EvolutionChain fetches an evolution chain resource by URL.
func (c *Client) EvolutionChain(ctx context.Context, url string) (*EvolutionChain, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	var v EvolutionChain
	if err := decode(body, url, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
