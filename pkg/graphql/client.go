package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"
)

const (
	endpoint     = "graphql"
	acceptHeader = "application/vnd.github.v3.raw+json"
)

// Querier issues single GraphQL documents and returns the "data" member of the response.
type Querier interface {
	Query(ctx context.Context, query string, vars map[string]any) (json.RawMessage, error)
	Mutation(ctx context.Context, mutation string, vars map[string]any) (json.RawMessage, error)
}

// Client is a GitHub GraphQL client.
type Client struct {
	gh      *github.Client
	timeout time.Duration
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorEntry    `json:"errors"`
}

// NewClient creates a client authenticated with the given token.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	base, err := parseBaseURL(o.baseURL)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	gh := github.NewClient(httpClient)
	gh.BaseURL = base

	return &Client{gh: gh, timeout: o.timeout}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("graphql: invalid base url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("graphql: invalid base url %q: scheme and host are required", raw)
	}
	return u, nil
}

// Query runs a GraphQL query.
func (c *Client) Query(ctx context.Context, query string, vars map[string]any) (json.RawMessage, error) {
	return c.call(ctx, query, vars)
}

// Mutation runs a GraphQL mutation. It is sent exactly once.
func (c *Client) Mutation(ctx context.Context, mutation string, vars map[string]any) (json.RawMessage, error) {
	return c.call(ctx, mutation, vars)
}

// Paginate runs a paginated query against this client. See the package-level Paginate.
func (c *Client) Paginate(ctx context.Context, query string, vars map[string]any, extract PageExtractor) ([]json.RawMessage, error) {
	return Paginate(ctx, c, query, vars, extract)
}

func (c *Client) call(ctx context.Context, query string, vars map[string]any) (json.RawMessage, error) {
	t := timeout.New[json.RawMessage](timeout.Config{
		DefaultTimeout: c.timeout,
	})
	return t.Execute(ctx, c.timeout, func(ctx context.Context) (json.RawMessage, error) {
		return c.do(ctx, request{Query: query, Variables: vars})
	})
}

func (c *Client) do(ctx context.Context, body request) (json.RawMessage, error) {
	req, err := c.gh.NewRequest(http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("graphql: build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	var resp response
	if _, err := c.gh.Do(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("graphql: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, &ResponseError{Errors: resp.Errors}
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil, ErrNoData
	}
	return resp.Data, nil
}
