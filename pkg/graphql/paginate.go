package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PageInfo is the pagination metadata of a GraphQL connection.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// Page is one page of a GraphQL connection.
type Page struct {
	Nodes    []json.RawMessage `json:"nodes"`
	PageInfo PageInfo          `json:"pageInfo"`
}

// PageExtractor locates the connection inside a response's data.
type PageExtractor func(data json.RawMessage) (*Page, error)

// Paginate runs query repeatedly, passing the previous page's end cursor as
// $endCursor, and returns the nodes of every page in request order. The query
// must declare $endCursor and request pageInfo; both are checked before the
// first request is made.
func Paginate(ctx context.Context, q Querier, query string, vars map[string]any, extract PageExtractor) ([]json.RawMessage, error) {
	if !strings.Contains(query, "$endCursor") {
		return nil, ErrMissingCursor
	}
	if !strings.Contains(query, "pageInfo") {
		return nil, ErrMissingPageInfo
	}

	nodes := []json.RawMessage{}
	var cursor any
	for {
		pageVars := make(map[string]any, len(vars)+1)
		for k, v := range vars {
			pageVars[k] = v
		}
		pageVars["endCursor"] = cursor

		data, err := q.Query(ctx, query, pageVars)
		if err != nil {
			return nil, err
		}
		page, err := extract(data)
		if err != nil {
			return nil, fmt.Errorf("graphql: extract page: %w", err)
		}
		if page == nil {
			return nil, errors.New("graphql: extract page: no connection in response")
		}
		nodes = append(nodes, page.Nodes...)

		if !page.PageInfo.HasNextPage {
			return nodes, nil
		}
		if page.PageInfo.EndCursor == "" {
			return nil, errors.New("graphql: page reports more results but no end cursor")
		}
		cursor = page.PageInfo.EndCursor
	}
}

// PaginateAll is Paginate followed by decoding every node into T.
func PaginateAll[T any](ctx context.Context, q Querier, query string, vars map[string]any, extract PageExtractor) ([]T, error) {
	raw, err := Paginate(ctx, q, query, vars, extract)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for i, node := range raw {
		var v T
		if err := json.Unmarshal(node, &v); err != nil {
			return nil, fmt.Errorf("graphql: decode node %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ConnectionAt returns a PageExtractor that follows the given object keys
// from the root of the data to the connection, e.g. ConnectionAt("node", "items").
func ConnectionAt(path ...string) PageExtractor {
	return func(data json.RawMessage) (*Page, error) {
		current := data
		for _, key := range path {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(current, &obj); err != nil {
				return nil, fmt.Errorf("decode %q: %w", key, err)
			}
			next, ok := obj[key]
			if !ok || string(next) == "null" {
				return nil, fmt.Errorf("missing %q", strings.Join(path, "."))
			}
			current = next
		}
		var page Page
		if err := json.Unmarshal(current, &page); err != nil {
			return nil, fmt.Errorf("decode connection: %w", err)
		}
		return &page, nil
	}
}
