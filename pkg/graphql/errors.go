package graphql

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCursor is returned by Paginate when the query does not declare $endCursor.
	ErrMissingCursor = errors.New("graphql: query must declare the $endCursor variable")

	// ErrMissingPageInfo is returned by Paginate when the query does not request pageInfo.
	ErrMissingPageInfo = errors.New("graphql: query must request pageInfo")

	// ErrMissingToken is returned by NewClient when no token is provided.
	ErrMissingToken = errors.New("graphql: token is required")

	// ErrNoData is returned when a response carries neither data nor errors.
	ErrNoData = errors.New("graphql: response has no data")
)

// ErrorEntry is one element of the "errors" array of a GraphQL response.
type ErrorEntry struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// ResponseError is returned when the server answers with a non-empty errors array.
type ResponseError struct {
	Errors []ErrorEntry
}

func (e *ResponseError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, entry := range e.Errors {
		if entry.Type != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", entry.Type, entry.Message))
			continue
		}
		msgs = append(msgs, entry.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}
