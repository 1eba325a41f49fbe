package graphql

import "time"

const defaultBaseURL = "https://api.github.com/"

type options struct {
	baseURL string
	timeout time.Duration
}

func defaultOptions() options {
	return options{
		baseURL: defaultBaseURL,
		timeout: 30 * time.Second,
	}
}

// Option configures the GraphQL client.
type Option func(*options)

// WithBaseURL points the client at a different API root, e.g. a GitHub
// Enterprise "https://ghe.example.com/api/". The graphql endpoint is resolved
// relative to it.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}
