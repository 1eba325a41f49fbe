// Package graphql provides a small client for the GitHub GraphQL API.
//
// The client wraps go-github's request plumbing with one method per operation
// kind, oauth2 token authentication and a per-call deadline via fortify.
// Paginate walks cursor-based connections until the server reports no further
// pages.
//
// Usage:
//
//	c, _ := graphql.NewClient(token)
//	data, _ := c.Query(ctx, `query { viewer { login } }`, nil)
//	fmt.Println(string(data))
package graphql
