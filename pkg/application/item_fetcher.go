package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/projectsched/pkg/domain/board"
	"github.com/felixgeelhaar/projectsched/pkg/domain/schedule"
	"github.com/felixgeelhaar/projectsched/pkg/graphql"
)

// ItemsPageSize is the number of items requested per page.
const ItemsPageSize = 100

const itemsQuery = `
query GetProjectItems($project: ID!, $first: Int!, $statusField: String!, $scheduleField: String!, $endCursor: String) {
	node(id: $project) {
		... on ProjectV2 {
			items(first: $first, after: $endCursor) {
				nodes {
					id
					content {
						__typename
						... on DraftIssue {
							title
						}
						... on Issue {
							title
						}
						... on PullRequest {
							title
						}
					}
					schedule: fieldValueByName(name: $scheduleField) {
						... on ProjectV2ItemFieldDateValue {
							date
						}
					}
					status: fieldValueByName(name: $statusField) {
						... on ProjectV2ItemFieldSingleSelectValue {
							name
						}
					}
				}
				pageInfo {
					hasNextPage
					endCursor
				}
			}
		}
	}
}
`

type itemNode struct {
	ID      string `json:"id"`
	Content *struct {
		Typename string `json:"__typename"`
		Title    string `json:"title"`
	} `json:"content"`
	Schedule *struct {
		Date string `json:"date"`
	} `json:"schedule"`
	Status *struct {
		Name string `json:"name"`
	} `json:"status"`
}

func (n itemNode) toItem() schedule.Item {
	item := schedule.Item{ID: n.ID}
	if n.Content != nil {
		item.Content = schedule.Content{Type: schedule.ContentType(n.Content.Typename), Title: n.Content.Title}
	}
	if n.Schedule != nil {
		item.Schedule = n.Schedule.Date
	}
	if n.Status != nil {
		item.Status = n.Status.Name
	}
	return item
}

// ItemFetcher lists every item on a board.
type ItemFetcher struct {
	client graphql.Querier
	logger *slog.Logger
}

func NewItemFetcher(client graphql.Querier, logger *slog.Logger) *ItemFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemFetcher{client: client, logger: logger}
}

// Fetch returns all items of the board in API order, one page at a time.
func (f *ItemFetcher) Fetch(ctx context.Context, b *board.Board) ([]schedule.Item, error) {
	nodes, err := graphql.PaginateAll[itemNode](ctx, f.client, itemsQuery, map[string]any{
		"project":       b.ID,
		"first":         ItemsPageSize,
		"statusField":   b.StatusField.Name,
		"scheduleField": b.ScheduleField.Name,
	}, graphql.ConnectionAt("node", "items"))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items of %s: %w", b.Reference, err)
	}

	items := make([]schedule.Item, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, n.toItem())
	}

	f.logger.Info("fetched items", "project", b.Reference.String(), "count", len(items))
	for _, item := range items {
		f.logger.Debug("item", "id", item.ID, "title", item.Title(), "status", item.Status, "schedule", item.Schedule)
	}
	return items, nil
}
