package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// fakeGraphQL answers the descheduler's operations from canned JSON.
type fakeGraphQL struct {
	project     string
	projectErr  error
	pages       []string
	failItems   map[string]error
	queries     []string
	queryVars   []map[string]any
	mutations   []map[string]any
	pagesServed int
	onMutation  func()
}

func (f *fakeGraphQL) Query(_ context.Context, query string, vars map[string]any) (json.RawMessage, error) {
	f.queries = append(f.queries, query)
	f.queryVars = append(f.queryVars, vars)
	switch {
	case strings.Contains(query, "GetProjectV2Data"):
		if f.projectErr != nil {
			return nil, f.projectErr
		}
		return json.RawMessage(f.project), nil
	case strings.Contains(query, "GetProjectItems"):
		if f.pagesServed >= len(f.pages) {
			return nil, fmt.Errorf("no page %d", f.pagesServed)
		}
		p := f.pages[f.pagesServed]
		f.pagesServed++
		return json.RawMessage(p), nil
	}
	return nil, fmt.Errorf("unexpected query: %s", query)
}

func (f *fakeGraphQL) Mutation(_ context.Context, _ string, vars map[string]any) (json.RawMessage, error) {
	f.mutations = append(f.mutations, vars)
	if f.onMutation != nil {
		f.onMutation()
	}
	input := vars["input"].(map[string]any)
	if err := f.failItems[input["itemId"].(string)]; err != nil {
		return nil, err
	}
	return json.RawMessage(fmt.Sprintf(`{"updateProjectV2ItemFieldValue":{"projectV2Item":{"id":%q}}}`, input["itemId"])), nil
}

func (f *fakeGraphQL) itemsQueried() bool {
	for _, q := range f.queries {
		if strings.Contains(q, "GetProjectItems") {
			return true
		}
	}
	return false
}

const statusFieldJSON = `{"id":"F_status","name":"Status","dataType":"SINGLE_SELECT","options":[{"id":"O_todo","name":"Todo"},{"id":"O_sched","name":"Scheduled"},{"id":"O_done","name":"Done"}]}`
const scheduleFieldJSON = `{"id":"F_sched","name":"Schedule","dataType":"DATE"}`

func projectJSON(owner, status, sched string) string {
	return fmt.Sprintf(`{%q:{"projectV2":{"id":"PVT_1","statusField":%s,"scheduleField":%s}}}`, owner, status, sched)
}

type testItem struct {
	id, title, status, date string
}

func itemsPage(items []testItem, hasNext bool, cursor string) string {
	nodes := make([]string, 0, len(items))
	for _, it := range items {
		status, sched := "null", "null"
		if it.status != "" {
			status = fmt.Sprintf(`{"name":%q}`, it.status)
		}
		if it.date != "" {
			sched = fmt.Sprintf(`{"date":%q}`, it.date)
		}
		nodes = append(nodes, fmt.Sprintf(`{"id":%q,"content":{"__typename":"Issue","title":%q},"schedule":%s,"status":%s}`, it.id, it.title, sched, status))
	}
	return fmt.Sprintf(`{"node":{"items":{"nodes":[%s],"pageInfo":{"hasNextPage":%t,"endCursor":%q}}}}`, strings.Join(nodes, ","), hasNext, cursor)
}
