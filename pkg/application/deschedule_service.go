package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/projectsched/pkg/domain/board"
	"github.com/felixgeelhaar/projectsched/pkg/domain/schedule"
	"github.com/felixgeelhaar/projectsched/pkg/graphql"
	"github.com/google/uuid"
)

const descheduleMutation = `
mutation DescheduleItem($input: UpdateProjectV2ItemFieldValueInput!) {
	updateProjectV2ItemFieldValue(input: $input) {
		projectV2Item {
			id
		}
	}
}
`

// DescheduleParams names the board and the fields and states a run works with.
type DescheduleParams struct {
	ProjectURL        string
	StatusFieldName   string
	ScheduleFieldName string
	ScheduledState    string
	TodoState         string
}

// CheckReport is the outcome of a dry run.
type CheckReport struct {
	Board      *board.Board
	TodoOption board.Option
	Items      int
	Report     schedule.Report
	// Stage is the stage the dry run ended in.
	Stage string
}

// DescheduleService moves overdue scheduled items back to the todo state.
type DescheduleService struct {
	client     graphql.Querier
	resolver   *BoardResolver
	fetcher    *ItemFetcher
	logger     *slog.Logger
	now        func() time.Time
	mutationID func() string
}

// DescheduleOption configures a DescheduleService.
type DescheduleOption func(*DescheduleService)

// WithClock replaces the clock used to decide whether a date has passed.
func WithClock(now func() time.Time) DescheduleOption {
	return func(s *DescheduleService) { s.now = now }
}

// WithMutationID replaces the generator of clientMutationId values.
func WithMutationID(gen func() string) DescheduleOption {
	return func(s *DescheduleService) { s.mutationID = gen }
}

func NewDescheduleService(client graphql.Querier, logger *slog.Logger, opts ...DescheduleOption) *DescheduleService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &DescheduleService{
		client:     client,
		resolver:   NewBoardResolver(client, logger),
		fetcher:    NewItemFetcher(client, logger),
		logger:     logger,
		now:        time.Now,
		mutationID: uuid.NewString,
	}
	for _, fn := range opts {
		fn(s)
	}
	return s
}

// Run resolves the board, classifies its items and deschedules every overdue
// one. Configuration problems abort the run and are returned as a
// *schedule.StageError. Item-level problems never abort it; they are
// collected in the result. A cancelled context stops the run before the next
// mutation; the partial result is returned with the error.
func (s *DescheduleService) Run(ctx context.Context, p DescheduleParams) (*schedule.RunResult, error) {
	sm, err := schedule.NewRunStateMachine(p.ProjectURL)
	if err != nil {
		return nil, err
	}

	b, todo, report, _, err := s.prepare(ctx, sm, p)
	if err != nil {
		return nil, err
	}

	if err := s.advance(sm, schedule.EventDeschedule); err != nil {
		return nil, sm.Fail(err)
	}

	errs := append([]string{}, report.Errors...)
	descheduled := []schedule.Item{}
	for i, item := range report.ToDeschedule {
		if err := ctx.Err(); err != nil {
			failed := sm.Fail(err)
			s.logger.Warn("run interrupted", "descheduled", len(descheduled), "remaining", len(report.ToDeschedule)-i, "error", err)
			result := schedule.NewRunResult(len(report.Scheduled), descheduled, errs)
			result.Stage = sm.Current()
			return result, failed
		}
		s.logger.Info("descheduling item", "id", item.ID, "title", item.Title(), "schedule", item.Schedule)
		if err := s.Deschedule(ctx, b, todo, item); err != nil {
			s.logger.Warn("failed to deschedule item", "id", item.ID, "error", err)
			errs = append(errs, err.Error())
			continue
		}
		descheduled = append(descheduled, item)
	}

	if err := s.advance(sm, schedule.EventFinish); err != nil {
		return nil, sm.Fail(err)
	}

	result := schedule.NewRunResult(len(report.Scheduled), descheduled, errs)
	result.Stage = sm.Current()
	s.logger.Info("all done", "descheduled", len(descheduled), "errors", len(errs))
	return result, nil
}

// Check runs everything up to classification without changing the board.
func (s *DescheduleService) Check(ctx context.Context, p DescheduleParams) (*CheckReport, error) {
	sm, err := schedule.NewRunStateMachine(p.ProjectURL)
	if err != nil {
		return nil, err
	}

	b, todo, report, total, err := s.prepare(ctx, sm, p)
	if err != nil {
		return nil, err
	}
	for _, item := range report.ToDeschedule {
		s.logger.Info("would deschedule item", "id", item.ID, "title", item.Title(), "schedule", item.Schedule)
	}

	if err := s.advance(sm, schedule.EventFinish); err != nil {
		return nil, sm.Fail(err)
	}
	return &CheckReport{Board: b, TodoOption: todo, Items: total, Report: report, Stage: sm.Current()}, nil
}

// Deschedule sets the status of one item to the given option. Items already
// in that state get the same mutation.
func (s *DescheduleService) Deschedule(ctx context.Context, b *board.Board, todo board.Option, item schedule.Item) error {
	_, err := s.client.Mutation(ctx, descheduleMutation, map[string]any{
		"input": map[string]any{
			"clientMutationId": s.mutationID(),
			"projectId":        b.ID,
			"itemId":           item.ID,
			"fieldId":          b.StatusField.ID,
			"value": map[string]any{
				"singleSelectOptionId": todo.ID,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to deschedule item %s (%s): %w", item.Title(), item.ID, err)
	}
	return nil
}

// prepare resolves the board, looks up the todo option before any item is
// fetched, then fetches and classifies the items.
func (s *DescheduleService) prepare(ctx context.Context, sm *schedule.RunStateMachine, p DescheduleParams) (*board.Board, board.Option, schedule.Report, int, error) {
	s.logger.Info("running descheduler",
		"project", p.ProjectURL,
		"status_field", p.StatusFieldName,
		"schedule_field", p.ScheduleFieldName,
		"scheduled_state", p.ScheduledState,
		"todo_state", p.TodoState,
	)

	fail := func(err error) (*board.Board, board.Option, schedule.Report, int, error) {
		err = sm.Fail(err)
		s.logger.Error("run failed", "error", err)
		return nil, board.Option{}, schedule.Report{}, 0, err
	}

	if err := s.advance(sm, schedule.EventResolve); err != nil {
		return fail(err)
	}
	b, err := s.resolver.Resolve(ctx, p.ProjectURL, p.StatusFieldName, p.ScheduleFieldName)
	if err != nil {
		return fail(err)
	}
	todo, err := b.StatusField.Option(p.TodoState)
	if err != nil {
		return fail(err)
	}

	if err := s.advance(sm, schedule.EventFetch); err != nil {
		return fail(err)
	}
	items, err := s.fetcher.Fetch(ctx, b)
	if err != nil {
		return fail(err)
	}

	if err := s.advance(sm, schedule.EventClassify); err != nil {
		return fail(err)
	}
	report := schedule.Classify(items, p.ScheduledState, s.now())
	for _, a := range report.Scheduled {
		s.logger.Info("scheduled item", "id", a.Item.ID, "title", a.Item.Title(), "schedule", a.Item.Schedule, "verdict", a.Verdict)
	}
	s.logger.Info("classified items",
		"scheduled", len(report.Scheduled),
		"overdue", len(report.ToDeschedule),
		"problems", len(report.Errors),
	)

	return b, todo, report, len(items), nil
}

func (s *DescheduleService) advance(sm *schedule.RunStateMachine, event string) error {
	if err := sm.Transition(event); err != nil {
		return err
	}
	s.logger.Debug("run stage", "stage", sm.Current())
	return nil
}
