package schedule

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Run stages. These must remain untyped string constants for statekit.StateID compatibility.
const (
	StagePending      = "pending"
	StageResolving    = "resolving"
	StageFetching     = "fetching"
	StageClassifying  = "classifying"
	StageDescheduling = "descheduling"
	StageDone         = "done"
	StageFailed       = "failed"
)

// Run events.
const (
	EventResolve    = "resolve"
	EventFetch      = "fetch"
	EventClassify   = "classify"
	EventDeschedule = "deschedule"
	EventFinish     = "finish"
	EventFail       = "fail"
)

// StageError is a fatal run error tagged with the stage it happened in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("run failed while %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// RunContext carries run data.
type RunContext struct {
	Board string
}

// RunStateMachine tracks which stage of the pipeline a run is in.
// Stages only move forward; any active stage may fail.
type RunStateMachine struct {
	interpreter *statekit.Interpreter[RunContext]
}

func NewRunStateMachine(board string) (*RunStateMachine, error) {
	builder := statekit.NewMachine[RunContext]("deschedule-run").
		WithInitial(statekit.StateID(StagePending)).
		WithContext(RunContext{Board: board})

	builder.State(StagePending).
		On(EventResolve).Target(StageResolving).
		On(EventFail).Target(StageFailed).
		Done()

	builder.State(StageResolving).
		On(EventFetch).Target(StageFetching).
		On(EventFail).Target(StageFailed).
		Done()

	builder.State(StageFetching).
		On(EventClassify).Target(StageClassifying).
		On(EventFail).Target(StageFailed).
		Done()

	// A dry run finishes straight after classification.
	builder.State(StageClassifying).
		On(EventDeschedule).Target(StageDescheduling).
		On(EventFinish).Target(StageDone).
		On(EventFail).Target(StageFailed).
		Done()

	builder.State(StageDescheduling).
		On(EventFinish).Target(StageDone).
		On(EventFail).Target(StageFailed).
		Done()

	builder.State(StageDone).Final().Done()
	builder.State(StageFailed).Final().Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build run state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &RunStateMachine{interpreter: interpreter}, nil
}

// Transition moves the run to the next stage.
func (sm *RunStateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if sm.Current() != before {
		return nil
	}
	return fmt.Errorf("the event '%s' is not allowed while the run is in the '%s' stage", event, before)
}

func (sm *RunStateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// Fail moves the run to the failed stage and returns err tagged with the
// stage it failed in. A run that already failed keeps its original stage.
func (sm *RunStateMachine) Fail(err error) error {
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	stage := sm.Current()
	if sm.interpreter.Done() {
		return &StageError{Stage: stage, Err: err}
	}
	if terr := sm.Transition(EventFail); terr != nil {
		return &StageError{Stage: stage, Err: errors.Join(err, terr)}
	}
	return &StageError{Stage: stage, Err: err}
}
