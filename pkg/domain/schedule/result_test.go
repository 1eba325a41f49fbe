package schedule

import (
	"errors"
	"testing"
)

func TestRunResult_Err(t *testing.T) {
	ok := NewRunResult(2, []Item{{ID: "a"}}, nil)
	if !ok.Succeeded || ok.Err() != nil {
		t.Fatalf("expected success, got %+v", ok)
	}

	failed := NewRunResult(2, nil, []string{"first", "second"})
	err := failed.Err()
	if failed.Succeeded || err == nil {
		t.Fatal("expected failure")
	}
	if !errors.Is(err, ErrItemsFailed) {
		t.Fatalf("got %v, want ErrItemsFailed", err)
	}
	want := "there were errors while descheduling:\n - first\n - second"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestRunResult_NilErr(t *testing.T) {
	var r *RunResult
	if r.Err() != nil {
		t.Fatal("nil result should have no error")
	}
}
