package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Verdict is the outcome of classifying a scheduled item.
type Verdict string

const (
	VerdictDeschedule Verdict = "deschedule"
	VerdictKeep       Verdict = "keep"
	VerdictError      Verdict = "error"
)

// dateLayouts are tried in order. The API returns plain dates for DATE fields.
var dateLayouts = []string{time.DateOnly, time.RFC3339}

// Assessment is the classification of one scheduled item.
type Assessment struct {
	Item    Item
	Verdict Verdict
	Date    time.Time // zero unless the schedule value parsed
	Problem string    // set when Verdict is VerdictError
}

// Report is the result of Classify.
type Report struct {
	// Scheduled holds one assessment per item in the scheduled state, in input order.
	Scheduled []Assessment
	// ToDeschedule holds the overdue items, in input order.
	ToDeschedule []Item
	// Errors holds one message per item whose schedule value is missing or invalid.
	Errors []string
}

// ParseDate parses a schedule field value.
func ParseDate(raw string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// IsScheduled reports whether the item's status matches the scheduled state, ignoring case.
func IsScheduled(item Item, scheduledState string) bool {
	return item.Status != "" && strings.EqualFold(item.Status, scheduledState)
}

// Assess classifies one item that is known to be in the scheduled state.
// Dates strictly before now are overdue.
func Assess(item Item, now time.Time) Assessment {
	if item.Schedule == "" {
		return Assessment{
			Item:    item,
			Verdict: VerdictError,
			Problem: fmt.Sprintf("Item %s does not have a schedule field", item.Title()),
		}
	}

	date, err := ParseDate(item.Schedule)
	if err != nil {
		return Assessment{
			Item:    item,
			Verdict: VerdictError,
			Problem: fmt.Sprintf("Item %s has invalid schedule field value: %s", item.Title(), item.Schedule),
		}
	}

	if date.Before(now) {
		return Assessment{Item: item, Verdict: VerdictDeschedule, Date: date}
	}
	return Assessment{Item: item, Verdict: VerdictKeep, Date: date}
}

// Classify selects the items in the scheduled state and sorts them into
// overdue items and problems. Items in any other state are ignored without
// looking at their schedule value.
func Classify(items []Item, scheduledState string, now time.Time) Report {
	report := Report{
		Scheduled:    []Assessment{},
		ToDeschedule: []Item{},
		Errors:       []string{},
	}
	for _, item := range items {
		if !IsScheduled(item, scheduledState) {
			continue
		}
		a := Assess(item, now)
		report.Scheduled = append(report.Scheduled, a)
		switch a.Verdict {
		case VerdictDeschedule:
			report.ToDeschedule = append(report.ToDeschedule, item)
		case VerdictError:
			report.Errors = append(report.Errors, a.Problem)
		}
	}
	return report
}
