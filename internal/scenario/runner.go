package scenario

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/roach88/lootbench/internal/bench"
	"github.com/roach88/lootbench/internal/inventory"
	"github.com/roach88/lootbench/internal/sorting"
)

// store is the surface both representations share inside a run.
type store interface {
	insert(inventory.Record) error
	remove(name string) error
	search(name string) inventory.SearchResult
	list() []inventory.Record
	length() int
	order() string
}

type arrayAdapter struct{ s *inventory.ArrayStore }

func (a arrayAdapter) insert(r inventory.Record) error { return a.s.Insert(r) }
func (a arrayAdapter) remove(name string) error {
	_, err := a.s.RemoveByName(name)
	return err
}
func (a arrayAdapter) search(name string) inventory.SearchResult { return a.s.LinearSearch(name) }
func (a arrayAdapter) list() []inventory.Record                  { return a.s.List() }
func (a arrayAdapter) length() int                               { return a.s.Len() }
func (a arrayAdapter) order() string                             { return a.s.Order().String() }

type listAdapter struct{ s *inventory.LinkedStore }

func (l listAdapter) insert(r inventory.Record) error {
	l.s.InsertFront(r)
	return nil
}
func (l listAdapter) remove(name string) error {
	_, err := l.s.RemoveByName(name)
	return err
}
func (l listAdapter) search(name string) inventory.SearchResult {
	_, res := l.s.LinearSearch(name)
	return res
}
func (l listAdapter) list() []inventory.Record { return l.s.List() }
func (l listAdapter) length() int              { return l.s.Len() }
func (l listAdapter) order() string            { return "" }

// runner executes one scenario.
type runner struct {
	scenario *Scenario
	array    *inventory.ArrayStore // nil for list scenarios
	store    store
	timer    *bench.Timer
	logger   *slog.Logger
}

// Run executes a scenario against a fresh store and returns the result.
//
// Expectation mismatches are reported in Result.Errors; the returned error
// is reserved for scenarios that cannot run at all.
func Run(s *Scenario) (*Result, error) {
	return RunWithLogger(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with step-level debug logging sent to logger.
func RunWithLogger(s *Scenario, logger *slog.Logger) (*Result, error) {
	r := &runner{
		scenario: s,
		logger:   logger,
		timer:    bench.NewTimer(bench.WithLogger(logger)),
	}

	switch s.Store {
	case StoreList:
		list := inventory.NewLinkedStore()
		defer list.Clear()
		r.store = listAdapter{list}
	default:
		capacity := s.Capacity
		if capacity == 0 {
			capacity = DefaultCapacity
		}
		array, err := inventory.NewArrayStore(capacity)
		if err != nil {
			return nil, fmt.Errorf("create store: %w", err)
		}
		r.array = array
		r.store = arrayAdapter{array}
	}

	result := NewResult()
	for i, step := range s.Steps {
		event, err := r.execute(i, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
		r.logger.Debug("step executed", "scenario", s.Name, "step", i, "op", step.Op, "outcome", event.Outcome)
		result.Trace = append(result.Trace, event)
		if step.Expect != nil {
			for _, msg := range check(event, step.Expect) {
				result.AddError(fmt.Sprintf("step %d (%s): %s", i, describe(step), msg))
			}
		}
	}
	return result, nil
}

func (r *runner) execute(i int, step Step) (TraceEvent, error) {
	event := TraceEvent{Step: i, Op: step.Op, Outcome: OutcomeOK}

	switch step.Op {
	case OpInsert:
		event.Target = step.Record.Name
		rec, err := inventory.NewRecord(step.Record.Name, step.Record.Category, step.Record.Priority)
		if err == nil {
			event.Target = rec.Name
			err = r.store.insert(rec)
		}
		if err := outcome(&event, err); err != nil {
			return event, err
		}

	case OpRemove:
		event.Target = step.Name
		if err := outcome(&event, r.store.remove(step.Name)); err != nil {
			return event, err
		}

	case OpList:
		event.Records = r.store.list()

	case OpSearch:
		event.Target = step.Name
		res := r.store.search(step.Name)
		setSearch(&event, res, r.array != nil)

	case OpBSearch:
		key, err := buildKey(step.Field, step.Key)
		if err != nil {
			return event, err
		}
		event.Target = key.String()
		res, err := r.array.BinarySearch(key)
		if err := outcome(&event, err); err != nil {
			return event, err
		}
		if event.Outcome == OutcomeOK {
			setSearch(&event, res, true)
		} else {
			event.Comparisons = ptr(res.Comparisons)
		}

	case OpSort:
		alg, err := sorting.ParseAlgorithm(step.Algorithm)
		if err != nil {
			return event, err
		}
		event.Target = alg.String()
		m := r.timer.Sort(alg, r.array)
		event.Comparisons = ptr(m.Comparisons)
		event.Records = r.array.List()

	default:
		return event, fmt.Errorf("unknown op %q", step.Op)
	}

	event.Length = r.store.length()
	event.Order = r.store.order()
	return event, nil
}

// outcome records an inventory error code on the event. Errors that are not
// inventory errors abort the run.
func outcome(event *TraceEvent, err error) error {
	if err == nil {
		return nil
	}
	code := inventory.CodeOf(err)
	if code == "" {
		return err
	}
	event.Outcome = string(code)
	return nil
}

func setSearch(event *TraceEvent, res inventory.SearchResult, indexed bool) {
	event.Comparisons = ptr(res.Comparisons)
	if !res.Found {
		event.Outcome = string(inventory.ErrCodeNotFound)
	}
	if indexed {
		event.Index = ptr(res.Index)
	}
}

func buildKey(fieldName string, raw any) (inventory.Key, error) {
	field, err := inventory.ParseField(fieldName)
	if err != nil {
		return inventory.Key{}, err
	}

	switch field {
	case inventory.FieldPriority:
		switch v := raw.(type) {
		case int:
			return inventory.PriorityKey(v), nil
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return inventory.Key{}, fmt.Errorf("priority key must be an integer: %w", err)
			}
			return inventory.PriorityKey(n), nil
		}
	case inventory.FieldCategory:
		if v, ok := raw.(string); ok {
			return inventory.CategoryKey(v), nil
		}
	default:
		if v, ok := raw.(string); ok {
			return inventory.NameKey(v), nil
		}
	}
	return inventory.Key{}, fmt.Errorf("key %v (%T) does not fit field %s", raw, raw, field)
}

// check compares an event with its expectation and returns one message per
// mismatch.
func check(event TraceEvent, want *Expect) []string {
	var msgs []string
	if want.Outcome != "" && want.Outcome != event.Outcome {
		msgs = append(msgs, fmt.Sprintf("outcome = %s, want %s", event.Outcome, want.Outcome))
	}
	if want.Index != nil && (event.Index == nil || *event.Index != *want.Index) {
		msgs = append(msgs, fmt.Sprintf("index = %s, want %d", fmtPtr(event.Index), *want.Index))
	}
	if want.Comparisons != nil && (event.Comparisons == nil || *event.Comparisons != *want.Comparisons) {
		msgs = append(msgs, fmt.Sprintf("comparisons = %s, want %d", fmtPtr(event.Comparisons), *want.Comparisons))
	}
	if want.Length != nil && event.Length != *want.Length {
		msgs = append(msgs, fmt.Sprintf("length = %d, want %d", event.Length, *want.Length))
	}
	if want.Order != "" && want.Order != event.Order {
		msgs = append(msgs, fmt.Sprintf("order = %s, want %s", event.Order, want.Order))
	}
	if want.Names != nil {
		got := make([]string, len(event.Records))
		for i, rec := range event.Records {
			got[i] = rec.Name
		}
		if !slices.Equal(got, want.Names) {
			msgs = append(msgs, fmt.Sprintf("names = %v, want %v", got, want.Names))
		}
	}
	return msgs
}

func describe(step Step) string {
	switch {
	case step.Record != nil:
		return fmt.Sprintf("%s %q", step.Op, step.Record.Name)
	case step.Name != "":
		return fmt.Sprintf("%s %q", step.Op, step.Name)
	case step.Algorithm != "":
		return fmt.Sprintf("%s %s", step.Op, step.Algorithm)
	case step.Field != "":
		return fmt.Sprintf("%s %s=%v", step.Op, step.Field, step.Key)
	default:
		return step.Op
	}
}

func ptr(n int) *int { return &n }

func fmtPtr(p *int) string {
	if p == nil {
		return "<none>"
	}
	return strconv.Itoa(*p)
}
