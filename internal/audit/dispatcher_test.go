package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *memorySink) Write(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("db down")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcherDeliversBeforeClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, nil)

	d.Dispatch(Event{Action: "booking_requested", EntityID: "b1"})
	d.Dispatch(Event{Action: "booking_cancelled", EntityID: "b1"})
	d.Close()

	assert.Len(t, sink.events, 2)
	assert.Equal(t, "booking_requested", sink.events[0].Action)
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	d := NewDispatcher(&memorySink{fail: true}, nil)
	d.Dispatch(Event{Action: "x"})
	d.Close()
	d.Close()
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "x"})
	d.Close()
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, nil)
	d.Dispatch(Event{Action: "before"})
	d.Close()

	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "after"}) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(Event{Action: "late"})
		}()
	}
	wg.Wait()

	assert.Len(t, sink.events, 1)
	assert.Equal(t, "before", sink.events[0].Action)
}

func TestCloseRacesWithDispatch(t *testing.T) {
	d := NewDispatcher(&memorySink{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Dispatch(Event{Action: "x"})
			}
		}()
	}
	d.Close()
	wg.Wait()
}
