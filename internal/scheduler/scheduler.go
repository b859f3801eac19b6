package scheduler

import (
	"fmt"
	"strings"
)

// Scheduler is a simple event scheduler that can be used to schedule events
// to be executed at a specific cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. When an event is scheduled, it is inserted into
// the list in the correct position, and when the scheduler is ticked, every
// event that has become due is executed and removed from the list.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]*Event // only one event of each type can be scheduled at a time
}

func NewScheduler() *Scheduler {
	s := &Scheduler{}

	// the events are allocated once, and reused every time they are scheduled
	for i := EventType(0); i < eventTypes; i++ {
		s.events[i] = &Event{eventType: i}
	}

	return s
}

// Cycle returns the number of T-cycles the scheduler has been ticked.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// RegisterEvent registers a function of the EventType to be called when
// the event is due.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by the given number of T-cycles, executing
// every event that has become due, in order.
func (s *Scheduler) Tick(c uint64) {
	s.cycles += c

	for s.root != nil && s.root.cycle <= s.cycles {
		event := s.root
		s.root = event.next
		event.Reset()

		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}
}

// ScheduleEvent schedules an event to be executed the given number of
// T-cycles from now. An event of the same type that is already scheduled
// is moved.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycle uint64) {
	s.DescheduleEvent(eventType)

	this := s.events[eventType]
	this.cycle = s.cycles + cycle
	this.scheduled = true

	// events due at the same cycle run in the order they were scheduled
	if s.root == nil || this.cycle < s.root.cycle {
		this.next = s.root
		s.root = this
		return
	}

	prev := s.root
	for prev.next != nil && prev.next.cycle <= this.cycle {
		prev = prev.next
	}
	this.next = prev.next
	prev.next = this
}

// DescheduleEvent removes the event from the schedule, if it is scheduled.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	if !s.events[eventType].scheduled {
		return
	}

	var prev *Event
	for event := s.root; event != nil; event = event.next {
		if event.eventType == eventType {
			if prev == nil {
				s.root = event.next
			} else {
				prev.next = event.next
			}
			event.Reset()
			return
		}
		prev = event
	}
}

// Scheduled returns true if an event of the given type is scheduled.
func (s *Scheduler) Scheduled(eventType EventType) bool {
	return s.events[eventType].scheduled
}

// Until returns the number of T-cycles until the given event is due, or
// 0 if it is not scheduled.
func (s *Scheduler) Until(eventType EventType) uint64 {
	if !s.Scheduled(eventType) {
		return 0
	}
	return s.events[eventType].cycle - s.cycles
}

func (s *Scheduler) String() string {
	var result strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&result, "%s:%d->", event.eventType, event.cycle)
	}
	return result.String()
}
