package service

import "sync"

// MeetingLocks serializes read-then-decide-then-write sequences on a single
// meeting: two concurrent adds for the same email must not both pass the
// duplicate check, and two concurrent edits must diff against a consistent
// previous snapshot. The sqlite UNIQUE constraint on (meeting, email) remains
// the backstop for the add race.
type MeetingLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewMeetingLocks() *MeetingLocks {
	return &MeetingLocks{entries: make(map[string]*lockEntry)}
}

// Lock acquires the advisory lock for meetingID and returns the matching
// unlock function. Entries are dropped once the last holder releases.
func (l *MeetingLocks) Lock(meetingID string) (unlock func()) {
	l.mu.Lock()
	e := l.entries[meetingID]
	if e == nil {
		e = &lockEntry{}
		l.entries[meetingID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, meetingID)
		}
		l.mu.Unlock()
	}
}
