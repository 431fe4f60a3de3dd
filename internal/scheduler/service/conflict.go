package service

import (
	"context"
	"errors"
	"time"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/store"
)

var (
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrNoCandidates     = errors.New("no candidate emails to check")
)

// ConflictService answers "who is already booked?" questions. It is
// read-only and safe for concurrent use.
type ConflictService struct {
	Store store.Store
}

// FindConflicts returns, for each candidate email that is already committed
// to an overlapping scheduled meeting, the list of those meetings. Overlap is
// open-interval: meetings that merely touch at a boundary are not conflicts.
// Emails with no overlap are omitted, so an empty map means all clear.
// excludeMeetingID, when non-empty, is ignored as a conflict source to
// support update-in-place checks.
func (s *ConflictService) FindConflicts(
	ctx context.Context,
	candidateEmails []string,
	start, end time.Time,
	excludeMeetingID string,
) (map[string][]domain.Meeting, error) {
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}

	// Normalize and dedupe before lookup.
	seen := make(map[string]struct{}, len(candidateEmails))
	emails := make([]string, 0, len(candidateEmails))
	for _, raw := range candidateEmails {
		email := domain.NormalizeEmail(raw)
		if email == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}
	if len(emails) == 0 {
		return nil, ErrNoCandidates
	}

	conflicts := make(map[string][]domain.Meeting)
	for _, email := range emails {
		candidates, err := s.Store.Meetings().ListOverlapping(ctx, email, start, end, excludeMeetingID)
		if err != nil {
			return nil, err
		}
		// Meeting.Overlaps owns the open-interval rule; the store query is a
		// candidate pre-filter.
		var overlapping []domain.Meeting
		for _, m := range candidates {
			if m.Overlaps(start, end) {
				overlapping = append(overlapping, m)
			}
		}
		if len(overlapping) > 0 {
			conflicts[email] = overlapping
		}
	}
	return conflicts, nil
}
