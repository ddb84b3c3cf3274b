// Package chores implements the chore scheduling collaborator: recurring
// household tasks assigned to members. Chores share member identifiers
// with the ledger core and nothing else; they are CRUD records with a due
// timestamp.
package chores

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chorecast/chorecast/internal/ledger"
	"github.com/chorecast/chorecast/internal/models"
	"github.com/chorecast/chorecast/internal/storage"
)

var (
	// ErrInvalidChore is returned for a chore with a missing name or an
	// unknown frequency.
	ErrInvalidChore = errors.New("invalid chore")

	// ErrChoreNotFound is returned when a chore id does not exist.
	ErrChoreNotFound = errors.New("chore not found")
)

// Service manages chore lifecycle against the store.
type Service struct {
	store storage.Store
	now   func() time.Time
}

// NewService creates a chore service over the given store.
func NewService(store storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateInput carries the caller-supplied fields of a new chore.
type CreateInput struct {
	Name        string
	Description string
	Frequency   models.Frequency
	AssignedTo  string
}

// Create registers a new chore. The first due time is now plus the
// frequency interval, matching how Complete rolls the cycle forward.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Chore, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidChore)
	}
	if !input.Frequency.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidChore, input.Frequency)
	}
	assignee, err := s.store.GetMember(ctx, input.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("failed to look up assignee: %w", err)
	}
	if assignee == nil {
		return nil, fmt.Errorf("%w: %s", ledger.ErrUnknownMember, input.AssignedTo)
	}

	now := s.now()
	chore := &models.Chore{
		Name:        input.Name,
		Description: input.Description,
		Frequency:   input.Frequency,
		AssignedTo:  input.AssignedTo,
		LastDone:    now.Unix(),
		NextDue:     now.AddDate(0, 0, input.Frequency.IntervalDays()).Unix(),
	}
	if err := s.store.CreateChore(ctx, chore); err != nil {
		return nil, fmt.Errorf("failed to create chore: %w", err)
	}

	slog.Info("Chore created", "chore_id", chore.ID, "assigned_to", chore.AssignedTo, "frequency", chore.Frequency)
	return chore, nil
}

// Complete marks the current cycle done and rolls the next due time
// forward by the chore's frequency interval.
func (s *Service) Complete(ctx context.Context, choreID string) (*models.Chore, error) {
	chore, err := s.store.GetChore(ctx, choreID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up chore: %w", err)
	}
	if chore == nil {
		return nil, fmt.Errorf("%w: %s", ErrChoreNotFound, choreID)
	}

	now := s.now()
	chore.Completed = true
	chore.LastDone = now.Unix()
	chore.NextDue = now.AddDate(0, 0, chore.Frequency.IntervalDays()).Unix()

	if err := s.store.UpdateChore(ctx, chore); err != nil {
		return nil, fmt.Errorf("failed to update chore: %w", err)
	}

	slog.Info("Chore completed", "chore_id", chore.ID, "next_due", chore.NextDue)
	return chore, nil
}

// List returns all chores ordered by next due time.
func (s *Service) List(ctx context.Context) ([]*models.Chore, error) {
	return s.store.ListChores(ctx)
}

// Overdue returns the incomplete chores whose due time has passed.
func (s *Service) Overdue(ctx context.Context) ([]*models.Chore, error) {
	return s.store.ListOverdueChores(ctx, s.now().Unix())
}

// ResetRecurring reopens completed chores whose next due time has passed,
// starting their next cycle. Intended to be run periodically.
func (s *Service) ResetRecurring(ctx context.Context) (int, error) {
	chores, err := s.store.ListChores(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list chores: %w", err)
	}

	now := s.now().Unix()
	reset := 0
	for _, chore := range chores {
		if !chore.Completed || chore.NextDue > now {
			continue
		}
		chore.Completed = false
		if err := s.store.UpdateChore(ctx, chore); err != nil {
			return reset, fmt.Errorf("failed to reset chore %s: %w", chore.ID, err)
		}
		reset++
		slog.Info("Chore reset for next cycle", "chore_id", chore.ID, "name", chore.Name)
	}
	return reset, nil
}
