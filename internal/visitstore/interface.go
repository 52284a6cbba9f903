package visitstore

import (
	"context"
	"time"

	"worldmark/internal/model"
)

// Store defines the interface for visit persistence.
//
// Implementations serialise access per operation; there is no held lock
// across operations, so multi-step updates (clear then append) are not
// atomic and concurrent writers from separate processes are not safe
// without external coordination. Treat a store as single-writer.
type Store interface {
	// Init creates an empty store with zero participants, creating any
	// missing parent directories. An existing store at the same location
	// is overwritten.
	Init(ctx context.Context) error

	// AddParticipant creates the participant with an empty visit sequence,
	// or updates colour and created in place if the id already exists.
	// Existing visits are never removed by an update.
	AddParticipant(ctx context.Context, id model.ParticipantID, colour string, created time.Time) error

	// AppendVisits appends each code to the participant's visit sequence.
	// Codes are stored as given, without deduplication. Returns
	// model.ErrParticipantNotFound if the id does not exist.
	AppendVisits(ctx context.Context, id model.ParticipantID, codes []model.CountryCode) error

	// ClearVisits resets the participant's visit sequence to empty.
	// A no-op if the id does not exist.
	ClearVisits(ctx context.Context, id model.ParticipantID) error

	// DeleteParticipant removes the participant and its visits entirely.
	// A no-op if the id does not exist.
	DeleteParticipant(ctx context.Context, id model.ParticipantID) error

	// ListParticipants returns every participant with its full record.
	// Returns an empty map, not an error, if the store does not exist.
	ListParticipants(ctx context.Context) (map[model.ParticipantID]*model.Participant, error)
}
