package memory

import (
	"context"
	"sync"
	"time"

	"worldmark/internal/model"
	"worldmark/internal/visitstore"
)

// Store is an in-memory implementation of the visit store, used for
// tests and for running the server without a backing file.
type Store struct {
	mu           sync.RWMutex
	participants map[model.ParticipantID]*model.Participant
}

// New creates a new in-memory store. A fresh store mirrors a missing
// backing file: ListParticipants returns an empty map and AppendVisits
// fails until participants are added.
func New() *Store {
	return &Store{
		participants: make(map[model.ParticipantID]*model.Participant),
	}
}

// Ensure Store implements the interface
var _ visitstore.Store = (*Store)(nil)

func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = make(map[model.ParticipantID]*model.Participant)
	return nil
}

func (s *Store) AddParticipant(ctx context.Context, id model.ParticipantID, colour string, created time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.participants[id]; ok {
		p.Colour = colour
		p.CreatedAt = created
		return nil
	}
	s.participants[id] = &model.Participant{
		ID:        id,
		Colour:    colour,
		CreatedAt: created,
		Visited:   []model.CountryCode{},
	}
	return nil
}

func (s *Store) AppendVisits(ctx context.Context, id model.ParticipantID, codes []model.CountryCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[id]
	if !ok {
		return model.ErrParticipantNotFound
	}
	p.Visited = append(p.Visited, codes...)
	return nil
}

func (s *Store) ClearVisits(ctx context.Context, id model.ParticipantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[id]
	if !ok {
		return nil
	}
	p.Visited = []model.CountryCode{}
	return nil
}

func (s *Store) DeleteParticipant(ctx context.Context, id model.ParticipantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.participants, id)
	return nil
}

func (s *Store) ListParticipants(ctx context.Context) (map[model.ParticipantID]*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[model.ParticipantID]*model.Participant, len(s.participants))
	for id, p := range s.participants {
		visited := make([]model.CountryCode, len(p.Visited))
		copy(visited, p.Visited)
		result[id] = &model.Participant{
			ID:        p.ID,
			Colour:    p.Colour,
			CreatedAt: p.CreatedAt,
			Visited:   visited,
		}
	}
	return result, nil
}
