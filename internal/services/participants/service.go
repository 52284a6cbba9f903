// Package participants is the controller between transports and the
// visit store: it validates input, normalises country codes and maps
// store records onto read-side views.
package participants

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"worldmark/internal/colormix"
	"worldmark/internal/dependencies/clock"
	"worldmark/internal/model"
	"worldmark/internal/visitstore"
)

// Service coordinates participant operations against the visit store.
type Service struct {
	store  visitstore.Store
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new participants Service
func New(store visitstore.Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Create adds a new participant with the given colour. Unlike the
// store's upsert, Create fails with ErrParticipantExists when the id is
// already taken, so the UI can surface the clash instead of silently
// resetting someone's colour.
func (s *Service) Create(ctx context.Context, id model.ParticipantID, colour string) (*model.Participant, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, model.ErrEmptyParticipantID
	}
	if !colormix.Valid(colour) {
		return nil, model.ErrMalformedColour
	}

	existing, err := s.store.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := existing[id]; ok {
		return nil, model.ErrParticipantExists
	}

	now := s.clock.Now()
	norm := colormix.Normalise(colour)
	if err := s.store.AddParticipant(ctx, id, norm, now); err != nil {
		return nil, err
	}

	s.logger.Info("participant created",
		slog.String("participant", string(id)),
		slog.String("colour", norm),
	)

	return &model.Participant{ID: id, Colour: norm, CreatedAt: now, Visited: []model.CountryCode{}}, nil
}

// Recolour updates an existing participant's colour (and refreshes the
// created attribute, matching the store's upsert semantics). Visits are
// untouched.
func (s *Service) Recolour(ctx context.Context, id model.ParticipantID, colour string) error {
	if !colormix.Valid(colour) {
		return model.ErrMalformedColour
	}
	existing, err := s.store.ListParticipants(ctx)
	if err != nil {
		return err
	}
	if _, ok := existing[id]; !ok {
		return model.ErrParticipantNotFound
	}
	return s.store.AddParticipant(ctx, id, colormix.Normalise(colour), s.clock.Now())
}

// AppendVisits validates and appends country codes to the participant's
// visit sequence. Codes are normalised to upper case; the store does
// not deduplicate, so appending a code twice stores it twice.
func (s *Service) AppendVisits(ctx context.Context, id model.ParticipantID, codes []model.CountryCode) error {
	normalised, err := normaliseCodes(codes)
	if err != nil {
		return err
	}
	if len(normalised) == 0 {
		return nil
	}
	return s.store.AppendVisits(ctx, id, normalised)
}

// ClearVisits empties the participant's visit sequence.
// A no-op on an unknown id.
func (s *Service) ClearVisits(ctx context.Context, id model.ParticipantID) error {
	return s.store.ClearVisits(ctx, id)
}

// SetVisits replaces the participant's visits with exactly the given
// codes. Implemented as clear followed by append; the pair is not
// atomic, so a crash in between leaves the participant with no visits.
func (s *Service) SetVisits(ctx context.Context, id model.ParticipantID, codes []model.CountryCode) error {
	normalised, err := normaliseCodes(codes)
	if err != nil {
		return err
	}

	// Refuse up front rather than clearing a participant we cannot
	// append back to.
	existing, err := s.store.ListParticipants(ctx)
	if err != nil {
		return err
	}
	if _, ok := existing[id]; !ok {
		return model.ErrParticipantNotFound
	}

	if err := s.store.ClearVisits(ctx, id); err != nil {
		return err
	}
	if len(normalised) == 0 {
		return nil
	}
	return s.store.AppendVisits(ctx, id, normalised)
}

// Delete removes the participant entirely. A no-op on an unknown id.
func (s *Service) Delete(ctx context.Context, id model.ParticipantID) error {
	if err := s.store.DeleteParticipant(ctx, id); err != nil {
		return err
	}
	s.logger.Info("participant deleted", slog.String("participant", string(id)))
	return nil
}

// Get returns a single participant.
func (s *Service) Get(ctx context.Context, id model.ParticipantID) (*model.Participant, error) {
	all, err := s.store.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := all[id]
	if !ok {
		return nil, model.ErrParticipantNotFound
	}
	return p, nil
}

// List returns all participants sorted by id.
func (s *Service) List(ctx context.Context) ([]*model.Participant, error) {
	all, err := s.store.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Participant, 0, len(all))
	for _, p := range all {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// normaliseCodes upper-cases and shape-checks country codes. The store
// does not validate codes against a country list; that is the UI's
// concern. Shape validation (exactly two letters) happens here.
func normaliseCodes(codes []model.CountryCode) ([]model.CountryCode, error) {
	out := make([]model.CountryCode, 0, len(codes))
	for _, code := range codes {
		c := strings.ToUpper(strings.TrimSpace(string(code)))
		if len(c) != 2 || !isAlpha(c[0]) || !isAlpha(c[1]) {
			return nil, fmt.Errorf("%w: %q", model.ErrMalformedCountryCode, string(code))
		}
		out = append(out, model.CountryCode(c))
	}
	return out, nil
}

func isAlpha(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
