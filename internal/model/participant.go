package model

import (
	"sort"
	"time"
)

// ParticipantID uniquely identifies a participant (player or user name).
// Chosen by the caller and immutable once created.
type ParticipantID string

// CountryCode is an ISO-3166-1 alpha-2 country code, normalised to upper case.
type CountryCode string

// Participant is one tracked visitor: a display colour and the countries
// they have marked as visited.
type Participant struct {
	ID        ParticipantID
	Colour    string // hex RGB, "#RRGGBB"
	CreatedAt time.Time

	// Visited is the raw append sequence as stored. Appends are additive
	// and never deduplicated, so repeated codes are possible here; use
	// VisitedSet for the read-side set view.
	Visited []CountryCode
}

// VisitedSet returns the deduplicated set of visited country codes.
func (p *Participant) VisitedSet() map[CountryCode]struct{} {
	set := make(map[CountryCode]struct{}, len(p.Visited))
	for _, code := range p.Visited {
		set[code] = struct{}{}
	}
	return set
}

// VisitedCodes returns the deduplicated visited codes in sorted order.
func (p *Participant) VisitedCodes() []CountryCode {
	set := p.VisitedSet()
	codes := make([]CountryCode, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// VisitedCount returns the number of distinct visited countries.
func (p *Participant) VisitedCount() int {
	return len(p.VisitedSet())
}

// HasVisited reports whether the participant has marked the given country.
func (p *Participant) HasVisited(code CountryCode) bool {
	for _, c := range p.Visited {
		if c == code {
			return true
		}
	}
	return false
}
