// Package mapview turns participants and boundary data into styled
// regions for the client-side map renderer. Rendering the interactive
// widget itself is the client's job; this is only the styling pass.
package mapview

import (
	"sort"

	"worldmark/internal/colormix"
	"worldmark/internal/geo"
	"worldmark/internal/model"
	"worldmark/internal/palette"
)

// Fill colours for regions nobody owns.
const (
	UnvisitedFill   = "#FFFFFF"
	unvisitedStroke = "#999999"
	singleStroke    = "#444444"
	mergedStroke    = "#222222"
)

// RegionStyle is the computed presentation of one region.
type RegionStyle struct {
	Code         model.CountryCode     `json:"code"`
	Name         string                `json:"name"`
	FillColour   string                `json:"fill"`
	StrokeColour string                `json:"stroke"`
	Owners       []model.ParticipantID `json:"owners,omitempty"`
}

// LegendEntry describes one participant in the map legend.
type LegendEntry struct {
	ID           model.ParticipantID `json:"id"`
	Colour       string              `json:"colour"`
	ColourName   string              `json:"colour_name"`
	VisitedCount int                 `json:"visited_count"`
}

// Overlap is a country visited by more than one participant.
type Overlap struct {
	Code     model.CountryCode     `json:"code"`
	Name     string                `json:"name"`
	Visitors []model.ParticipantID `json:"visitors"`
}

// Stats summarises one participant's progress over the catalog.
type Stats struct {
	TotalCountries int     `json:"total_countries"`
	Visited        int     `json:"visited"`
	Percentage     float64 `json:"percentage"`
}

// Service computes map styling from participant records.
type Service struct {
	countries *geo.Catalog
	colours   *palette.Catalog
}

// New creates a new mapview Service
func New(countries *geo.Catalog, colours *palette.Catalog) *Service {
	return &Service{
		countries: countries,
		colours:   colours,
	}
}

// Style computes the fill for one region given its owners' colours.
// Zero owners gets the unvisited fill; a single owner keeps their
// colour; several owners get the quadratic-mean blend.
func Style(code model.CountryCode, name string, participants map[model.ParticipantID]*model.Participant) RegionStyle {
	var owners []model.ParticipantID
	for id, p := range participants {
		if _, ok := p.VisitedSet()[code]; ok {
			owners = append(owners, id)
		}
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })

	style := RegionStyle{Code: code, Name: name, Owners: owners}
	switch len(owners) {
	case 0:
		style.FillColour = UnvisitedFill
		style.StrokeColour = unvisitedStroke
	case 1:
		style.FillColour = colormix.Normalise(participants[owners[0]].Colour)
		style.StrokeColour = singleStroke
	default:
		colours := make([]string, len(owners))
		for i, id := range owners {
			colours[i] = participants[id].Colour
		}
		style.FillColour = colormix.Merge(colours)
		style.StrokeColour = mergedStroke
	}
	return style
}

// Styles computes the style of every region in the catalog.
func (s *Service) Styles(participants map[model.ParticipantID]*model.Participant) []RegionStyle {
	countries := s.countries.Countries()
	styles := make([]RegionStyle, 0, len(countries))
	for _, country := range countries {
		styles = append(styles, Style(country.Code, country.Name, participants))
	}
	return styles
}

// Legend builds the participant legend, sorted by id.
func (s *Service) Legend(participants map[model.ParticipantID]*model.Participant) []LegendEntry {
	entries := make([]LegendEntry, 0, len(participants))
	for id, p := range participants {
		entries = append(entries, LegendEntry{
			ID:           id,
			Colour:       p.Colour,
			ColourName:   s.colours.NameFor(p.Colour),
			VisitedCount: p.VisitedCount(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Overlaps lists countries visited by more than one participant,
// most-shared first.
func (s *Service) Overlaps(participants map[model.ParticipantID]*model.Participant) []Overlap {
	visitors := make(map[model.CountryCode][]model.ParticipantID)
	for id, p := range participants {
		for code := range p.VisitedSet() {
			visitors[code] = append(visitors[code], id)
		}
	}

	var overlaps []Overlap
	for code, who := range visitors {
		if len(who) < 2 {
			continue
		}
		sort.Slice(who, func(i, j int) bool { return who[i] < who[j] })
		overlaps = append(overlaps, Overlap{
			Code:     code,
			Name:     s.countries.Name(code),
			Visitors: who,
		})
	}
	sort.Slice(overlaps, func(i, j int) bool {
		if len(overlaps[i].Visitors) != len(overlaps[j].Visitors) {
			return len(overlaps[i].Visitors) > len(overlaps[j].Visitors)
		}
		return overlaps[i].Code < overlaps[j].Code
	})
	return overlaps
}

// StatsFor computes visit statistics for one participant against the
// boundary catalog.
func (s *Service) StatsFor(p *model.Participant) Stats {
	total := s.countries.Count()
	visited := p.VisitedCount()
	stats := Stats{TotalCountries: total, Visited: visited}
	if total > 0 {
		stats.Percentage = float64(visited) / float64(total) * 100
	}
	return stats
}
