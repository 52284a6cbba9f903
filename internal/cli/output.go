package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Participant:
		o.printParticipant(v)
	case []Participant:
		o.printParticipants(v)
	case AuthResult:
		o.printAuthResult(v)
	case User:
		o.printUser(v)
	case []RegionStyle:
		o.printStyles(v)
	case []LegendEntry:
		o.printLegend(v)
	case []Overlap:
		o.printOverlaps(v)
	case Stats:
		o.printStats(v)
	case []Country:
		o.printCountries(v)
	case []Palette:
		o.printPalettes(v)
	case Palette:
		o.printPalette(v)
	case []Colour:
		o.printColours(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Participant response type (matches API)
type Participant struct {
	ID      string    `json:"id"`
	Colour  string    `json:"colour"`
	Created time.Time `json:"created"`
	Visited []string  `json:"visited"`
}

// AuthResult combines username and token
type AuthResult struct {
	Username     string `json:"username"`
	SessionToken string `json:"session_token"`
}

// User response type
type User struct {
	Username  string    `json:"username"`
	Created   time.Time `json:"created"`
	LastLogin time.Time `json:"last_login,omitempty"`
}

// RegionStyle response type
type RegionStyle struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	Fill   string   `json:"fill"`
	Stroke string   `json:"stroke"`
	Owners []string `json:"owners,omitempty"`
}

// LegendEntry response type
type LegendEntry struct {
	ID           string `json:"id"`
	Colour       string `json:"colour"`
	ColourName   string `json:"colour_name"`
	VisitedCount int    `json:"visited_count"`
}

// Overlap response type
type Overlap struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Visitors []string `json:"visitors"`
}

// Stats response type
type Stats struct {
	TotalCountries int     `json:"total_countries"`
	Visited        int     `json:"visited"`
	Percentage     float64 `json:"percentage"`
}

// Country response type
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Palette response type
type Palette struct {
	Name    string   `json:"name"`
	Colours []string `json:"colours"`
}

// Colour response type
type Colour struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printParticipant(p Participant) {
	fmt.Printf("Participant: %s\n", p.ID)
	fmt.Printf("Colour: %s\n", p.Colour)
	fmt.Printf("Created: %s\n", p.Created.Format(time.RFC3339))
	if len(p.Visited) > 0 {
		fmt.Printf("Visited (%d): %s\n", len(p.Visited), strings.Join(p.Visited, ", "))
	} else {
		fmt.Println("Visited: none")
	}
}

func (o *Output) printParticipants(ps []Participant) {
	fmt.Printf("Participants (%d):\n", len(ps))
	for _, p := range ps {
		fmt.Printf("  - %s %s (%d visited)\n", p.ID, p.Colour, len(p.Visited))
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("User: %s\n", a.Username)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s\n", u.Username)
	fmt.Printf("Created: %s\n", u.Created.Format(time.RFC3339))
	if !u.LastLogin.IsZero() {
		fmt.Printf("Last Login: %s\n", u.LastLogin.Format(time.RFC3339))
	}
}

func (o *Output) printStyles(styles []RegionStyle) {
	fmt.Printf("Regions (%d):\n", len(styles))
	for _, s := range styles {
		owned := ""
		if len(s.Owners) > 0 {
			owned = " - " + strings.Join(s.Owners, ", ")
		}
		fmt.Printf("  %s %s %s%s\n", s.Code, s.Fill, s.Name, owned)
	}
}

func (o *Output) printLegend(entries []LegendEntry) {
	fmt.Printf("Legend (%d):\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %s: %s (%s), %d visited\n", e.ID, e.ColourName, e.Colour, e.VisitedCount)
	}
}

func (o *Output) printOverlaps(overlaps []Overlap) {
	if len(overlaps) == 0 {
		fmt.Println("No overlaps")
		return
	}
	fmt.Printf("Overlaps (%d):\n", len(overlaps))
	for _, ov := range overlaps {
		fmt.Printf("  %s (%s): %s\n", ov.Name, ov.Code, strings.Join(ov.Visitors, ", "))
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Visited: %d of %d countries (%.1f%%)\n", s.Visited, s.TotalCountries, s.Percentage)
}

func (o *Output) printCountries(countries []Country) {
	fmt.Printf("Countries (%d):\n", len(countries))
	for _, c := range countries {
		fmt.Printf("  %s  %s\n", c.Code, c.Name)
	}
}

func (o *Output) printPalettes(palettes []Palette) {
	fmt.Printf("Palettes (%d):\n", len(palettes))
	for _, p := range palettes {
		fmt.Printf("  %s: %s\n", p.Name, strings.Join(p.Colours, " "))
	}
}

func (o *Output) printPalette(p Palette) {
	fmt.Printf("Palette: %s\n", p.Name)
	for _, hex := range p.Colours {
		fmt.Printf("  %s\n", hex)
	}
}

func (o *Output) printColours(colours []Colour) {
	fmt.Printf("Colours (%d):\n", len(colours))
	for _, c := range colours {
		fmt.Printf("  %s  %s\n", c.Hex, c.Name)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
