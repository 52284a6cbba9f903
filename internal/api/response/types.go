package response

import (
	"encoding/json"
	"time"

	"worldmark/internal/model"
	"worldmark/internal/services/auth"
)

// Participant represents a participant in API responses. Visited is the
// deduplicated, sorted projection of the stored visit sequence.
type Participant struct {
	ID      string    `json:"id"`
	Colour  string    `json:"colour"`
	Created time.Time `json:"created"`
	Visited []string  `json:"visited"`
}

// ParticipantFromModel converts a model.Participant to a response Participant
func ParticipantFromModel(p *model.Participant) Participant {
	codes := p.VisitedCodes()
	visited := make([]string, len(codes))
	for i, code := range codes {
		visited[i] = string(code)
	}
	return Participant{
		ID:      string(p.ID),
		Colour:  p.Colour,
		Created: p.CreatedAt,
		Visited: visited,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Username     string `json:"username"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Username:     s.Username,
		SessionToken: s.Token,
	}
}

// User is the user-data record in API responses
type User struct {
	Username  string    `json:"username"`
	Created   time.Time `json:"created"`
	LastLogin time.Time `json:"last_login,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		Username:  u.Username,
		Created:   u.Created,
		LastLogin: u.LastLogin,
	}
}

// MapFeature is one styled GeoJSON feature in the map payload
type MapFeature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// MapPayload is the styled FeatureCollection the client renderer draws
type MapPayload struct {
	Type     string       `json:"type"`
	Features []MapFeature `json:"features"`
}

// Palette is one named colour group
type Palette struct {
	Name    string   `json:"name"`
	Colours []string `json:"colours"`
}
