package request

// CreateParticipantRequest is the request body for creating a participant
type CreateParticipantRequest struct {
	ID     string `json:"id"`
	Colour string `json:"colour"`
}

// RecolourRequest is the request body for changing a participant's colour
type RecolourRequest struct {
	Colour string `json:"colour"`
}

// VisitsRequest is the request body for appending or replacing visits
type VisitsRequest struct {
	Codes []string `json:"codes"`
}

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
