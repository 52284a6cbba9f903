package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldmark/internal/api"
	"worldmark/internal/api/apierr"
	"worldmark/internal/api/response"
	"worldmark/internal/factory"
	"worldmark/internal/services/mapview"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{
		BoundaryPath: "testdata/countries.geojson",
		StorageType:  factory.StorageTypeMemory,
		Logger:       logger,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		ParticipantsService: app.ParticipantsService,
		MapviewService:      app.MapviewService,
		Countries:           app.Countries,
		Colours:             app.Colours,
	})

	return &testServer{handler: router}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.ErrorResponse {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")

	rr = ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateParticipant(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"id": "alice", "colour": "#16697a"}
	rr := ts.request(http.MethodPost, "/api/v1/participants", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Participant
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "alice", resp.ID)
	assert.Equal(t, "#16697A", resp.Colour, "colour is normalised to upper case")
	assert.Empty(t, resp.Visited)
	assert.False(t, resp.Created.IsZero())
}

func TestCreateParticipantDuplicate(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "alice", "#16697A")

	body := map[string]string{"id": "alice", "colour": "#A24936"}
	rr := ts.request(http.MethodPost, "/api/v1/participants", body, "")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeParticipantExists, decodeError(t, rr).Error.Code)
}

func TestCreateParticipantMalformedColour(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"id": "alice", "colour": "red"}
	rr := ts.request(http.MethodPost, "/api/v1/participants", body, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeMalformedColour, decodeError(t, rr).Error.Code)
}

func TestCreateParticipantEmptyID(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"id": "   ", "colour": "#16697A"}
	rr := ts.request(http.MethodPost, "/api/v1/participants", body, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeEmptyParticipantID, decodeError(t, rr).Error.Code)
}

func TestGetParticipantNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/participants/ghost", nil, "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeParticipantNotFound, decodeError(t, rr).Error.Code)
}

func TestListParticipantsSorted(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "carol", "#16697A")
	ts.createParticipant(t, "alice", "#A24936")
	ts.createParticipant(t, "bob", "#DBF4A7")

	rr := ts.request(http.MethodGet, "/api/v1/participants", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp []response.Participant
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, "alice", resp[0].ID)
	assert.Equal(t, "bob", resp[1].ID)
	assert.Equal(t, "carol", resp[2].ID)
}

func TestRecolourKeepsVisits(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "alice", "#16697A")
	ts.appendVisits(t, "alice", "DE", "FR")

	body := map[string]string{"colour": "#a24936"}
	rr := ts.request(http.MethodPatch, "/api/v1/participants/alice/colour", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Participant
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "#A24936", resp.Colour)
	assert.Equal(t, []string{"DE", "FR"}, resp.Visited)
}

func TestDeleteParticipant(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "alice", "#16697A")

	rr := ts.request(http.MethodDelete, "/api/v1/participants/alice", nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/participants/alice", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVisitLifecycle(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "alice", "#16697A")

	// Append normalises case and whitespace, and the projection dedups
	body := map[string][]string{"codes": {"de", " FR ", "DE"}}
	rr := ts.request(http.MethodPost, "/api/v1/participants/alice/visits", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Participant
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"DE", "FR"}, resp.Visited)

	// Replace
	body = map[string][]string{"codes": {"JP"}}
	rr = ts.request(http.MethodPut, "/api/v1/participants/alice/visits", body, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"JP"}, resp.Visited)

	// Clear
	rr = ts.request(http.MethodDelete, "/api/v1/participants/alice/visits", nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/participants/alice", nil, "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Visited)
}

func TestAppendVisitsMalformedCodeRejectedWhole(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "alice", "#16697A")

	body := map[string][]string{"codes": {"DE", "DEU"}}
	rr := ts.request(http.MethodPost, "/api/v1/participants/alice/visits", body, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeMalformedCountryCode, decodeError(t, rr).Error.Code)

	// Nothing from the rejected batch was recorded
	rr = ts.request(http.MethodGet, "/api/v1/participants/alice", nil, "")
	var resp response.Participant
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Visited)
}

func TestVisitsUnknownParticipant(t *testing.T) {
	ts := newTestServer(t)

	body := map[string][]string{"codes": {"DE"}}
	rr := ts.request(http.MethodPost, "/api/v1/participants/ghost/visits", body, "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeParticipantNotFound, decodeError(t, rr).Error.Code)
}

func TestMapPayload(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "alice", "#16697A")
	ts.appendVisits(t, "alice", "DE")

	rr := ts.request(http.MethodGet, "/api/map", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var payload response.MapPayload
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))

	assert.Equal(t, "FeatureCollection", payload.Type)
	require.Len(t, payload.Features, 3)

	props := featureProps(t, payload, "DE")
	assert.Equal(t, "#16697A", props["fill"])
	assert.Equal(t, "#444444", props["stroke"])
	assert.Equal(t, []any{"alice"}, props["owners"])

	unvisited := featureProps(t, payload, "FR")
	assert.Equal(t, mapview.UnvisitedFill, unvisited["fill"])
	assert.Equal(t, "#999999", unvisited["stroke"])
	assert.NotContains(t, unvisited, "owners")
}

func TestMapPayloadMergedFill(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "alice", "#FFFFFF")
	ts.createParticipant(t, "bob", "#000000")
	ts.appendVisits(t, "alice", "DE")
	ts.appendVisits(t, "bob", "DE")

	rr := ts.request(http.MethodGet, "/api/map", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var payload response.MapPayload
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))

	props := featureProps(t, payload, "DE")
	assert.Equal(t, "#B4B4B4", props["fill"])
	assert.Equal(t, "#222222", props["stroke"])
	assert.Equal(t, []any{"alice", "bob"}, props["owners"])
}

func TestMapStyles(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "alice", "#16697A")
	ts.appendVisits(t, "alice", "JP")

	rr := ts.request(http.MethodGet, "/api/v1/map/styles", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var styles []mapview.RegionStyle
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &styles))
	require.Len(t, styles, 3)

	byCode := make(map[string]mapview.RegionStyle)
	for _, s := range styles {
		byCode[string(s.Code)] = s
	}
	assert.Equal(t, "#16697A", byCode["JP"].FillColour)
	assert.Equal(t, mapview.UnvisitedFill, byCode["DE"].FillColour)
}

func TestMapLegend(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "bob", "#DBF4A7")
	ts.createParticipant(t, "alice", "#16697A")
	ts.appendVisits(t, "bob", "DE", "FR")

	rr := ts.request(http.MethodGet, "/api/v1/map/legend", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var legend []mapview.LegendEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &legend))
	require.Len(t, legend, 2)

	assert.Equal(t, "alice", string(legend[0].ID))
	assert.Equal(t, "Caribbean Current", legend[0].ColourName)
	assert.Equal(t, 0, legend[0].VisitedCount)

	assert.Equal(t, "bob", string(legend[1].ID))
	assert.Equal(t, 2, legend[1].VisitedCount)
}

func TestMapOverlaps(t *testing.T) {
	ts := newTestServer(t)

	// No participants: empty array, not null
	rr := ts.request(http.MethodGet, "/api/v1/map/overlaps", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	ts.createParticipant(t, "alice", "#16697A")
	ts.createParticipant(t, "bob", "#DBF4A7")
	ts.appendVisits(t, "alice", "DE", "FR")
	ts.appendVisits(t, "bob", "DE")

	rr = ts.request(http.MethodGet, "/api/v1/map/overlaps", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var overlaps []mapview.Overlap
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &overlaps))
	require.Len(t, overlaps, 1)
	assert.Equal(t, "DE", string(overlaps[0].Code))
	assert.Equal(t, "Germany", overlaps[0].Name)
}

func TestParticipantStats(t *testing.T) {
	ts := newTestServer(t)
	ts.createParticipant(t, "alice", "#16697A")
	ts.appendVisits(t, "alice", "DE", "FR", "DE")

	rr := ts.request(http.MethodGet, "/api/v1/participants/alice/stats", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var stats mapview.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalCountries)
	assert.Equal(t, 2, stats.Visited)
	assert.InDelta(t, 66.666, stats.Percentage, 0.01)
}

func TestCountries(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/countries", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var countries []struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &countries))
	require.Len(t, countries, 3)

	// Sorted by name
	assert.Equal(t, "France", countries[0].Name)
	assert.Equal(t, "Germany", countries[1].Name)
	assert.Equal(t, "Japan", countries[2].Name)
}

func TestPalettes(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/palettes", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var palettes []response.Palette
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &palettes))
	require.NotEmpty(t, palettes)

	rr = ts.request(http.MethodGet, "/api/v1/palettes/"+palettes[0].Name, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var single response.Palette
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &single))
	assert.Equal(t, palettes[0].Name, single.Name)
	assert.NotEmpty(t, single.Colours)
}

func TestPaletteUnknown(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/palettes/nope", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Error.Code)
}

func TestColours(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/colours", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var colours []struct {
		Hex  string `json:"hex"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &colours))
	assert.NotEmpty(t, colours)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/users/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registerResp))
	assert.Equal(t, "alice", registerResp.Username)
	assert.NotEmpty(t, registerResp.SessionToken)

	// Login
	loginBody := map[string]string{"username": "alice", "password": "secret123"}
	rr = ts.request(http.MethodPost, "/api/v1/users/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, "alice", loginResp.Username)
	assert.NotEmpty(t, loginResp.SessionToken)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice", "secret123")

	body := map[string]string{"username": "alice", "password": "other456"}
	rr := ts.request(http.MethodPost, "/api/v1/users/register", body, "")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeUsernameExists, decodeError(t, rr).Error.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice", "secret123")

	body := map[string]string{"username": "alice", "password": "wrong"}
	rr := ts.request(http.MethodPost, "/api/v1/users/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, decodeError(t, rr).Error.Code)

	// Unknown users get the same error code
	body = map[string]string{"username": "nobody", "password": "whatever"}
	rr = ts.request(http.MethodPost, "/api/v1/users/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, decodeError(t, rr).Error.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "alice", "secret123")

	rr := ts.request(http.MethodGet, "/api/v1/users/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.False(t, resp.Created.IsZero())
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeUnauthorized, decodeError(t, rr).Error.Code)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/users/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// The token no longer works
	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Helper functions

func (ts *testServer) createParticipant(t *testing.T, id, colour string) {
	t.Helper()

	body := map[string]string{"id": id, "colour": colour}
	rr := ts.request(http.MethodPost, "/api/v1/participants", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)
}

func (ts *testServer) appendVisits(t *testing.T, id string, codes ...string) {
	t.Helper()

	body := map[string][]string{"codes": codes}
	rr := ts.request(http.MethodPost, "/api/v1/participants/"+id+"/visits", body, "")
	require.Equal(t, http.StatusOK, rr.Code)
}

func registerUser(t *testing.T, ts *testServer, username, password string) string {
	t.Helper()

	body := map[string]string{"username": username, "password": password}
	rr := ts.request(http.MethodPost, "/api/v1/users/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken
}

func featureProps(t *testing.T, payload response.MapPayload, code string) map[string]any {
	t.Helper()

	for _, f := range payload.Features {
		if f.Properties["ISO3166-1-Alpha-2"] == code {
			return f.Properties
		}
	}
	t.Fatalf("no feature with code %q in payload", code)
	return nil
}
