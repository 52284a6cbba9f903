package cli_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldmark/internal/api"
	"worldmark/internal/cli"
	"worldmark/internal/factory"
)

// cliRunner executes CLI commands in-process against a test server
type cliRunner struct {
	t         *testing.T
	serverURL string
	tokenFile string
}

func newCLIRunner(t *testing.T) *cliRunner {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
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

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &cliRunner{
		t:         t,
		serverURL: server.URL,
		tokenFile: filepath.Join(t.TempDir(), "token"),
	}
}

// run executes a command and returns its stdout
func (r *cliRunner) run(args ...string) (string, error) {
	r.t.Helper()

	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	rootCmd := cli.NewRootCmd()
	rootCmd.SetArgs(fullArgs)
	rootCmd.SetErr(io.Discard)

	// Command output goes to os.Stdout, so capture it via a pipe
	old := os.Stdout
	pr, pw, err := os.Pipe()
	require.NoError(r.t, err)
	os.Stdout = pw

	runErr := rootCmd.Execute()

	require.NoError(r.t, pw.Close())
	os.Stdout = old

	output, err := io.ReadAll(pr)
	require.NoError(r.t, err)
	return string(output), runErr
}

// Response types for JSON parsing

type participantResponse struct {
	ID      string    `json:"id"`
	Colour  string    `json:"colour"`
	Created time.Time `json:"created"`
	Visited []string  `json:"visited"`
}

type statsResponse struct {
	TotalCountries int     `json:"total_countries"`
	Visited        int     `json:"visited"`
	Percentage     float64 `json:"percentage"`
}

type authResponse struct {
	Username     string `json:"username"`
	SessionToken string `json:"session_token"`
}

type userResponse struct {
	Username string `json:"username"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	cli := newCLIRunner(t)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_ParticipantCommands(t *testing.T) {
	cli := newCLIRunner(t)

	// Add
	output, err := cli.run("participant", "add", "alice", "--colour", "#16697a")
	require.NoError(t, err, "output: %s", output)

	var added participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &added))
	assert.Equal(t, "alice", added.ID)
	assert.Equal(t, "#16697A", added.Colour, "colour is normalised to upper case")
	assert.Empty(t, added.Visited)

	// List
	output, err = cli.run("participant", "list")
	require.NoError(t, err, "output: %s", output)

	var list []participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].ID)

	// Get
	output, err = cli.run("participant", "get", "alice")
	require.NoError(t, err, "output: %s", output)

	var got participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, "alice", got.ID)

	// Recolour
	output, err = cli.run("participant", "recolour", "alice", "--colour", "#a24936")
	require.NoError(t, err, "output: %s", output)

	var recoloured participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &recoloured))
	assert.Equal(t, "#A24936", recoloured.Colour)

	// Delete
	output, err = cli.run("participant", "delete", "alice")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Contains(t, msg.Message, "Deleted participant alice")

	// List is empty again
	output, err = cli.run("participant", "list")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	assert.Empty(t, list)
}

func TestCLI_VisitCommands(t *testing.T) {
	cli := newCLIRunner(t)

	output, err := cli.run("participant", "add", "alice", "--colour", "#16697A")
	require.NoError(t, err, "output: %s", output)

	// Add visits; codes are normalised and the set view dedups
	output, err = cli.run("visits", "add", "alice", "de", "FR", "DE")
	require.NoError(t, err, "output: %s", output)

	var p participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &p))
	assert.Equal(t, []string{"DE", "FR"}, p.Visited)

	// Stats over the three-country catalog
	output, err = cli.run("participant", "stats", "alice")
	require.NoError(t, err, "output: %s", output)

	var stats statsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &stats))
	assert.Equal(t, 3, stats.TotalCountries)
	assert.Equal(t, 2, stats.Visited)

	// Set replaces the whole sequence
	output, err = cli.run("visits", "set", "alice", "JP")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &p))
	assert.Equal(t, []string{"JP"}, p.Visited)

	// Clear
	output, err = cli.run("visits", "clear", "alice")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Contains(t, msg.Message, "Cleared visits for alice")

	output, err = cli.run("participant", "get", "alice")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &p))
	assert.Empty(t, p.Visited)
}

func TestCLI_MapCommands(t *testing.T) {
	cli := newCLIRunner(t)

	output, err := cli.run("participant", "add", "alice", "--colour", "#16697A")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.run("visits", "add", "alice", "DE")
	require.NoError(t, err, "output: %s", output)

	// Styles
	output, err = cli.run("map", "styles")
	require.NoError(t, err, "output: %s", output)

	var styles []struct {
		Code string `json:"code"`
		Fill string `json:"fill"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &styles))
	require.Len(t, styles, 3)

	fills := make(map[string]string)
	for _, s := range styles {
		fills[s.Code] = s.Fill
	}
	assert.Equal(t, "#16697A", fills["DE"])
	assert.Equal(t, "#FFFFFF", fills["FR"])

	// Legend
	output, err = cli.run("map", "legend")
	require.NoError(t, err, "output: %s", output)

	var legend []struct {
		ID           string `json:"id"`
		VisitedCount int    `json:"visited_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &legend))
	require.Len(t, legend, 1)
	assert.Equal(t, "alice", legend[0].ID)
	assert.Equal(t, 1, legend[0].VisitedCount)

	// Countries
	output, err = cli.run("map", "countries")
	require.NoError(t, err, "output: %s", output)

	var countries []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &countries))
	require.Len(t, countries, 3)
	assert.Equal(t, "France", countries[0].Name)
}

func TestCLI_UserCommands(t *testing.T) {
	cli := newCLIRunner(t)

	// Register saves the token to the token file
	output, err := cli.run("user", "register", "--user", "alice", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))
	assert.Equal(t, "alice", auth.Username)
	assert.NotEmpty(t, auth.SessionToken)

	saved, err := os.ReadFile(cli.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, auth.SessionToken, string(saved))

	// Me uses the saved token
	output, err = cli.run("user", "me")
	require.NoError(t, err, "output: %s", output)

	var me userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, "alice", me.Username)

	// Logout invalidates the session and clears the token file
	output, err = cli.run("user", "logout")
	require.NoError(t, err, "output: %s", output)

	saved, err = os.ReadFile(cli.tokenFile)
	require.NoError(t, err)
	assert.Empty(t, string(saved))

	_, err = cli.run("user", "me")
	assert.Error(t, err)
}

func TestCLI_ErrorHandling(t *testing.T) {
	cli := newCLIRunner(t)

	// Unknown participant
	_, err := cli.run("participant", "get", "ghost")
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "not found")

	// Duplicate participant
	output, err := cli.run("participant", "add", "alice", "--colour", "#16697A")
	require.NoError(t, err, "output: %s", output)

	_, err = cli.run("participant", "add", "alice", "--colour", "#A24936")
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "already exists")

	// Malformed colour
	_, err = cli.run("participant", "add", "bob", "--colour", "blue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MALFORMED_COLOUR")
}
