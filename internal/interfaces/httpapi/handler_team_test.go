package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/gridironhq/roster-api/internal/domain/roster"
	"github.com/gridironhq/roster-api/internal/domain/season"
	"github.com/gridironhq/roster-api/internal/infrastructure/repository/memory"
	"github.com/gridironhq/roster-api/internal/platform/id"
	"github.com/gridironhq/roster-api/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	teamRepo := memory.NewTeamRepository(playerRepo)
	idGen := id.NewRandomGenerator()
	window := season.NewWindow(time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC))

	authService := usecase.NewAuthService(
		memory.NewUserRepository(),
		memory.NewSessionRepository(),
		idGen,
		nil,
		time.Hour,
	)
	teamService := usecase.NewTeamService(teamRepo, playerRepo, roster.DefaultRules(), window, idGen, nil)
	playerService := usecase.NewPlayerService(playerRepo)

	handler := NewHandler(authService, teamService, playerService, nil, nil)
	return NewRouter(handler, authService, nil, nil, "test-job-token")
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func envelopeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v (body: %s)", err, rec.Body.String())
	}
	return body.Data
}

func signupAndLogin(t *testing.T, router http.Handler, username string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/signup", "",
		`{"username":"`+username+`","email":"`+username+`@example.com","password":"hunter22"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/auth/login", "",
		`{"username":"`+username+`","password":"hunter22"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}

	token, _ := envelopeData(t, rec)["token"].(string)
	if token == "" {
		t.Fatal("expected session token in login response")
	}
	return token
}

func TestRouter_TeamLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := signupAndLogin(t, router, "gridfan")

	rec := doJSON(t, router, http.MethodPost, "/v1/teams", token, `{"name":"Gridiron Giants"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create team returned %d: %s", rec.Code, rec.Body.String())
	}
	teamID, _ := envelopeData(t, rec)["id"].(string)
	if teamID == "" {
		t.Fatal("expected team id in create response")
	}

	// Second active team for the same user is rejected.
	rec = doJSON(t, router, http.MethodPost, "/v1/teams", token, `{"name":"Second Squad"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate active team, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/teams/"+teamID+"/players", token, `{"playerId":"nfl-qb-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add player returned %d: %s", rec.Code, rec.Body.String())
	}
	roster, _ := envelopeData(t, rec)["roster"].([]any)
	if len(roster) != 1 {
		t.Fatalf("expected roster of 1, got %d", len(roster))
	}

	// A rival cannot draft the same player or touch the team.
	rivalToken := signupAndLogin(t, router, "rivalfan")
	rec = doJSON(t, router, http.MethodPost, "/v1/teams", rivalToken, `{"name":"Rival Squad"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("rival create team returned %d: %s", rec.Code, rec.Body.String())
	}
	rivalTeamID, _ := envelopeData(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/v1/teams/"+rivalTeamID+"/players", rivalToken, `{"playerId":"nfl-qb-01"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for owned player, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/v1/teams/"+teamID, rivalToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner delete, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/v1/teams/"+teamID+"/players/nfl-qb-01", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove player returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/v1/teams/"+teamID, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete team returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_AuthRequired(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/teams", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/teams", "bogus-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bogus token, got %d", rec.Code)
	}
}

func TestRouter_FreeAgentsArePublic(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/players?position=QB", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list free agents returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/players?position=GOALIE", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown position, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_InternalJobTokenGuard(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/ingest-catalog", strings.NewReader(""))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without job token, got %d", rec.Code)
	}
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz returned %d", rec.Code)
	}
}
