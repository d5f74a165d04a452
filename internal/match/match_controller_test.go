package match

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mc := NewMatchController(svc)
	r.POST("/matches", mc.CreateMatch)
	r.GET("/matches/live", mc.GetLiveMatches)
	r.GET("/matches/:id/status", mc.GetStatus)
	r.POST("/matches/setup", mc.UpsertSetup)
	r.POST("/matches/:id/start", mc.StartMatch)
	r.POST("/matches/:id/complete", mc.CompleteMatch)
	r.PUT("/matches/:id/result", mc.UpdateResultText)
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Code    int                    `json:"code"`
	Data    json.RawMessage        `json:"data"`
	Errors  map[string]interface{} `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return e
}

func TestStatusEndpoint(t *testing.T) {
	svc, _ := newFixture()
	r := newTestRouter(svc)

	w := do(r, http.MethodPost, "/matches/setup", validSetup())
	if w.Code != http.StatusOK {
		t.Fatalf("setup: %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/matches/1/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d %s", w.Code, w.Body.String())
	}
	var got MatchWithSetupStatus
	if err := json.Unmarshal(decode(t, w).Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != 1 || got.Team1Name != "Falcons" || !got.SetupStatus.IsSetupComplete {
		t.Errorf("status = %+v", got)
	}
}

func TestMatchEndpointErrors(t *testing.T) {
	svc, _ := newFixture()
	r := newTestRouter(svc)

	badToss := validSetup()
	badToss.Toss.TeamID = 30

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"unknown match", http.MethodGet, "/matches/9/status", nil, http.StatusNotFound},
		{"bad id", http.MethodGet, "/matches/abc/status", nil, http.StatusBadRequest},
		{"missing matchId", http.MethodPost, "/matches/setup", gin.H{"team1XI": []uint{100}}, http.StatusBadRequest},
		{"toss team not playing", http.MethodPost, "/matches/setup", badToss, http.StatusBadRequest},
		{"create without teams", http.MethodPost, "/matches", gin.H{"venue": "Oval"}, http.StatusBadRequest},
		{"result on unknown match", http.MethodPut, "/matches/9/result", gin.H{"result_text": "x"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if decode(t, w).Status != "error" {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestValidationErrorNamesField(t *testing.T) {
	svc, _ := newFixture()
	r := newTestRouter(svc)

	in := validSetup()
	in.Team1XI = squad(100, 12)
	w := do(r, http.MethodPost, "/matches/setup", in)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if _, ok := decode(t, w).Errors["team1XI"]; !ok {
		t.Errorf("errors missing team1XI: %s", w.Body.String())
	}
}

func TestStorageErrorIsGeneric(t *testing.T) {
	svc, repo := newFixture()
	repo.err = errors.New("pq: password authentication failed for user postgres")
	r := newTestRouter(svc)

	w := do(r, http.MethodGet, "/matches/live", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	e := decode(t, w)
	if e.Status != "fail" || strings.Contains(e.Message, "password") {
		t.Errorf("leaked storage error: %s", w.Body.String())
	}
}

func TestLifecycleEndpoints(t *testing.T) {
	svc, repo := newFixture()
	r := newTestRouter(svc)

	if w := do(r, http.MethodPost, "/matches/1/start", nil); w.Code != http.StatusOK {
		t.Fatalf("start: %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/matches/1/complete", gin.H{"result_text": "Hawks won"}); w.Code != http.StatusOK {
		t.Fatalf("complete: %d %s", w.Code, w.Body.String())
	}
	if !repo.matches[1].IsCompleted || repo.matches[1].ResultText != "Hawks won" {
		t.Errorf("stored = %+v", repo.matches[1])
	}
	if w := do(r, http.MethodPost, "/matches/1/start", nil); w.Code != http.StatusConflict {
		t.Errorf("restart: %d", w.Code)
	}
}

func TestLiveEndpoint(t *testing.T) {
	svc, repo := newFixture()
	repo.live = []LiveMatchRow{{
		MatchID: 1, Team1ID: 10, Team2ID: 20, Team1Name: "Falcons", Team2Name: "Hawks",
		Score: strPtr("158/4"), Overs: strPtr("20"), BattingTeamID: uintPtr(10), IsLive: true,
	}}
	r := newTestRouter(svc)

	w := do(r, http.MethodGet, "/matches/live", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var feed []map[string]interface{}
	if err := json.Unmarshal(decode(t, w).Data, &feed); err != nil {
		t.Fatal(err)
	}
	if len(feed) != 1 || feed[0]["score"] != "Falcons 158/4 (20)" || feed[0]["matchId"] != float64(1) {
		t.Errorf("feed = %v", feed)
	}
	if team1, ok := feed[0]["team1"].(map[string]interface{}); !ok || team1["name"] != "Falcons" {
		t.Errorf("team1 = %v", feed[0]["team1"])
	}
}
