package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"mindra_backend/internal/config"
	"mindra_backend/internal/model"
	"mindra_backend/internal/repository"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		JWT:       config.JWTConfig{Secret: "router-test-secret", ExpireTime: time.Hour},
		Auth:      config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Store:     config.StoreConfig{Type: "file"},
		Analytics: config.AnalyticsConfig{Public: true},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*App, repository.SnapshotStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	snap := model.NewSnapshot()
	snap.Modules = append(snap.Modules,
		model.LearningModule{
			ID: "mod_1", Title: "Basics", Level: "beginner", Content: "hello",
			Quiz: []model.Question{
				{ID: "q1", Text: "one", Options: []string{"a", "b"}, AnswerIndex: 1},
				{ID: "q2", Text: "two", Options: []string{"a", "b"}, AnswerIndex: 0},
			},
		},
		model.LearningModule{ID: "mod_empty", Title: "Empty", Level: "beginner"},
	)
	if err := store.Write(context.Background(), snap); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return NewWithStore(cfg, store), store
}

func call(t *testing.T, a *App, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]string
	decode(t, w, &body)
	return body["error"]
}

func TestLearningFlow(t *testing.T) {
	a, _ := newTestApp(t, testConfig())

	w := call(t, a, http.MethodPost, "/api/register", "", map[string]string{"email": "ada@example.com", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	var auth model.AuthResult
	decode(t, w, &auth)
	if auth.Token == "" || auth.User.Email != "ada@example.com" {
		t.Fatalf("unexpected auth result %+v", auth)
	}

	w = call(t, a, http.MethodPost, "/api/register", "", map[string]string{"email": "ada@example.com", "password": "x"})
	if w.Code != http.StatusConflict || errorOf(t, w) != "User exists" {
		t.Fatalf("duplicate register: %d %s", w.Code, w.Body.String())
	}

	w = call(t, a, http.MethodPost, "/api/login", "", map[string]string{"email": "ada@example.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized || errorOf(t, w) != "Invalid credentials" {
		t.Fatalf("bad login: %d %s", w.Code, w.Body.String())
	}

	w = call(t, a, http.MethodPost, "/api/login", "", map[string]string{"email": "ada@example.com", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	decode(t, w, &auth)

	w = call(t, a, http.MethodGet, "/api/modules", "", nil)
	var modules []map[string]interface{}
	decode(t, w, &modules)
	if len(modules) != 2 || modules[0]["id"] != "mod_1" {
		t.Fatalf("modules: %s", w.Body.String())
	}
	if _, ok := modules[0]["content"]; ok {
		t.Fatalf("module list must not include content")
	}

	w = call(t, a, http.MethodGet, "/api/quiz/mod_1", "", nil)
	if bytes.Contains(w.Body.Bytes(), []byte("answerIndex")) {
		t.Fatalf("quiz leaked answer keys: %s", w.Body.String())
	}

	submission := map[string]interface{}{
		"moduleId": "mod_1",
		"answers":  []map[string]interface{}{{"qId": "q1", "selectedIndex": 1}},
	}
	w = call(t, a, http.MethodPost, "/api/submit", auth.Token, submission)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}
	var result model.GradeResult
	decode(t, w, &result)
	if result != (model.GradeResult{Score: 50, Correct: 1, Total: 2}) {
		t.Fatalf("unexpected result %+v", result)
	}

	w = call(t, a, http.MethodGet, "/api/progress", auth.Token, nil)
	var progress []model.UserProgress
	decode(t, w, &progress)
	if len(progress) != 1 || progress[0].BestScore != 50 || progress[0].UserID != auth.User.ID {
		t.Fatalf("progress: %s", w.Body.String())
	}

	w = call(t, a, http.MethodGet, "/api/analytics", "", nil)
	var events []model.AnalyticsEvent
	decode(t, w, &events)
	if len(events) != 1 || events[0].Event != model.EventModuleAttempt {
		t.Fatalf("analytics: %s", w.Body.String())
	}

	w = call(t, a, http.MethodGet, "/api/dashboard", auth.Token, nil)
	var dashboard []model.DashboardModule
	decode(t, w, &dashboard)
	if len(dashboard) != 2 || dashboard[0].Status != model.ProgressAttempted || dashboard[1].Status != model.ProgressNotStarted {
		t.Fatalf("dashboard: %s", w.Body.String())
	}

	w = call(t, a, http.MethodGet, "/api/profile", auth.Token, nil)
	var profile model.UserInfo
	decode(t, w, &profile)
	if profile.ID != auth.User.ID {
		t.Fatalf("profile: %s", w.Body.String())
	}
}

func TestErrorResponses(t *testing.T) {
	a, _ := newTestApp(t, testConfig())
	w := call(t, a, http.MethodPost, "/api/register", "", map[string]string{"email": "ada@example.com", "password": "secret"})
	var auth model.AuthResult
	decode(t, w, &auth)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		status int
		error  string
	}{
		{"register without password", http.MethodPost, "/api/register", "", map[string]string{"email": "x@example.com"}, http.StatusBadRequest, "email and password required"},
		{"login without email", http.MethodPost, "/api/login", "", map[string]string{"password": "x"}, http.StatusBadRequest, "email and password required"},
		{"unknown module", http.MethodGet, "/api/modules/nope", "", nil, http.StatusNotFound, "Module not found"},
		{"unknown quiz", http.MethodGet, "/api/quiz/nope", "", nil, http.StatusNotFound, "Module not found"},
		{"submit without token", http.MethodPost, "/api/submit", "", map[string]interface{}{"moduleId": "mod_1", "answers": []interface{}{}}, http.StatusUnauthorized, "Missing Authorization header"},
		{"submit with bad token", http.MethodPost, "/api/submit", "garbage", map[string]interface{}{"moduleId": "mod_1", "answers": []interface{}{}}, http.StatusUnauthorized, "Invalid token"},
		{"submit without answers", http.MethodPost, "/api/submit", auth.Token, map[string]interface{}{"moduleId": "mod_1"}, http.StatusBadRequest, ""},
		{"submit unknown module", http.MethodPost, "/api/submit", auth.Token, map[string]interface{}{"moduleId": "nope", "answers": []interface{}{}}, http.StatusNotFound, "Module not found"},
		{"submit empty quiz", http.MethodPost, "/api/submit", auth.Token, map[string]interface{}{"moduleId": "mod_empty", "answers": []interface{}{}}, http.StatusUnprocessableEntity, ""},
		{"progress without token", http.MethodGet, "/api/progress", "", nil, http.StatusUnauthorized, "Missing Authorization header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(t, a, tt.method, tt.path, tt.token, tt.body)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d (%s)", tt.status, w.Code, w.Body.String())
			}
			if msg := errorOf(t, w); msg == "" || (tt.error != "" && msg != tt.error) {
				t.Fatalf("unexpected error message %q", msg)
			}
		})
	}
}

func TestAnalyticsCanRequireAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Analytics.Public = false
	a, _ := newTestApp(t, cfg)

	w := call(t, a, http.MethodGet, "/api/analytics", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = call(t, a, http.MethodPost, "/api/register", "", map[string]string{"email": "ada@example.com", "password": "secret"})
	var auth model.AuthResult
	decode(t, w, &auth)

	w = call(t, a, http.MethodGet, "/api/analytics", auth.Token, nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected empty list, got %d %s", w.Code, w.Body.String())
	}
}

func TestDashboardWithInvalidTokenIsAnonymous(t *testing.T) {
	a, _ := newTestApp(t, testConfig())

	w := call(t, a, http.MethodGet, "/api/dashboard", "garbage", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var dashboard []model.DashboardModule
	decode(t, w, &dashboard)
	for _, m := range dashboard {
		if m.Status != model.ProgressNotStarted {
			t.Fatalf("expected not started, got %+v", m)
		}
	}
}

func TestProfileOfDeletedUser(t *testing.T) {
	a, store := newTestApp(t, testConfig())
	w := call(t, a, http.MethodPost, "/api/register", "", map[string]string{"email": "ada@example.com", "password": "secret"})
	var auth model.AuthResult
	decode(t, w, &auth)

	if err := store.Update(context.Background(), func(s *model.Snapshot) error {
		s.Users = nil
		return nil
	}); err != nil {
		t.Fatalf("remove users: %v", err)
	}

	w = call(t, a, http.MethodGet, "/api/profile", auth.Token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	a, _ := newTestApp(t, testConfig())

	w := call(t, a, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}

	w = call(t, a, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("http_requests_total")) {
		t.Fatalf("metrics endpoint missing request counter")
	}
}

func TestCORSPreflight(t *testing.T) {
	a, _ := newTestApp(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

type unavailableStore struct{}

func (unavailableStore) Read(context.Context) (*model.Snapshot, error) {
	return nil, errors.New("connection refused")
}

func (unavailableStore) Write(context.Context, *model.Snapshot) error {
	return errors.New("connection refused")
}

func (unavailableStore) Update(context.Context, func(*model.Snapshot) error) error {
	return errors.New("connection refused")
}

func TestHealthReportsStoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := NewWithStore(testConfig(), unavailableStore{})

	w := call(t, a, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	w = call(t, a, http.MethodGet, "/api/modules", "", nil)
	if w.Code != http.StatusInternalServerError || errorOf(t, w) != "Internal server error" {
		t.Fatalf("expected opaque 500, got %d %s", w.Code, w.Body.String())
	}
}
