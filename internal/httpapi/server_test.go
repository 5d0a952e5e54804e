package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/advice"
	"github.com/abhisek/lifewheel/internal/metrics"
	"github.com/abhisek/lifewheel/internal/store"
	"github.com/abhisek/lifewheel/internal/wheel"
)

const (
	adminMobile = "09120000001"
	userMobile  = "09120000002"
)

type fixture struct {
	server *Server
	store  *store.Store
	admin  account.Identity
	user   account.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	accounts := account.NewService(st.UserRepo(), account.NewAdminPolicy(adminMobile), nil)
	ctx := context.Background()
	admin, err := accounts.Register(ctx, account.RegisterInput{Name: "Admin", Mobile: adminMobile, Age: 40})
	require.NoError(t, err)
	user, err := accounts.Register(ctx, account.RegisterInput{Name: "Sara", Mobile: userMobile, Age: 30})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	srv := NewServer(DefaultConfig(), Deps{
		Accounts:   accounts,
		Users:      st.UserRepo(),
		History:    st.HistoryRepo(),
		Settings:   st.SettingsRepo(),
		Categories: wheel.DefaultCategories(),
		Metrics:    metrics.MustNewMetrics(reg),
		Gatherer:   reg,
	})
	return &fixture{server: srv, store: st, admin: admin, user: user}
}

func (f *fixture) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Success bool   `json:"success"`
		Data    T      `json:"data"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Data
}

func uniform(v int) map[string]int {
	out := map[string]int{}
	for _, id := range wheel.DefaultCategories().IDs() {
		out[id] = v
	}
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])

	w = f.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `lifewheel_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestCategories(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/categories", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cats := decode[[]wheel.Category](t, w)
	require.Len(t, cats, 6)
	assert.Equal(t, "spirituality", cats[0].ID)
}

func TestClassify(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		scores map[string]int
		label  wheel.Classification
		status string
	}{
		{"all low", uniform(3), wheel.Low, advice.DefaultSettings().AdviceTemplateLow},
		{"all high", uniform(8), wheel.BalancedOrHigh, advice.DefaultSettings().AdviceTemplateHigh},
		{"spread", map[string]int{"spirituality": 10, "family": 10, "personal": 1, "social": 1, "health": 10, "work": 10}, wheel.Unbalanced, advice.DefaultSettings().AdviceTemplateUnbalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/classify", ClassifyRequest{Scores: tt.scores}, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			got := decode[ClassifyResponse](t, w)
			assert.Equal(t, tt.label, got.Label)
			assert.Equal(t, tt.status, got.Status)
		})
	}
}

func TestClassify_ClampsOutOfRange(t *testing.T) {
	f := newFixture(t)
	scores := uniform(5)
	scores["health"] = 0
	scores["work"] = 42

	w := f.do(t, http.MethodPost, "/api/classify", ClassifyRequest{Scores: scores}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[ClassifyResponse](t, w)
	assert.Equal(t, 1, got.Scores["health"])
	assert.Equal(t, 10, got.Scores["work"])
}

func TestClassify_Rejects(t *testing.T) {
	f := newFixture(t)

	incomplete := uniform(5)
	delete(incomplete, "family")
	unknown := uniform(5)
	unknown["hobbies"] = 5

	for name, scores := range map[string]map[string]int{"incomplete": incomplete, "unknown": unknown} {
		t.Run(name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/classify", ClassifyRequest{Scores: scores}, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	w := f.do(t, http.MethodPost, "/api/classify", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsers_RequiresAdmin(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/users", nil, nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/users", nil, map[string]string{AdminHeader: userMobile}).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/users", nil, map[string]string{AdminHeader: "0999999999"}).Code)

	w := f.do(t, http.MethodGet, "/api/users", nil, map[string]string{AdminHeader: adminMobile})
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]UserView](t, w)
	require.Len(t, users, 2)
	roles := map[string]string{}
	for _, u := range users {
		roles[u.Contact] = u.Role
	}
	assert.Equal(t, map[string]string{adminMobile: "ADMIN", userMobile: "USER"}, roles)
}

func TestUserHistoryAndTrend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := map[string]string{AdminHeader: adminMobile}
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := range 7 {
		scores := wheel.Scores{}
		for id, v := range uniform(i + 2) {
			scores[id] = v
		}
		require.NoError(t, f.store.HistoryRepo().Append(ctx, wheel.NewEntry(f.user.UserID, scores, "", base.AddDate(0, 0, 7*i))))
	}

	history := "/api/users/" + f.user.UserID + "/history"
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, history, nil, nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, history, nil, map[string]string{AdminHeader: userMobile}).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/users/"+f.user.UserID+"/trend", nil, map[string]string{AdminHeader: userMobile}).Code)

	w := f.do(t, http.MethodGet, history, nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]wheel.Entry](t, w), 7)

	w = f.do(t, http.MethodGet, "/api/users/"+f.user.UserID+"/trend", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	trend := decode[struct {
		Window int `json:"window"`
		Points []struct {
			Average float64 `json:"average"`
		} `json:"points"`
		Delta float64 `json:"delta"`
	}](t, w)
	assert.Equal(t, 5, trend.Window)
	require.Len(t, trend.Points, 5)
	assert.InDelta(t, 4.0, trend.Points[0].Average, 1e-9)
	assert.InDelta(t, 8.0, trend.Points[4].Average, 1e-9)
	assert.InDelta(t, 4.0, trend.Delta, 1e-9)

	w = f.do(t, http.MethodGet, "/api/users/"+f.user.UserID+"/trend?window=0", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"points":[]`)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/users/"+f.user.UserID+"/trend?window=x", nil, admin).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/users/nobody/history", nil, admin).Code)
}

func TestCategoryStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.store.HistoryRepo().Append(ctx, wheel.NewEntry(f.user.UserID, uniform(4), "", now)))
	require.NoError(t, f.store.HistoryRepo().Append(ctx, wheel.NewEntry(f.admin.UserID, uniform(8), "", now)))

	w := f.do(t, http.MethodGet, "/api/stats/categories", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[struct {
		Averages []struct {
			Average float64 `json:"average"`
			Count   int     `json:"count"`
		} `json:"averages"`
		Summary struct {
			Entries int `json:"entries"`
			Users   int `json:"users"`
		} `json:"summary"`
	}](t, w)
	require.Len(t, stats.Averages, 6)
	assert.InDelta(t, 6.0, stats.Averages[0].Average, 1e-9)
	assert.Equal(t, 2, stats.Averages[0].Count)
	assert.Equal(t, 2, stats.Summary.Entries)
	assert.Equal(t, 2, stats.Summary.Users)
}

func TestSettings(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/settings", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, advice.DefaultSettings(), decode[advice.Settings](t, w))

	updated := advice.DefaultSettings().With(advice.SlotLow, "Pick one area and start small.")

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPut, "/api/settings", updated, map[string]string{AdminHeader: userMobile}).Code)

	blank := updated.With(advice.SlotHigh, "  ")
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/api/settings", blank, map[string]string{AdminHeader: adminMobile}).Code)

	w = f.do(t, http.MethodPut, "/api/settings", updated, map[string]string{AdminHeader: adminMobile})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := f.store.SettingsRepo().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pick one area and start small.", got.AdviceTemplateLow)

	w = f.do(t, http.MethodPost, "/api/classify", ClassifyRequest{Scores: uniform(2)}, nil)
	assert.Equal(t, "Pick one area and start small.", decode[ClassifyResponse](t, w).Status)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LIFEWHEEL_SERVER_PORT", "9090")
	t.Setenv("LIFEWHEEL_CORS_ORIGINS", "https://a.example, ,https://b.example")
	cfg := ConfigFromEnv()
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}
