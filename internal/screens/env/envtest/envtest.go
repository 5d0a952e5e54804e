// Package envtest builds screen environments over an in-memory store.
package envtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/advice"
	"github.com/abhisek/lifewheel/internal/assessment"
	"github.com/abhisek/lifewheel/internal/llm"
	"github.com/abhisek/lifewheel/internal/metrics"
	"github.com/abhisek/lifewheel/internal/narrative"
	"github.com/abhisek/lifewheel/internal/screens/env"
	"github.com/abhisek/lifewheel/internal/store"
	"github.com/abhisek/lifewheel/internal/wheel"
)

// AdminMobile is allow-listed by every environment built here.
const AdminMobile = "09120000001"

// Fixture is a test environment plus the store behind it.
type Fixture struct {
	Env      *env.Env
	Store    *store.Store
	Registry *prometheus.Registry
}

// New opens a private in-memory store named after the test. provider
// may be nil, in which case narratives report the service as
// unavailable.
func New(t testing.TB, provider llm.Provider) *Fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	set := wheel.DefaultCategories()
	reg := prometheus.NewRegistry()
	cfg := assessment.DefaultConfig()
	cfg.SettleDuration = time.Millisecond

	e := &env.Env{
		Accounts:   account.NewService(st.UserRepo(), account.NewAdminPolicy(AdminMobile), nil),
		Users:      st.UserRepo(),
		History:    st.HistoryRepo(),
		SettingsDB: st.SettingsRepo(),
		Deliveries: st.DeliveryRepo(),
		Narratives: narrative.NewService(provider, set, narrative.DefaultConfig(), nil),
		Metrics:    metrics.MustNewMetrics(reg),
		Categories: set,
		Assessment: cfg,
		Settings:   advice.DefaultSettings(),
	}
	return &Fixture{Env: e, Store: st, Registry: reg}
}

// SignIn registers name/mobile and makes it the current identity.
func (f *Fixture) SignIn(t testing.TB, name, mobile string) account.Identity {
	t.Helper()
	id, err := f.Env.Accounts.Register(context.Background(), account.RegisterInput{
		Name:   name,
		Mobile: mobile,
		Age:    30,
		Email:  strings.ToLower(name) + "@example.com",
	})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	f.Env.Identity = id
	return id
}

// Seed appends an entry with every category at v for userID.
func (f *Fixture) Seed(t testing.TB, userID string, v int, at time.Time) wheel.Entry {
	t.Helper()
	scores := wheel.Scores{}
	for _, id := range f.Env.Categories.IDs() {
		scores[id] = v
	}
	e := wheel.NewEntry(userID, scores, "", at)
	if err := f.Env.History.Append(context.Background(), e); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	return e
}
