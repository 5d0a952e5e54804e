// Package env carries the collaborators shared by every TUI screen.
package env

import (
	"context"
	"log/slog"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/advice"
	"github.com/abhisek/lifewheel/internal/assessment"
	"github.com/abhisek/lifewheel/internal/metrics"
	"github.com/abhisek/lifewheel/internal/narrative"
	"github.com/abhisek/lifewheel/internal/store"
	"github.com/abhisek/lifewheel/internal/wheel"
)

// Env is built once per program. Screens hold a pointer to it; only
// the update loop touches Identity and Settings.
type Env struct {
	Accounts   *account.Service
	Users      store.UserRepo
	History    store.HistoryRepo
	SettingsDB store.SettingsRepo
	Deliveries store.DeliveryRepo
	Narratives *narrative.Service
	Metrics    *metrics.Metrics

	Categories wheel.CategorySet
	Assessment assessment.Config
	Logger     *slog.Logger

	// Identity is the signed-in user, empty before registration.
	Identity account.Identity

	// Settings is the copy loaded at start, replaced after an admin save.
	Settings advice.Settings
}

// LoadSettings reads the stored copy into e.Settings. On failure the
// defaults stay in place and the error is returned for logging.
func (e *Env) LoadSettings(ctx context.Context) error {
	e.Settings = advice.DefaultSettings()
	if e.SettingsDB == nil {
		return nil
	}
	s, err := e.SettingsDB.Get(ctx)
	if err != nil {
		return err
	}
	e.Settings = s
	return nil
}

// Log returns the logger, never nil.
func (e *Env) Log() *slog.Logger {
	if e == nil || e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// Who is the header label for the signed-in user.
func (e *Env) Who() string {
	if e == nil || e.Identity.Anonymous() {
		return ""
	}
	if e.Identity.IsAdmin() {
		return e.Identity.Name + " · admin"
	}
	return e.Identity.Name
}
