package admin

import (
	"github.com/abhisek/lifewheel/internal/advice"
	"github.com/abhisek/lifewheel/internal/store"
	"github.com/abhisek/lifewheel/internal/wheel"
)

// dashboardLoadedMsg carries the users and entries behind every tab.
type dashboardLoadedMsg struct {
	Users   []store.User
	Entries []wheel.Entry
	Err     error
}

// settingsSavedMsg acknowledges a settings save.
type settingsSavedMsg struct {
	Settings advice.Settings
	Err      error
}

// broadcastRecordedMsg acknowledges a simulated notification.
type broadcastRecordedMsg struct {
	Channel    string
	Recipients int
	Err        error
}
