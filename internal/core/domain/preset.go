package domain

import "errors"

// ErrPresetNameRequired rejects saving a preset without a name, the key
// presets are upserted by.
var ErrPresetNameRequired = errors.New("preset name is required")

// FilterPreset is a saved dashboard query, keyed by Name. Applying a preset
// copies its fields into the dashboard filter controls; it carries no logic of
// its own.
type FilterPreset struct {
	Name     string `json:"name"`
	User     string `json:"user,omitempty"`
	Client   string `json:"client,omitempty"`
	Status   string `json:"status,omitempty"`
	FromDate string `json:"from_date,omitempty"`
	ToDate   string `json:"to_date,omitempty"`
}
