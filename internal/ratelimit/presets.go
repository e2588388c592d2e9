package ratelimit

import "time"

// Preset is a named max-requests-per-window policy. Policy data only; the
// window math lives in Store.
type Preset struct {
	Name   string
	Max    int
	Window time.Duration
}

var (
	// Strict protects authentication endpoints against brute force.
	Strict = Preset{Name: "strict", Max: 5, Window: 15 * time.Minute}

	// Moderate is the general API default.
	Moderate = Preset{Name: "moderate", Max: 100, Window: time.Minute}

	// Generous covers read-only/public endpoints.
	Generous = Preset{Name: "generous", Max: 200, Window: time.Minute}
)
