package viewer

import "time"

// Settings are the server-configured viewer knobs. Clients fetch them from
// the gate before opening a session so every viewer enforces the same
// cooldown and zoom bounds.
type Settings struct {
	CooldownSeconds int     `json:"cooldown_seconds"`
	MinScale        float64 `json:"min_scale"`
	MaxScale        float64 `json:"max_scale"`
}

// SurfaceConfig converts the settings into render-surface zoom bounds.
func (s *Settings) SurfaceConfig() SurfaceConfig {
	return SurfaceConfig{
		MinScale: s.MinScale,
		MaxScale: s.MaxScale,
	}
}

// GuardConfig converts the settings into a guard configuration for the
// given watermark identity.
func (s *Settings) GuardConfig(identity string) GuardConfig {
	return GuardConfig{
		Identity: identity,
		Cooldown: time.Duration(s.CooldownSeconds) * time.Second,
	}
}
