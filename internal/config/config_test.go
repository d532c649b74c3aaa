package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalConfig = `
[business]
base_address = "4315 Village Springs Pl, Dallas, TX"
time_zone = "America/Chicago"

[calendar]
url = "https://calendar.example.com"

[geocoding]
url = "https://geocode.example.com"

[routing]
url = "https://routes.example.com"
`

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 8, cfg.Business.OpenHour)
	assert.Equal(t, 18, cfg.Business.CloseHour)
	assert.Equal(t, 10, cfg.Engine.SlotGranularityMinutes)
	assert.Equal(t, 120, cfg.Engine.MinBookableGapMinutes)
	assert.Equal(t, 240, cfg.Engine.WideGapExposureMinutes)
	assert.Equal(t, 30, cfg.Engine.DefaultTravelMinutes)
	assert.True(t, cfg.Engine.EnforceReturnToBase)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[engine]
slot_granularity_minutes = 15
enforce_return_to_base = false
`))
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Engine.SlotGranularityMinutes)
	assert.False(t, cfg.Engine.EnforceReturnToBase)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing base address", `
[business]
time_zone = "UTC"

[calendar]
url = "https://c"

[geocoding]
url = "https://g"

[routing]
url = "https://r"
`},
		{"bad time zone", `
[business]
base_address = "x"
time_zone = "Not/AZone"

[calendar]
url = "https://c"

[geocoding]
url = "https://g"

[routing]
url = "https://r"
`},
		{"open after close", `
[business]
base_address = "x"
time_zone = "UTC"
open_hour = 18
close_hour = 8

[calendar]
url = "https://c"

[geocoding]
url = "https://g"

[routing]
url = "https://r"
`},
		{"invalid port", minimalConfig + `
[server]
http_port = -1
`},
		{"missing calendar url", `
[business]
base_address = "x"
time_zone = "UTC"

[geocoding]
url = "https://g"

[routing]
url = "https://r"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestBusinessRules(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	rules := cfg.BusinessRules()

	assert.Equal(t, "America/Chicago", rules.TimeZone)
	assert.Equal(t, []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}, rules.AllowedWeekdays)
	assert.Equal(t, "4315 Village Springs Pl, Dallas, TX", rules.BaseAddress)
}
