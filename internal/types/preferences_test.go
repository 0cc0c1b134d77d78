package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"valid array", `["go", "python"]`, []string{"go", "python"}},
		{"empty array", `[]`, []string{}},
		{"bare string", `"go"`, []string{}},
		{"object", `{"a": 1}`, []string{}},
		{"number", `42`, []string{}},
		{"null", `null`, nil},
		{"mixed array keeps strings", `["go", 7, null, "rust"]`, []string{"go", "rust"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			err := json.Unmarshal([]byte(tt.data), &l)
			require.NoError(t, err)
			assert.Equal(t, StringList(tt.want), l)
		})
	}
}

func TestStringList_MalformedFieldDoesNotFailDocument(t *testing.T) {
	var prefs Preferences
	err := json.Unmarshal([]byte(`{"keywords": "react", "hourly_rate_min": 40}`), &prefs)
	require.NoError(t, err)
	assert.Empty(t, prefs.Keywords)
	assert.Equal(t, 40, prefs.HourlyRateMin)
}

func TestPreferences_Normalize(t *testing.T) {
	prefs := &Preferences{
		Keywords:         StringList{"  Go ", "go", "", "React", "react  "},
		MinScoreToNotify: 0,
		HourlyRateMin:    -5,
	}
	prefs.Normalize()

	assert.Equal(t, StringList{"Go", "React"}, prefs.Keywords)
	assert.Equal(t, DefaultMinScoreToNotify, prefs.MinScoreToNotify)
	assert.Zero(t, prefs.HourlyRateMin)
	assert.NotNil(t, prefs.Locations)
	assert.NotNil(t, prefs.BlacklistedLocations)
}

func TestPreferences_NormalizeRejectsOutOfRangeThreshold(t *testing.T) {
	prefs := &Preferences{MinScoreToNotify: 250}
	prefs.Normalize()
	assert.Equal(t, DefaultMinScoreToNotify, prefs.MinScoreToNotify)
}

func TestPreferences_AutoSaveEnabled(t *testing.T) {
	prefs := DefaultPreferences()
	assert.True(t, prefs.AutoSaveEnabled(), "auto-save defaults on")

	off := false
	prefs.AutoSave = &off
	assert.False(t, prefs.AutoSaveEnabled())

	on := true
	prefs.AutoSave = &on
	assert.True(t, prefs.AutoSaveEnabled())
}

func TestPreferences_HasSyncedProfile(t *testing.T) {
	prefs := DefaultPreferences()
	assert.False(t, prefs.HasSyncedProfile())

	prefs.ProfileSummary = &ProfileSummary{Title: "   "}
	assert.False(t, prefs.HasSyncedProfile())

	prefs.ProfileSummary.Title = "Backend Engineer"
	assert.True(t, prefs.HasSyncedProfile())
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	assert.Equal(t, DefaultHourlyRateMax, prefs.HourlyRateMax)
	assert.Equal(t, DefaultMinScoreToNotify, prefs.MinScoreToNotify)
	assert.Empty(t, prefs.Keywords)
}
