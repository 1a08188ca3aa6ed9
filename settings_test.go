package main

import (
	"testing"
	"time"

	"gotest.tools/assert"

	"dscheirer.com/bcdsegment/ca3161"
)

func TestTestConfig(t *testing.T) {
	assert.Equal(t, testSettings.GetDuration(sDelay), time.Second)
	assert.Equal(t, testSettings.GetString(sPort), portLog)
	assert.Equal(t, testSettings.GetByte(sI2CDev), byte(0x20))
	assert.Equal(t, testSettings.GetInt(sI2CBus), 1)
	assert.Equal(t, testSettings.GetBool(sI2CSim), true)
	assert.Equal(t, testSettings.GetInt(sResetButton), -1)

	l, err := layoutFromSettings(testSettings)
	assert.NilError(t, err)
	assert.Equal(t, l, ca3161.DefaultLayout)
}

func TestSettingsDefaults(t *testing.T) {
	s := defaultSettings()
	// missing keys keep their defaults
	assert.NilError(t, s.settingsFromJSON([]byte(`{"unrelated": 5}`)))

	assert.Equal(t, s.GetDuration(sDelay), 1000*time.Millisecond)
	assert.Equal(t, s.GetByte(sSymbolOffset), byte(1))
	assert.Equal(t, s.GetByte(sPointBit), byte(5))
	assert.Equal(t, s.GetByte(sReservedBit), byte(0))
	assert.Equal(t, s.GetString(sMQTTTopic), "bcdsegment/status")
	assert.Equal(t, s.GetString(sStatusAddr), "")
}

func TestSettingsFromJSON(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{
		"segmentDelay": "250ms",
		"symbolBitOffset": "0x04",
		"pointBitIndex": 0,
		"reservedInputBit": 1,
		"port": "pcf8574",
		"i2c_bus": 3,
		"debug_dump": "TRUE",
		"i2c_simulated": false,
		"resetButton": 26,
		"statusSecret": null
	}`))
	assert.NilError(t, err)

	assert.Equal(t, s.GetDuration(sDelay), 250*time.Millisecond)
	assert.Equal(t, s.GetString(sPort), portPCF8574)
	assert.Equal(t, s.GetInt(sI2CBus), 3)
	assert.Equal(t, s.GetBool(sDebug), true)
	assert.Equal(t, s.GetBool(sI2CSim), false)
	assert.Equal(t, s.GetInt(sResetButton), 26)
	assert.Equal(t, s.GetString(sStatusSecret), "")

	l, err := layoutFromSettings(s)
	assert.NilError(t, err)
	assert.Equal(t, l, ca3161.Layout{SymbolOffset: 4, PointBit: 0, ReservedInputBit: 1})
}

func TestSettingsBadValues(t *testing.T) {
	tests := []struct {
		name string
		json string
		err  string
	}{
		{"duration", `{"segmentDelay": "soon"}`, "setting segmentDelay"},
		{"duration number", `{"segmentDelay": 1000}`, "setting segmentDelay"},
		{"byte range", `{"pointBitIndex": 300}`, "300 is not a byte"},
		{"byte string", `{"pointBitIndex": "five"}`, "setting pointBitIndex"},
		{"bool", `{"debug_dump": "maybe"}`, "setting debug_dump"},
		{"int", `{"resetButton": "x"}`, "setting resetButton"},
		{"string", `{"port": 5}`, "setting port"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := defaultSettings()
			assert.ErrorContains(t, s.settingsFromJSON([]byte(tc.json)), tc.err)
		})
	}
}

func TestSettingsBadLayout(t *testing.T) {
	s := testSettings.clone()
	s.Set(sPointBit, byte(3))
	_, err := layoutFromSettings(s)
	assert.ErrorContains(t, err, "overlaps the symbol field")

	// the original is untouched
	assert.Equal(t, testSettings.GetByte(sPointBit), byte(5))
}

func TestInitSettingsMissingFile(t *testing.T) {
	s, err := initSettings("./test/nope.conf")
	assert.ErrorContains(t, err, "could not load conf file")
	// defaults still come back
	assert.Equal(t, s.GetDuration(sDelay), time.Second)
}
