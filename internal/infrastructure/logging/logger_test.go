package logging

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  hclog.Level
	}{
		{level: "debug", want: hclog.Debug},
		{level: "warn", want: hclog.Warn},
		{level: "off", want: hclog.Off},
		{level: "", want: hclog.Info},
		{level: "nonsense", want: hclog.Info},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(Options{Level: tt.level, Output: &bytes.Buffer{}})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNew_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "info", Output: &buf})

	logger.Info("pass complete", "values", 6)
	logger.Debug("hidden")

	assert.Contains(t, buf.String(), "buildprep: pass complete")
	assert.Contains(t, buf.String(), "values=6")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "info", JSON: true, Output: &buf})

	logger.Info("hello")

	assert.Contains(t, buf.String(), `"@message":"hello"`)
}
