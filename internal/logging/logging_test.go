package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterLineShape(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("debug", "", &buf)
	require.NoError(t, err)

	log.WithFields(logrus.Fields{"token": "abc", "template": "sample"}).Warn("analysis queued")
	line := buf.String()
	assert.Contains(t, line, "[WARN] [logging_test.go:")
	assert.True(t, strings.HasSuffix(line, "analysis queued template=sample token=abc\n"), line)
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("chatty", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestFileSinkReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "venturecompass.log")
	log, err := NewWithWriter("info", path, &buf)
	require.NoError(t, err)

	log.Info("server started")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "server started")
	assert.Contains(t, buf.String(), "server started")
}
