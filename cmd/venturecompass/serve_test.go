package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1234bibhash/venture-idea-compass/internal/config"
	"github.com/1234bibhash/venture-idea-compass/internal/logging"
)

func TestServeShutsDownAndSavesState(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	cfg.Store = config.StoreConfig{Driver: "memory"}
	cfg.StateFile = filepath.Join(t.TempDir(), "state.json")
	cfg.PDF.Enabled = false
	cfg.WebDir = ""

	a := &app{cfg: cfg, logger: logging.Discard()}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, a.serve(ctx))
	_, err := os.Stat(cfg.StateFile)
	assert.NoError(t, err)
}

func TestServeFailsOnBadStore(t *testing.T) {
	cfg := config.Default()
	cfg.Store = config.StoreConfig{Driver: "oracle", DSN: "x"}
	a := &app{cfg: cfg, logger: logging.Discard()}
	assert.Error(t, a.serve(context.Background()))
}
