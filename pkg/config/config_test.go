package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cbodonnell/pong/pkg/game/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, DefaultCompression, cfg.Compression)
	assert.Equal(t, DefaultGameConfig(), cfg.Game)
	assert.Equal(t, constants.WinningScore, cfg.Game.WinningScore)
}

func TestLoad_environmentOverrides(t *testing.T) {
	t.Setenv("PONG_WINNING_SCORE", "5")
	t.Setenv("PONG_TICK_RATE", "120")
	t.Setenv("PONG_SERVE_SPEED", "7.5")
	t.Setenv("PONG_RESPAWN_DELAY", "250ms")
	t.Setenv("PONG_COMPRESSION", "Snappy")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Game.WinningScore)
	assert.Equal(t, 120, cfg.Game.TickRate)
	assert.Equal(t, 7.5, cfg.Game.ServeSpeed)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.RespawnDelay)
	assert.Equal(t, "snappy", cfg.Compression)
}

func TestLoad_envFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PONG_BOARD_HEIGHT=400\nPONG_DATABASE_URL=memory://\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PONG_BOARD_HEIGHT")
		os.Unsetenv("PONG_DATABASE_URL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 400.0, cfg.Game.BoardHeight)
	assert.Equal(t, "memory://", cfg.DatabaseURL)
}

func TestLoad_missingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	assert.NoError(t, err)
}

func TestLoad_invalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "not a number", key: "PONG_BOARD_WIDTH", value: "wide"},
		{name: "zero tick rate", key: "PONG_TICK_RATE", value: "0"},
		{name: "paddle taller than board", key: "PONG_PADDLE_HEIGHT", value: "900"},
		{name: "bad duration", key: "PONG_RESPAWN_DELAY", value: "soon"},
		{name: "unknown codec", key: "PONG_COMPRESSION", value: "lz4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestGameConfig_geometry(t *testing.T) {
	g := DefaultGameConfig()

	assert.Equal(t, g.PaddleInset+g.PaddleWidth, g.PaddlePlane(0))
	assert.Equal(t, g.BoardWidth-g.PaddleInset-g.PaddleWidth, g.PaddlePlane(1))
	assert.Equal(t, 0.0, g.ClampPaddleY(-50))
	assert.Equal(t, g.BoardHeight-g.PaddleHeight, g.ClampPaddleY(g.BoardHeight))
	assert.Equal(t, 42.0, g.ClampPaddleY(42))
	assert.Equal(t, time.Second/60, g.TickInterval())
}
