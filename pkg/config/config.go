package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cbodonnell/pong/pkg/game/constants"
	"github.com/cbodonnell/pong/pkg/kinematic"
	"github.com/joho/godotenv"
)

const (
	// DefaultDatabaseURL stores match history in a local SQLite file
	DefaultDatabaseURL = "sqlite://pong.db"
	// DefaultCompression is the frame codec used on the wire
	DefaultCompression = "zstd"
)

// Config holds the runtime settings that are not process flags.
type Config struct {
	// DatabaseURL selects the match history store: sqlite://<path>, postgresql://..., or memory://
	DatabaseURL string
	// Compression is one of zstd, snappy, none
	Compression string
	// FirebaseProjectID enables token verification on connect when set
	FirebaseProjectID string
	// FirebaseAPIKey is passed to the Firebase client
	FirebaseAPIKey string
	// Game holds the match tunables
	Game GameConfig
}

// GameConfig holds every tunable of the simulation.
type GameConfig struct {
	BoardWidth        float64
	BoardHeight       float64
	PaddleWidth       float64
	PaddleHeight      float64
	PaddleInset       float64
	PaddleSpeed       float64
	BallRadius        float64
	ServeSpeed        float64
	ServeMaxVY        float64
	SpinFactor        float64
	WallMargin        float64
	PaddleMargin      float64
	OutOfBoundsMargin float64
	WinningScore      int
	TickRate          int
	IdleBroadcastRate int
	RespawnDelay      time.Duration
}

// DefaultGameConfig returns the game tunables with their default values.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		BoardWidth:        constants.BoardWidth,
		BoardHeight:       constants.BoardHeight,
		PaddleWidth:       constants.PaddleWidth,
		PaddleHeight:      constants.PaddleHeight,
		PaddleInset:       constants.PaddleInset,
		PaddleSpeed:       constants.PaddleSpeed,
		BallRadius:        constants.BallRadius,
		ServeSpeed:        constants.ServeSpeed,
		ServeMaxVY:        constants.ServeMaxVY,
		SpinFactor:        constants.SpinFactor,
		WallMargin:        constants.WallMargin,
		PaddleMargin:      constants.PaddleMargin,
		OutOfBoundsMargin: constants.OutOfBoundsMargin,
		WinningScore:      constants.WinningScore,
		TickRate:          constants.TickRate,
		IdleBroadcastRate: constants.IdleBroadcastRate,
		RespawnDelay:      constants.RespawnDelay,
	}
}

// TickInterval is the period of the physics ticker.
func (c GameConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// IdleInterval is the period of the idle broadcast ticker.
func (c GameConfig) IdleInterval() time.Duration {
	return time.Second / time.Duration(c.IdleBroadcastRate)
}

// MaxPaddleY is the largest valid paddle position.
func (c GameConfig) MaxPaddleY() float64 {
	return c.BoardHeight - c.PaddleHeight
}

// PaddlePlane returns the x coordinate of the face of the given slot's paddle.
func (c GameConfig) PaddlePlane(slot int) float64 {
	if slot == 0 {
		return c.PaddleInset + c.PaddleWidth
	}
	return c.BoardWidth - c.PaddleInset - c.PaddleWidth
}

// ClampPaddleY clamps a paddle position into [0, MaxPaddleY].
func (c GameConfig) ClampPaddleY(y float64) float64 {
	return kinematic.Clamp(y, 0, c.MaxPaddleY())
}

// Validate reports the first inconsistent tunable.
func (c GameConfig) Validate() error {
	positive := map[string]float64{
		"board width":   c.BoardWidth,
		"board height":  c.BoardHeight,
		"paddle width":  c.PaddleWidth,
		"paddle height": c.PaddleHeight,
		"paddle speed":  c.PaddleSpeed,
		"ball radius":   c.BallRadius,
		"serve speed":   c.ServeSpeed,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, v)
		}
	}
	if c.ServeMaxVY < 0 || c.SpinFactor < 0 || c.WallMargin < 0 || c.PaddleMargin < 0 || c.OutOfBoundsMargin < 0 || c.PaddleInset < 0 {
		return fmt.Errorf("margins, spin and serve spread must not be negative")
	}
	if c.PaddleHeight >= c.BoardHeight {
		return fmt.Errorf("paddle height %v must be smaller than board height %v", c.PaddleHeight, c.BoardHeight)
	}
	if c.PaddlePlane(0) >= c.PaddlePlane(1) {
		return fmt.Errorf("paddles overlap on a board of width %v", c.BoardWidth)
	}
	if c.WinningScore < 1 {
		return fmt.Errorf("winning score must be at least 1, got %d", c.WinningScore)
	}
	if c.TickRate < 1 || c.IdleBroadcastRate < 1 {
		return fmt.Errorf("tick rate and idle broadcast rate must be at least 1")
	}
	if c.RespawnDelay < 0 {
		return fmt.Errorf("respawn delay must not be negative, got %v", c.RespawnDelay)
	}
	return nil
}

// Load reads the configuration from the environment.
// If envFile is non-empty and exists it is loaded first; variables already set win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %v", envFile, err)
		}
	}

	cfg := &Config{
		DatabaseURL:       getString("PONG_DATABASE_URL", DefaultDatabaseURL),
		Compression:       strings.ToLower(getString("PONG_COMPRESSION", DefaultCompression)),
		FirebaseProjectID: getString("PONG_FIREBASE_PROJECT_ID", ""),
		FirebaseAPIKey:    getString("PONG_FIREBASE_API_KEY", ""),
		Game:              DefaultGameConfig(),
	}

	g := &cfg.Game
	floats := []struct {
		key  string
		dest *float64
	}{
		{"PONG_BOARD_WIDTH", &g.BoardWidth},
		{"PONG_BOARD_HEIGHT", &g.BoardHeight},
		{"PONG_PADDLE_WIDTH", &g.PaddleWidth},
		{"PONG_PADDLE_HEIGHT", &g.PaddleHeight},
		{"PONG_PADDLE_INSET", &g.PaddleInset},
		{"PONG_PADDLE_SPEED", &g.PaddleSpeed},
		{"PONG_BALL_RADIUS", &g.BallRadius},
		{"PONG_SERVE_SPEED", &g.ServeSpeed},
		{"PONG_SERVE_MAX_VY", &g.ServeMaxVY},
		{"PONG_SPIN_FACTOR", &g.SpinFactor},
		{"PONG_WALL_MARGIN", &g.WallMargin},
		{"PONG_PADDLE_MARGIN", &g.PaddleMargin},
		{"PONG_OUT_OF_BOUNDS_MARGIN", &g.OutOfBoundsMargin},
	}
	for _, f := range floats {
		if err := parseFloat(f.key, f.dest); err != nil {
			return nil, err
		}
	}

	ints := []struct {
		key  string
		dest *int
	}{
		{"PONG_WINNING_SCORE", &g.WinningScore},
		{"PONG_TICK_RATE", &g.TickRate},
		{"PONG_IDLE_BROADCAST_RATE", &g.IdleBroadcastRate},
	}
	for _, i := range ints {
		if err := parseInt(i.key, i.dest); err != nil {
			return nil, err
		}
	}

	if v, ok := lookup("PONG_RESPAWN_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PONG_RESPAWN_DELAY: %v", err)
		}
		g.RespawnDelay = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	switch c.Compression {
	case "zstd", "snappy", "none":
	default:
		return fmt.Errorf("unknown compression %q", c.Compression)
	}
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("invalid game config: %v", err)
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func getString(key, def string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return def
}

func parseFloat(key string, dest *float64) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %v", key, err)
	}
	*dest = f
	return nil
}

func parseInt(key string, dest *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %v", key, err)
	}
	*dest = i
	return nil
}
