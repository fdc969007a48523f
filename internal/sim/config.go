package sim

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// MakerConfig parameterizes the market maker.
type MakerConfig struct {
	// Markup is the fractional offset from the reference price for quotes.
	Markup float64
	// Size is the quoted size on each side.
	Size float64
	// Cash and Lots are the starting balances.
	Cash float64
	Lots float64
}

// NoiseConfig parameterizes one noise trader.
type NoiseConfig struct {
	// Size is the fixed order size.
	Size float64
	// Vol is the standard deviation of the price draw around the mid.
	Vol float64
	// Cash and Lots are the starting balances.
	Cash float64
	Lots float64
}

// Config holds the full simulation configuration.
type Config struct {
	// Ticks is the number of ticks to run (the run may stop earlier on
	// bankruptcy).
	Ticks int
	// BasePrice is the starting reference price.
	BasePrice float64
	// Drift and Volatility parameterize the reference-price random walk.
	Drift      float64
	Volatility float64
	// Maker configures the market maker.
	Maker MakerConfig
	// Noise configures the noise traders.
	Noise NoiseConfig
	// NoiseTraders is how many noise traders to create. The first one is
	// the tracked trader whose portfolio series is the run's output.
	NoiseTraders int
	// Seed seeds the run; every stochastic component derives its own
	// generator from it so runs are replayable.
	Seed int64
	// EventBuffer is the size of the tick events channel.
	EventBuffer int
	// DropEvents determines whether the events channel drops on overflow.
	DropEvents bool
	// TickDelay is an optional pause between ticks, for interactive runs.
	TickDelay time.Duration
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Ticks:      100_000,
		BasePrice:  100,
		Drift:      0,
		Volatility: 0.25,
		Maker: MakerConfig{
			Markup: 0.01,
			Size:   100,
			Cash:   10e10,
			Lots:   10e10,
		},
		Noise: NoiseConfig{
			Size: 5,
			Vol:  25,
			Cash: 50_000,
			Lots: 100,
		},
		NoiseTraders: 1,
		Seed:         1,
		EventBuffer:  1024,
		DropEvents:   true,
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: env > .env file > defaults.
func LoadFromEnv() Config {
	cfg := DefaultConfig()

	_ = godotenv.Load() // optional; absent .env is fine

	if v, ok := lookupInt("SIM_TICKS"); ok {
		cfg.Ticks = v
	}
	if v, ok := lookupFloat("SIM_BASE_PRICE"); ok {
		cfg.BasePrice = v
	}
	if v, ok := lookupFloat("SIM_DRIFT"); ok {
		cfg.Drift = v
	}
	if v, ok := lookupFloat("SIM_VOLATILITY"); ok {
		cfg.Volatility = v
	}
	if v, ok := lookupFloat("MAKER_MARKUP"); ok {
		cfg.Maker.Markup = v
	}
	if v, ok := lookupFloat("MAKER_SIZE"); ok {
		cfg.Maker.Size = v
	}
	if v, ok := lookupFloat("NOISE_SIZE"); ok {
		cfg.Noise.Size = v
	}
	if v, ok := lookupFloat("NOISE_VOL"); ok {
		cfg.Noise.Vol = v
	}
	if v, ok := lookupFloat("NOISE_CASH"); ok {
		cfg.Noise.Cash = v
	}
	if v, ok := lookupFloat("NOISE_LOTS"); ok {
		cfg.Noise.Lots = v
	}
	if v, ok := lookupInt("NOISE_TRADERS"); ok {
		cfg.NoiseTraders = v
	}
	if v, ok := lookupInt("SIM_SEED"); ok {
		cfg.Seed = int64(v)
	}
	if v, ok := lookupInt("SIM_TICK_DELAY_MS"); ok {
		cfg.TickDelay = time.Duration(v) * time.Millisecond
	}

	return cfg
}

func lookupInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func lookupFloat(key string) (float64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
