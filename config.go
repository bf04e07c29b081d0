package entitycache

import (
	"fmt"

	"github.com/hupe1980/entitycache/idset"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// LoadFactorKey is the config key of Config.LoadFactor.
	LoadFactorKey = "cache.max-compressed-set-load-factor"

	// UseBitSetsKey is the config key of Config.UseBitSets.
	UseBitSetsKey = "cache.use-bit-sets"
)

// Config holds the set selection settings. They are read once when a Factory
// is created.
type Config struct {
	LoadFactor float64
	UseBitSets bool
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		LoadFactor: idset.DefaultLoadFactor,
		UseBitSets: true,
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	if !(c.LoadFactor > 0) {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, LoadFactorKey, c.LoadFactor)
	}
	return nil
}

// RegisterFlags adds the cache flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.Float64(LoadFactorKey, d.LoadFactor, "Maximum ratio of id range to id count for bit-vector id sets")
	fs.Bool(UseBitSetsKey, d.UseBitSets, "Store dense cached id sets as bit-vectors")
}

// LoadConfig reads the cache settings from v, falling back to DefaultConfig
// for unset keys.
func LoadConfig(v *viper.Viper) (Config, error) {
	d := DefaultConfig()
	v.SetDefault(LoadFactorKey, d.LoadFactor)
	v.SetDefault(UseBitSetsKey, d.UseBitSets)

	cfg := Config{
		LoadFactor: v.GetFloat64(LoadFactorKey),
		UseBitSets: v.GetBool(UseBitSetsKey),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
