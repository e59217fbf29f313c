package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EngineConfig carries tunable defaults of the pricing engine. The calculation
// rules themselves are fixed; only presentation-ish knobs live here.
type EngineConfig struct {
	DefaultCurrency string `mapstructure:"defaultCurrency"`
	CodePrefix      string `mapstructure:"codePrefix"`
	AmountScale     int32  `mapstructure:"amountScale"`
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DefaultCurrency: "TRY",
		CodePrefix:      "TRF",
		AmountScale:     4,
	}
}

// EngineConfigHolder exposes the current EngineConfig and hot-reloads it when
// the backing file changes. Readers always see a complete, validated snapshot.
type EngineConfigHolder struct {
	current atomic.Value // holds EngineConfig
}

func NewEngineConfigHolder(log *zap.Logger) (*EngineConfigHolder, error) {
	log = log.Named("engine.config")
	v := viper.New()

	v.SetConfigName("engine")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/tarife")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TARIFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultEngineConfig()
		v.SetDefault("engine.defaultCurrency", defaults.DefaultCurrency)
		v.SetDefault("engine.codePrefix", defaults.CodePrefix)
		v.SetDefault("engine.amountScale", defaults.AmountScale)
	}

	var cfg EngineConfig
	if err := v.UnmarshalKey("engine", &cfg); err != nil {
		return nil, err
	}
	if err := validateEngineConfig(cfg); err != nil {
		return nil, err
	}

	holder := &EngineConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated EngineConfig
		if err := v.UnmarshalKey("engine", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateEngineConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *EngineConfigHolder) Get() EngineConfig {
	return h.current.Load().(EngineConfig)
}

// NewStaticEngineConfigHolder returns a holder pinned to cfg. Test helper.
func NewStaticEngineConfigHolder(cfg EngineConfig) *EngineConfigHolder {
	holder := &EngineConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateEngineConfig(cfg EngineConfig) error {
	if strings.TrimSpace(cfg.DefaultCurrency) == "" {
		return errors.New("engine.defaultCurrency cannot be empty")
	}
	if strings.TrimSpace(cfg.CodePrefix) == "" {
		return errors.New("engine.codePrefix cannot be empty")
	}
	if cfg.AmountScale < 0 || cfg.AmountScale > 8 {
		return errors.New("engine.amountScale must be between 0 and 8")
	}
	return nil
}
