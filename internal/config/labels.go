package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// LabelOverride replaces one label in both languages. Overrides are a list rather than a
// map because viper lowercases map keys and label keys are camelCase.
type LabelOverride struct {
	Key string `mapstructure:"key"`
	TR  string `mapstructure:"tr"`
	EN  string `mapstructure:"en"`
}

// LabelsHolder keeps the current label overrides and swaps them when labels.yml changes.
type LabelsHolder struct {
	current atomic.Value // holds map[string]map[string]string
}

// NewLabelsHolder reads labels.yml from LABELS_CONFIG_PATH or the default search paths.
// A missing file yields no overrides.
func NewLabelsHolder(cfg Config, logger *zap.Logger) (*LabelsHolder, error) {
	log := logger.Named("labels-config")
	v := viper.New()

	if cfg.LabelsConfigPath != "" {
		v.SetConfigFile(cfg.LabelsConfigPath)
	} else {
		v.SetConfigName("labels")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/fatura")
		v.AddConfigPath(".")
	}

	holder := &LabelsHolder{}
	holder.current.Store(map[string]map[string]string{})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return holder, nil
		}
		return nil, err
	}

	overrides, err := decodeLabels(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(overrides)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeLabels(v)
		if err != nil {
			log.Warn("invalid label overrides ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("label overrides reloaded", zap.String("file", e.Name), zap.Int("count", len(updated["tr"])))
	})

	return holder, nil
}

// NewStaticLabelsHolder serves a fixed set of overrides.
func NewStaticLabelsHolder(overrides []LabelOverride) (*LabelsHolder, error) {
	labels, err := buildLabels(overrides)
	if err != nil {
		return nil, err
	}
	holder := &LabelsHolder{}
	holder.current.Store(labels)
	return holder, nil
}

// Labels returns overrides keyed by language then label key.
func (h *LabelsHolder) Labels() map[string]map[string]string {
	if h == nil {
		return nil
	}
	return h.current.Load().(map[string]map[string]string)
}

func decodeLabels(v *viper.Viper) (map[string]map[string]string, error) {
	var overrides []LabelOverride
	if err := v.UnmarshalKey("labels", &overrides); err != nil {
		return nil, err
	}
	return buildLabels(overrides)
}

func buildLabels(overrides []LabelOverride) (map[string]map[string]string, error) {
	out := map[string]map[string]string{"tr": {}, "en": {}}
	for i, o := range overrides {
		key := strings.TrimSpace(o.Key)
		if key == "" {
			return nil, fmt.Errorf("labels[%d].key cannot be empty", i)
		}
		if o.TR == "" || o.EN == "" {
			return nil, fmt.Errorf("label %q must define both tr and en", key)
		}
		out["tr"][key] = o.TR
		out["en"][key] = o.EN
	}
	return out, nil
}
