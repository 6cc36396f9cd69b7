package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Health-score component weights.
const (
	DefaultCostWeight        = 0.30
	DefaultScheduleWeight    = 0.25
	DefaultPerformanceWeight = 0.25
	DefaultComplianceWeight  = 0.20
)

// Risk thresholds: scores below each bound fall into that tier.
const (
	DefaultCriticalBelow = 30.0
	DefaultHighBelow     = 50.0
	DefaultMediumBelow   = 70.0
)

// Alert and compliance limits.
const (
	DefaultExpiringWithinDays     = 30
	DefaultInactiveAfterDays      = 60
	DefaultChangeOrderLimit       = 3
	DefaultBoardApprovalThreshold = 50000.0
	DefaultLowHealthBelow         = 50.0
)

var ErrInvalidConfig = errors.New("invalid configuration")

type HealthWeights struct {
	Cost        float64 `yaml:"cost"`
	Schedule    float64 `yaml:"schedule"`
	Performance float64 `yaml:"performance"`
	Compliance  float64 `yaml:"compliance"`
}

// Sum returns the total of all component weights.
func (w HealthWeights) Sum() float64 {
	return w.Cost + w.Schedule + w.Performance + w.Compliance
}

type RiskThresholds struct {
	Critical float64 `yaml:"critical"`
	High     float64 `yaml:"high"`
	Medium   float64 `yaml:"medium"`
}

type AlertLimits struct {
	ExpiringWithinDays int     `yaml:"expiring_within_days"`
	InactiveAfterDays  int     `yaml:"inactive_after_days"`
	ChangeOrderLimit   int     `yaml:"change_order_limit"`
	LowHealthBelow     float64 `yaml:"low_health_below"`
}

// Scoring is the static tuning surface of the scoring and alert engines.
type Scoring struct {
	Weights                HealthWeights  `yaml:"weights"`
	Risk                   RiskThresholds `yaml:"risk"`
	Alerts                 AlertLimits    `yaml:"alerts"`
	BoardApprovalThreshold float64        `yaml:"board_approval_threshold"`
}

// DefaultScoring returns the built-in weights and thresholds.
func DefaultScoring() Scoring {
	return Scoring{
		Weights: HealthWeights{
			Cost:        DefaultCostWeight,
			Schedule:    DefaultScheduleWeight,
			Performance: DefaultPerformanceWeight,
			Compliance:  DefaultComplianceWeight,
		},
		Risk: RiskThresholds{
			Critical: DefaultCriticalBelow,
			High:     DefaultHighBelow,
			Medium:   DefaultMediumBelow,
		},
		Alerts: AlertLimits{
			ExpiringWithinDays: DefaultExpiringWithinDays,
			InactiveAfterDays:  DefaultInactiveAfterDays,
			ChangeOrderLimit:   DefaultChangeOrderLimit,
			LowHealthBelow:     DefaultLowHealthBelow,
		},
		BoardApprovalThreshold: DefaultBoardApprovalThreshold,
	}
}

// Validate checks that weights sum to 1 and risk bands are strictly increasing.
func (s Scoring) Validate() error {
	if math.Abs(s.Weights.Sum()-1) > 0.001 {
		return fmt.Errorf("%w: health weights sum to %.3f, want 1", ErrInvalidConfig, s.Weights.Sum())
	}
	if !(s.Risk.Critical < s.Risk.High && s.Risk.High < s.Risk.Medium) {
		return fmt.Errorf("%w: risk thresholds must be strictly increasing (critical < high < medium)", ErrInvalidConfig)
	}
	if s.Alerts.ExpiringWithinDays <= 0 || s.Alerts.InactiveAfterDays <= 0 {
		return fmt.Errorf("%w: alert windows must be positive", ErrInvalidConfig)
	}
	return nil
}

// Config holds process-level settings.
type Config struct {
	DBPath    string
	LogLevel  string
	LogFormat string
	Scoring   Scoring
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values. CONTRACTWATCH_CONFIG may point at a YAML file
// overriding the scoring section.
func Load() (Config, error) {
	cfg := Config{
		LogLevel:  "info",
		LogFormat: "text",
		Scoring:   DefaultScoring(),
	}

	cfg.DBPath = os.Getenv("CONTRACTWATCH_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".contractwatch", "contracts.db")
	}
	if v := os.Getenv("CONTRACTWATCH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CONTRACTWATCH_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("CONTRACTWATCH_BOARD_APPROVAL_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return cfg, fmt.Errorf("%w: CONTRACTWATCH_BOARD_APPROVAL_THRESHOLD %q must be a non-negative amount", ErrInvalidConfig, v)
		}
		cfg.Scoring.BoardApprovalThreshold = f
	}

	if path := os.Getenv("CONTRACTWATCH_CONFIG"); path != "" {
		s, err := LoadScoringFile(path, cfg.Scoring)
		if err != nil {
			return cfg, err
		}
		cfg.Scoring = s
	}

	if err := cfg.Scoring.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadScoringFile overlays the YAML file at path onto base. Keys missing from
// the file keep their base value.
func LoadScoringFile(path string, base Scoring) (Scoring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config file: %w", err)
	}
	out := base
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, fmt.Errorf("parsing config file: %w", err)
	}
	return out, nil
}
