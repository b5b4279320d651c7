package viewer

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/tanema/gween/ease"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. VIEWER_SCALE_MAX.
const EnvPrefix = "VIEWER"

// Config is the file-and-environment configuration for a viewer. YAML files
// are validated against an embedded JSON schema; environment variables are
// applied on top as overrides.
type Config struct {
	Scale     ScaleConfig     `yaml:"scale" envconfig:"SCALE"`
	Alignment AlignmentConfig `yaml:"alignment" envconfig:"ALIGN"`
	Behavior  BehaviorConfig  `yaml:"behavior" envconfig:"BEHAVIOR"`
	Animation AnimationConfig `yaml:"animation" envconfig:"ANIMATION"`
	Gesture   GestureSettings `yaml:"gesture" envconfig:"GESTURE"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOG"`
	Debug     bool            `yaml:"debug" envconfig:"DEBUG"`
}

// ScaleConfig holds the initial scale and limits. A zero limit is open.
type ScaleConfig struct {
	Initial float64 `yaml:"initial" envconfig:"INITIAL"`
	Min     float64 `yaml:"min" envconfig:"MIN"`
	Max     float64 `yaml:"max" envconfig:"MAX"`
}

type AlignmentConfig struct {
	X float64 `yaml:"x" envconfig:"X"`
	Y float64 `yaml:"y" envconfig:"Y"`
}

// BehaviorConfig selects the policies composed into the controller's
// behavior, in the order scroll mode, axis lock, bounds, grid snap.
type BehaviorConfig struct {
	ScrollMode      string  `yaml:"scroll_mode" envconfig:"SCROLL_MODE"` // both|horizontal|vertical|none
	AxisLock        string  `yaml:"axis_lock" envconfig:"AXIS_LOCK"`     // free|x|y|dominant
	ConstrainBounds bool    `yaml:"constrain_bounds" envconfig:"CONSTRAIN_BOUNDS"`
	GridX           float64 `yaml:"grid_x" envconfig:"GRID_X"`
	GridY           float64 `yaml:"grid_y" envconfig:"GRID_Y"`
	ScaleStep       float64 `yaml:"scale_step" envconfig:"SCALE_STEP"`
}

type AnimationConfig struct {
	DurationMs int    `yaml:"duration_ms" envconfig:"DURATION_MS"`
	Curve      string `yaml:"curve" envconfig:"CURVE"`
}

type GestureSettings struct {
	DoubleTapZoom    float64 `yaml:"double_tap_zoom" envconfig:"DOUBLE_TAP_ZOOM"`
	ScrollZoomFactor float64 `yaml:"scroll_zoom_factor" envconfig:"SCROLL_ZOOM_FACTOR"`
	KeyPanStep       float64 `yaml:"key_pan_step" envconfig:"KEY_PAN_STEP"`
	DisableRotation  bool    `yaml:"disable_rotation" envconfig:"DISABLE_ROTATION"`
	DisableFling     bool    `yaml:"disable_fling" envconfig:"DISABLE_FLING"`
}

// DefaultConfig returns the defaults applied before any file or environment.
func DefaultConfig() Config {
	return Config{
		Scale:     ScaleConfig{Initial: 1, Min: 0.1, Max: 10},
		Behavior:  BehaviorConfig{ScrollMode: "both", AxisLock: "free"},
		Animation: AnimationConfig{DurationMs: 300, Curve: "out_cubic"},
		Gesture:   GestureSettings{DoubleTapZoom: 1, ScrollZoomFactor: 0.1, KeyPanStep: 50},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads path (a missing file is not an error), validates it,
// and applies environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := ParseConfig(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("config env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseConfig validates a YAML document against the config schema and
// decodes it over cfg.
func ParseConfig(data []byte, cfg *Config) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if doc == nil {
		return nil
	}
	res, err := gojsonschema.Validate(gojsonschema.NewStringLoader(configSchema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// Validate checks ranges and cross-field constraints. Environment overrides
// bypass the schema, so the ranges are checked again here.
func (c Config) Validate() error {
	if c.Scale.Min < 0 || c.Scale.Max < 0 {
		return fmt.Errorf("invalid config: scale limits must not be negative (min %v, max %v)", c.Scale.Min, c.Scale.Max)
	}
	if c.Scale.Min > 0 && c.Scale.Max > 0 && c.Scale.Min > c.Scale.Max {
		return fmt.Errorf("invalid config: scale.min %v exceeds scale.max %v", c.Scale.Min, c.Scale.Max)
	}
	if c.Scale.Initial <= 0 {
		return fmt.Errorf("invalid config: scale.initial must be positive, got %v", c.Scale.Initial)
	}
	if (c.Scale.Min > 0 && c.Scale.Initial < c.Scale.Min) || (c.Scale.Max > 0 && c.Scale.Initial > c.Scale.Max) {
		return fmt.Errorf("invalid config: scale.initial %v is outside the scale limits", c.Scale.Initial)
	}
	if math.Abs(c.Alignment.X) > 1 || math.Abs(c.Alignment.Y) > 1 {
		return fmt.Errorf("invalid config: alignment %v,%v is outside [-1, 1]", c.Alignment.X, c.Alignment.Y)
	}
	if c.Behavior.GridX < 0 || c.Behavior.GridY < 0 || c.Behavior.ScaleStep < 0 {
		return fmt.Errorf("invalid config: grid and scale_step must not be negative")
	}
	if c.Animation.DurationMs < 0 {
		return fmt.Errorf("invalid config: animation.duration_ms must not be negative, got %d", c.Animation.DurationMs)
	}
	if _, ok := parseScrollMode(c.Behavior.ScrollMode); !ok {
		return fmt.Errorf("invalid config: unknown scroll_mode %q", c.Behavior.ScrollMode)
	}
	if _, ok := parsePanAxis(c.Behavior.AxisLock); !ok {
		return fmt.Errorf("invalid config: unknown axis_lock %q", c.Behavior.AxisLock)
	}
	if _, ok := curves[strings.ToLower(c.Animation.Curve)]; !ok && c.Animation.Curve != "" {
		return fmt.Errorf("invalid config: unknown animation curve %q", c.Animation.Curve)
	}
	return nil
}

// Options returns controller options for this configuration. Size
// providers and the tick source are left for the host to set.
func (c Config) Options() Options {
	opts := Options{
		InitialScale: c.Scale.Initial,
		Alignment:    Alignment{c.Alignment.X, c.Alignment.Y},
		Behavior:     c.NewBehavior(),
		Debug:        c.Debug,
	}
	if c.Scale.Min > 0 {
		opts.MinScale = ptr(c.Scale.Min)
	}
	if c.Scale.Max > 0 {
		opts.MaxScale = ptr(c.Scale.Max)
	}
	return opts
}

// NewBehavior composes the configured policies.
func (c Config) NewBehavior() Behavior {
	var bs []Behavior
	if mode, _ := parseScrollMode(c.Behavior.ScrollMode); mode != ScrollBoth {
		bs = append(bs, ScrollModeBehavior{Mode: mode})
	}
	if axis, _ := parsePanAxis(c.Behavior.AxisLock); axis != AxisFree {
		bs = append(bs, AxisLockBehavior{Axis: axis})
	}
	if c.Behavior.ConstrainBounds {
		bs = append(bs, DefaultBoundsBehavior{})
	}
	if c.Behavior.GridX > 0 || c.Behavior.GridY > 0 || c.Behavior.ScaleStep > 0 {
		bs = append(bs, GridSnapBehavior{
			Grid:      Vec2{c.Behavior.GridX, c.Behavior.GridY},
			ScaleStep: c.Behavior.ScaleStep,
		})
	}
	switch len(bs) {
	case 0:
		return NoopBehavior{}
	case 1:
		return bs[0]
	}
	return NewCompositeBehavior(bs...)
}

// DefaultAnimation returns the configured transition animation.
func (c Config) DefaultAnimation() Animation {
	curve, ok := curves[strings.ToLower(c.Animation.Curve)]
	if !ok {
		curve = ease.Linear
	}
	return Animation{Duration: time.Duration(c.Animation.DurationMs) * time.Millisecond, Curve: curve}
}

// GestureConfig returns the tracker configuration.
func (c Config) GestureConfig() GestureConfig {
	g := DefaultGestureConfig()
	if c.Gesture.DoubleTapZoom > 0 {
		g.DoubleTapZoom = c.Gesture.DoubleTapZoom
	}
	if c.Gesture.ScrollZoomFactor > 0 {
		g.ScrollZoomFactor = c.Gesture.ScrollZoomFactor
	}
	if c.Gesture.KeyPanStep > 0 {
		g.KeyPanStep = c.Gesture.KeyPanStep
	}
	g.DisableRotation = c.Gesture.DisableRotation
	g.DisableFling = c.Gesture.DisableFling
	if a := c.DefaultAnimation(); a.Duration > 0 {
		g.Animation = a
	}
	return g
}

func parseScrollMode(s string) (ScrollMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return ScrollBoth, true
	case "horizontal":
		return ScrollHorizontal, true
	case "vertical":
		return ScrollVertical, true
	case "none":
		return ScrollNone, true
	}
	return ScrollBoth, false
}

func parsePanAxis(s string) (PanAxis, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "free":
		return AxisFree, true
	case "x":
		return AxisX, true
	case "y":
		return AxisY, true
	case "dominant":
		return AxisDominant, true
	}
	return AxisFree, false
}

// curves maps config names to gween easing functions.
var curves = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
	"out_expo":     ease.OutExpo,
	"out_back":     ease.OutBack,
	"out_bounce":   ease.OutBounce,
}
