// Package config holds every tunable of the extraction pipeline, the
// recogniser and the process itself.
//
// Settings start from Default, are overlaid by a TOML file (Load) and then
// by environment variables (ApplyEnv), in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/ironsheep/wordsearch-mcp/internal/detection"
	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
	"github.com/ironsheep/wordsearch-mcp/internal/ocr"
	"github.com/ironsheep/wordsearch-mcp/internal/puzzle"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel      = "WORDSEARCH_LOG_LEVEL"
	EnvOCREngine     = "WORDSEARCH_OCR_ENGINE"
	EnvTemplateDir   = "WORDSEARCH_TEMPLATE_DIR"
	EnvTesseractLang = "WORDSEARCH_TESSERACT_LANG"
)

// DefaultEnvFile is loaded by ApplyEnv when present.
const DefaultEnvFile = ".env"

// Config is the complete configuration.
type Config struct {
	Extraction  detection.Options `toml:"extraction"`
	Recognition puzzle.Options    `toml:"recognition"`
	OCR         OCRConfig         `toml:"ocr"`
	Log         LogConfig         `toml:"log"`
	Limits      LimitsConfig      `toml:"limits"`
}

// OCRConfig selects the glyph classifier.
type OCRConfig struct {
	Engine      string `toml:"engine"`
	TemplateDir string `toml:"template_dir"`
	Language    string `toml:"language"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// LimitsConfig bounds memory use.
type LimitsConfig struct {
	// MaxPixels rejects source images with more pixels; 0 disables.
	MaxPixels int `toml:"max_pixels"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		Extraction:  detection.DefaultOptions(),
		Recognition: puzzle.DefaultOptions(),
		OCR: OCRConfig{
			Engine:      ocr.EngineTemplate,
			TemplateDir: "templates",
			Language:    "eng",
		},
		Log:    LogConfig{Level: "warn"},
		Limits: LimitsConfig{MaxPixels: 64 << 20},
	}
}

// Load decodes the TOML file at path over the defaults. Keys missing from
// the file keep their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return cfg, fmt.Errorf("failed to parse config %s: %s", path, sme.String())
		}
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Save writes cfg as TOML to path.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv loads envFile into the environment if it exists (an empty name
// means DefaultEnvFile) and then copies the WORDSEARCH_* variables that are
// set into cfg. Variables already in the environment win over the file.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvOCREngine); ok {
		cfg.OCR.Engine = v
	}
	if v, ok := os.LookupEnv(EnvTemplateDir); ok {
		cfg.OCR.TemplateDir = v
	}
	if v, ok := os.LookupEnv(EnvTesseractLang); ok {
		cfg.OCR.Language = v
	}
	return nil
}

// Validate rejects settings no stage can work with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	e := c.Extraction
	switch e.Binarize.Denoise {
	case "", imaging.DenoiseOff, imaging.DenoiseAuto, imaging.DenoiseAlways:
	default:
		errs = append(errs, fmt.Errorf("binarize.denoise: unknown mode %q", e.Binarize.Denoise))
	}
	check(e.Binarize.NoiseLevel > 0, "binarize.noise_level must be positive")

	check(e.Deskew.MaxAngle >= 0 && e.Deskew.MaxAngle < 45, "deskew.max_angle must be in [0, 45)")
	check(e.Deskew.CoarseStep > 0, "deskew.coarse_step must be positive")
	check(e.Deskew.FineStep >= 0 && e.Deskew.FineStep <= e.Deskew.CoarseStep,
		"deskew.fine_step must be in [0, coarse_step]")
	check(e.Deskew.Stride >= 1, "deskew.stride must be at least 1")

	g := e.Grid
	check(g.StrictFraction > 0 && g.StrictFraction <= 1, "grid.strict_fraction must be in (0, 1]")
	check(g.RelaxedFraction > 0 && g.RelaxedFraction <= g.StrictFraction,
		"grid.relaxed_fraction must be in (0, strict_fraction]")
	check(g.MinDividers >= 2, "grid.min_dividers must be at least 2")
	check(g.MinStrictDividers >= g.MinDividers, "grid.min_strict_dividers must be at least min_dividers")
	check(g.GapTolerance > 0, "grid.gap_tolerance must be positive")
	check(g.MinExtent >= 1, "grid.min_extent must be positive")
	check(g.MaxRulingGap >= 0, "grid.max_ruling_gap must not be negative")

	check(e.Cells.Trim >= 0, "cells.trim must not be negative")
	check(e.WordRegion.Padding >= 0, "word_region.padding must not be negative")

	l := e.Lines
	check(l.MinInk >= 0 && l.GapTolerance >= 0, "lines.min_ink and lines.gap_tolerance must not be negative")
	check(l.MinHeight >= 1 && l.MaxHeight >= l.MinHeight, "lines: need 1 <= min_height <= max_height")
	check(l.ThresholdStep > 0 && l.ThresholdCeiling > 0 && l.ThresholdCeiling <= 1,
		"lines: threshold_step must be positive and threshold_ceiling in (0, 1]")

	w := e.Words
	check(w.MinGap >= 0 && w.MinWidth >= 0 && w.Padding >= 0, "words: gaps, widths and padding must not be negative")
	check(w.MinDensity >= 0 && w.MinDensity < w.MaxDensity && w.MaxDensity <= 1,
		"words: need 0 <= min_density < max_density <= 1")

	lt := e.Letters
	check(lt.MinWidth >= 1 && lt.MinHeight >= 1, "letters.min_width and min_height must be positive")
	check(lt.MaxWidth >= lt.MinWidth, "letters.max_width must be at least min_width")
	check(lt.WideFactor > 1, "letters.wide_factor must exceed 1")
	check(lt.ValleyDepth > 0 && lt.ValleyDepth < 1, "letters.valley_depth must be in (0, 1)")
	check(lt.MaxCuts >= 0 && lt.Margin >= 0 && lt.MaxPixels >= 0, "letters: limits must not be negative")

	check(c.Recognition.TrimMargin >= 0, "recognition.trim_margin must not be negative")

	switch c.OCR.Engine {
	case ocr.EngineTemplate, ocr.EngineTesseract:
	default:
		errs = append(errs, fmt.Errorf("ocr.engine: unknown engine %q", c.OCR.Engine))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	check(c.Limits.MaxPixels >= 0, "limits.max_pixels must not be negative")

	return errors.Join(errs...)
}

// OCROptions converts the OCR section for ocr.NewClassifier.
func (c Config) OCROptions() ocr.Options {
	return ocr.Options{Engine: c.OCR.Engine, TemplateDir: c.OCR.TemplateDir, Language: c.OCR.Language}
}
