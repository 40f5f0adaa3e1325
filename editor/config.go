package editor

import (
	"errors"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/midi-editor/pianoroll"
	"github.com/midi-editor/pianoroll/grid"
)

const (
	MinTempo     = 40
	MaxTempo     = 200
	DefaultTempo = 120

	DefaultLyric = "la"
)

// Config holds the settings of one piano roll editor.
type Config struct {
	PitchStart      int        `yaml:"pitch_start"`
	NumOfKeys       int        `yaml:"num_of_keys"`
	TickRange       int        `yaml:"tick_range"`
	DefaultVelocity int        `yaml:"default_velocity"`
	DefaultDuration int        `yaml:"default_duration"`
	DefaultLyric    string     `yaml:"default_lyric"`
	ScaleX          float64    `yaml:"scale_x"`
	Tempo           int        `yaml:"tempo"`
	SystemClipboard bool       `yaml:"system_clipboard"`
	LogLevel        slog.Level `yaml:"log_level"`
	// KeyBindings are applied on top of the built-in key bindings.
	KeyBindings []KeyBinding `yaml:"key_bindings"`
}

func NewDefaultConfig() Config {
	return Config{
		PitchStart:      0,
		NumOfKeys:       128,
		TickRange:       64 * grid.TicksPerBeat,
		DefaultVelocity: 64,
		DefaultDuration: grid.TicksPerBeat,
		DefaultLyric:    DefaultLyric,
		ScaleX:          1,
		Tempo:           DefaultTempo,
		LogLevel:        slog.LevelInfo,
	}
}

// Validate validates the editor configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.PitchStart, validation.Min(pianoroll.MinNoteNumber), validation.Max(pianoroll.MaxNoteNumber)),
		validation.Field(&c.NumOfKeys, validation.Required, validation.Min(1), validation.Max(pianoroll.MaxNoteNumber+1)),
		validation.Field(&c.TickRange, validation.Required, validation.Min(grid.TicksPerBeat)),
		validation.Field(&c.DefaultVelocity, validation.Min(pianoroll.MinVelocity), validation.Max(pianoroll.MaxVelocity)),
		validation.Field(&c.DefaultDuration, validation.Required, validation.Min(pianoroll.MinDuration)),
		validation.Field(&c.ScaleX, validation.Required, validation.Min(0.0)),
		validation.Field(&c.Tempo, validation.Required, validation.Min(MinTempo), validation.Max(MaxTempo)),
		validation.Field(&c.KeyBindings),
	); err != nil {
		return err
	}
	if c.PitchStart+c.NumOfKeys-1 > pianoroll.MaxNoteNumber {
		return errors.New("pitch_start + num_of_keys exceeds the highest note number")
	}
	return nil
}

// PitchRange returns the note numbers shown on the piano roll.
func (c *Config) PitchRange() grid.PitchRange {
	return grid.PitchRange{Start: c.PitchStart, NumOfKeys: c.NumOfKeys}
}

// MinScaleX is the zoom at which the whole timeline is still wider than
// the minimum canvas width.
func (c *Config) MinScaleX() float64 {
	return (minCanvasPixels - canvasPadding) / grid.CanvasWidth(c.TickRange)
}

const (
	minCanvasPixels = 800
	canvasPadding   = 50
)
