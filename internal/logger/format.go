package logger

import (
	"strings"

	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/rs/zerolog"
)

// Format selects how log lines are rendered
type Format int

const (
	FormatJSON Format = iota
	FormatConsole
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

// ParseFormat maps a log_format value to a Format. Unknown values render
// as console.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}

// ParseLevel maps a log_level value to a zerolog level, info when empty.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel, common.WrapErrorf(common.ErrInvalidConfiguration, "log level %q", s)
	}
	return level, nil
}
