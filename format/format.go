package format

import (
	"errors"
	"fmt"
)

// Format selects how a tree or a flat mapping is written out.
type Format int

const (
	TextFormat Format = iota
	YAMLFormat
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

var formats = [...]struct {
	name, short, suffix string
}{
	TextFormat: {"text", "t", ".txt"},
	YAMLFormat: {"yaml", "y", ".yaml"},
	JSONFormat: {"json", "j", ".json"},
}

// ParseFormat accepts a format's name or its one letter abbreviation.
func ParseFormat(v string) (Format, error) {
	for f, desc := range formats {
		if v == desc.name || v == desc.short {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) valid() bool {
	return f >= 0 && int(f) < len(formats)
}

func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("<err: %d is not a format>", int(f))
	}
	return formats[f].name
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, int(f))
	}
	return []byte(formats[f].name), nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsText() bool { return f == TextFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// Suffix returns the file extension for this format, including the dot.
func (f Format) Suffix() string {
	if !f.valid() {
		return ""
	}
	return formats[f].suffix
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{TextFormat, YAMLFormat, JSONFormat}
}
