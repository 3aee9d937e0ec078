package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	OGDLFormat Format = iota
	BinaryFormat
	XMLFormat
	JSONFormat
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"o":    OGDLFormat,
		"ogdl": OGDLFormat,
		"b":    BinaryFormat,
		"bin":  BinaryFormat,
		"x":    XMLFormat,
		"xml":  XMLFormat,
		"j":    JSONFormat,
		"json": JSONFormat,
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case OGDLFormat:
		return []byte("ogdl"), nil
	case BinaryFormat:
		return []byte("bin"), nil
	case XMLFormat:
		return []byte("xml"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsOGDL() bool   { return f == OGDLFormat }
func (f Format) IsBinary() bool { return f == BinaryFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case OGDLFormat:
		return ".ogdl"
	case BinaryFormat:
		return ".ogdlb"
	case XMLFormat:
		return ".xml"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// FromSuffix guesses a format from a file name extension, defaulting to
// OGDL text.
func FromSuffix(name string) Format {
	for _, f := range AllFormats() {
		s := f.Suffix()
		if len(name) > len(s) && name[len(name)-len(s):] == s {
			return f
		}
	}
	if len(name) > 4 && name[len(name)-4:] == ".yml" {
		return YAMLFormat
	}
	return OGDLFormat
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{OGDLFormat, BinaryFormat, XMLFormat, JSONFormat, YAMLFormat}
}
