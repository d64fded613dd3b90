package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"

	"github.com/gocutover/open-api-specs/internal/envconfig"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = envconfig.FormatJSON
	FormatYAML = envconfig.FormatYAML
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
// Document output accepts json and yaml; report output also accepts text.
func ValidateOutputFormat(format string, allowText bool) error {
	if envconfig.ValidFormat(format) || (allowText && format == FormatText) {
		return nil
	}
	if allowText {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
}

// Marshal encodes data as indented JSON or YAML. Both encoders sort mapping
// keys, so equal documents always encode to identical bytes.
func Marshal(data any, format string) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
		if err == nil {
			out = append(out, '\n')
		}
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling to %s: %w", format, err)
	}
	return out, nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	out, err := Marshal(data, format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
