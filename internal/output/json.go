package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// successEnvelope is the structure for successful responses.
type successEnvelope struct {
	OK      bool   `json:"ok" yaml:"ok"`
	Data    any    `json:"data" yaml:"data"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// errorEnvelope is the structure for error responses.
type errorEnvelope struct {
	OK    bool      `json:"ok" yaml:"ok"`
	Error string    `json:"error" yaml:"error"`
	Code  ErrorCode `json:"code" yaml:"code"`
}

// writeJSONSuccess writes a success envelope to w.
func writeJSONSuccess(w io.Writer, data any, message string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(successEnvelope{
		OK:      true,
		Data:    data,
		Message: message,
	})
}

// writeJSONError writes an error envelope to w.
func writeJSONError(w io.Writer, err error, code ErrorCode) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(errorEnvelope{
		OK:    false,
		Error: err.Error(),
		Code:  code,
	})
}

// writeYAMLSuccess writes a success envelope to w as YAML.
func writeYAMLSuccess(w io.Writer, data any, message string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(successEnvelope{OK: true, Data: data, Message: message}); err != nil {
		return err
	}
	return enc.Close()
}

// writeYAMLError writes an error envelope to w as YAML.
func writeYAMLError(w io.Writer, err error, code ErrorCode) {
	enc := yaml.NewEncoder(w)
	enc.Encode(errorEnvelope{OK: false, Error: err.Error(), Code: code})
	enc.Close()
}
