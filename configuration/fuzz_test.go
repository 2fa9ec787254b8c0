package configuration

import (
	"bytes"
	"testing"
)

// FuzzConfigurationParse fuzzes Parse with arbitrary input.
// nolint:deadcode
func FuzzConfigurationParse(f *testing.F) {
	f.Fuzz(func(t *testing.T, data []byte) {
		rd := bytes.NewReader(data)
		_, _ = Parse(rd)
	})
}
