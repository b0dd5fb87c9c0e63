package main

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readScriptFile reads an input script and decodes it as UTF-8, falling
// back to Windows-1251 (the legacy encoding these dumps ship in). When
// neither decodes cleanly the run aborts before any conversion starts.
func readScriptFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return decodeScript(raw)
}

func decodeScript(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	// The charmap decoder substitutes U+FFFD for the one byte Windows-1251
	// leaves undefined, so check for that instead of relying on err alone.
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(raw)
	if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("%w: input is neither UTF-8 nor Windows-1251", errEncodingDetection)
	}
	return string(decoded), nil
}

// writeScriptFile persists the converted output; failures here are fatal
// to the run.
func writeScriptFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
