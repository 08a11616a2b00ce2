package info

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadKeyValueCSV parses a legacy info.csv stream into a key-value map.
// Each non-empty line holds one `key,value` pair; the value keeps any
// commas beyond the first. A literal `key,value` header line is skipped.
// Later duplicates of a key overwrite earlier ones.
func ReadKeyValueCSV(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if first {
			first = false
			line = strings.TrimPrefix(line, "\ufeff")
			if strings.EqualFold(strings.TrimSpace(line), "key,value") {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, found := strings.Cut(line, ",")
		if !found {
			// Legacy writers never emitted bare keys; tolerate them as empty values.
			values[strings.TrimSpace(key)] = ""
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read key-value csv: %w", err)
	}
	return values, nil
}

// ReadLegacyInfo reads the legacy info.csv marker from dir. The caller is
// responsible for deciding whether a missing file is an error; the raw
// os.Open failure is returned unwrapped so os.IsNotExist keeps working.
func ReadLegacyInfo(dir string) (map[string]string, error) {
	file, err := os.Open(filepath.Join(dir, LegacyInfoName))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadKeyValueCSV(file)
}

// HasLegacyInfo reports whether dir contains an info.csv marker file.
func HasLegacyInfo(dir string) bool {
	stat, err := os.Stat(filepath.Join(dir, LegacyInfoName))
	return err == nil && stat.Mode().IsRegular()
}
