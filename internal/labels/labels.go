// Package labels turns API field names into table header text.
package labels

import (
	"fmt"
	"maps"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultOverrides are the field names whose labels do not follow the
// general rule
var DefaultOverrides = map[string]string{
	"ews":         "EWS",
	"pmc":         "PMC",
	"anglo_india": "Anglo India",
}

var (
	camelHump = regexp.MustCompile(`([a-z])([A-Z])`)
	wordStart = regexp.MustCompile(`\b\w`)
)

// Formatter maps field names to header labels.
// It is safe for concurrent use; overrides can be swapped at runtime.
type Formatter struct {
	mu        sync.RWMutex
	overrides map[string]string
}

// NewFormatter creates a formatter with DefaultOverrides plus extra
func NewFormatter(extra map[string]string) *Formatter {
	f := &Formatter{}
	f.SetOverrides(extra)
	return f
}

// SetOverrides replaces the configured overrides. DefaultOverrides stay in
// place unless extra redefines them.
func (f *Formatter) SetOverrides(extra map[string]string) {
	merged := maps.Clone(DefaultOverrides)
	maps.Copy(merged, extra)

	f.mu.Lock()
	f.overrides = merged
	f.mu.Unlock()
}

// Format returns the header label for field
func (f *Formatter) Format(field string) string {
	f.mu.RLock()
	label, ok := f.overrides[field]
	f.mu.RUnlock()
	if ok {
		return label
	}
	return Humanize(field)
}

// FormatAll formats every field in order
func (f *Formatter) FormatAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = f.Format(field)
	}
	return out
}

// Humanize applies the general rule: underscores become spaces, camel humps
// are split and every word starts upper-case
func Humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	s = camelHump.ReplaceAllString(s, "${1} ${2}")
	return wordStart.ReplaceAllStringFunc(s, strings.ToUpper)
}

// File is the on-disk layout of a label override file
type File struct {
	Labels map[string]string `yaml:"labels"`
}

// LoadFile reads overrides from a YAML file
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse labels file %s: %w", path, err)
	}
	if file.Labels == nil {
		file.Labels = map[string]string{}
	}
	return file.Labels, nil
}
