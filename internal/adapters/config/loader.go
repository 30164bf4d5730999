// Package config loads the category policy from a strbuf.yaml file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/strbuf/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up in the working
// directory.
const DefaultFilename = "strbuf.yaml"

// File represents the structure of the strbuf.yaml configuration file.
type File struct {
	Version string    `yaml:"version"`
	Policy  PolicyDTO `yaml:"policy"`
}

// PolicyDTO represents the category thresholds in the configuration.
// Omitted fields fall back to the defaults.
type PolicyDTO struct {
	SmallMax  int `yaml:"smallMax"`
	MediumMax int `yaml:"mediumMax"`
}

// Loader loads the policy from a named file in a working directory.
type Loader struct {
	Filename string
}

// Load reads the configuration from the given working directory. A
// missing file yields the default policy.
func (l *Loader) Load(cwd string) (domain.Policy, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	return Load(filepath.Join(cwd, name))
}

// Load reads a configuration file and returns the policy it defines.
// A missing file is not an error: the default policy applies.
func Load(path string) (domain.Policy, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultPolicy(), nil
		}
		return domain.Policy{}, zerr.Wrap(err, "failed to read config file")
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Policy{}, zerr.Wrap(err, "failed to parse config file")
	}

	policy := domain.DefaultPolicy()
	if file.Policy.SmallMax != 0 {
		policy.SmallMax = file.Policy.SmallMax
	}
	if file.Policy.MediumMax != 0 {
		policy.MediumMax = file.Policy.MediumMax
	}

	if err := policy.Validate(); err != nil {
		return domain.Policy{}, err
	}
	return policy, nil
}
