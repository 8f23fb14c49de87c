package config

import (
	"gopkg.in/yaml.v3"
)

// Config represents the full envdoctor configuration document.
type Config struct {
	Version      string       `yaml:"version" validate:"required,semver"`
	Name         string       `yaml:"name" validate:"required,min=1,max=100"`
	Description  string       `yaml:"description,omitempty"`
	Dependencies []Dependency `yaml:"dependencies" validate:"omitempty,dive"`
}

// Dependency declares one required tool: the identifier used to join into the
// package catalog, a semver range the installed tool must satisfy, and how to
// query the tool's version on the command line.
type Dependency struct {
	ID          string `yaml:"id" validate:"required,dep_id"`
	Name        string `yaml:"name" validate:"required,min=1,max=100"`
	Version     string `yaml:"version" validate:"required,semver_range"`
	Command     string `yaml:"command" validate:"required"`
	VersionFlag string `yaml:"version_flag,omitempty"`
}

// UnmarshalYAML applies defaults for dependency declarations. Most tools
// answer --version, so the flag is optional in the document.
func (d *Dependency) UnmarshalYAML(value *yaml.Node) error {
	type rawDependency Dependency
	var temp rawDependency
	if err := value.Decode(&temp); err != nil {
		return err
	}
	*d = Dependency(temp)
	if d.VersionFlag == "" {
		d.VersionFlag = "--version"
	}
	return nil
}
