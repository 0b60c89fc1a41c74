package config

import (
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("policy", c.Policy, validPolicy),
		c.validateTargets("targets", c.Targets),
		criterio.Run("git.path", c.Git.Path, nonEmpty),
		criterio.Run("data_dir", c.DataDir, nonEmpty),
		c.validatePalette(),
		c.validateRules(),
	)
}

func validPolicy(p Policy) error {
	if !p.IsValid() {
		return fmt.Errorf("unknown policy %q (want %q or %q)", p, PolicyHash, PolicySpread)
	}
	return nil
}

func nonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func (c *Config) validateTargets(field string, targets []Target) error {
	var errs criterio.FieldErrorsBuilder

	if len(targets) == 0 {
		errs = errs.Append(field, fmt.Errorf("at least one target is required"))
	}
	for i, t := range targets {
		if !t.IsValid() {
			errs = errs.Append(fmt.Sprintf("%s[%d]", field, i), fmt.Errorf("unknown target %q", t))
		}
	}

	return errs.ToError()
}

// validatePalette checks a user-supplied palette replacement. An empty
// palette means the built-in table is used.
func (c *Config) validatePalette() error {
	if len(c.Palette) == 0 {
		return nil
	}

	var errs criterio.FieldErrorsBuilder

	if len(c.Palette) < 2 {
		errs = errs.Append("palette", fmt.Errorf("need at least 2 entries, got %d", len(c.Palette)))
	}

	seen := map[string]int{}
	for i, e := range c.Palette {
		field := fmt.Sprintf("palette[%d]", i)

		if e.Name == "" {
			errs = errs.Append(field+".name", fmt.Errorf("cannot be empty"))
		} else if prev, dup := seen[e.Name]; dup {
			errs = errs.Append(field+".name", fmt.Errorf("duplicate of palette[%d]", prev))
		} else {
			seen[e.Name] = i
		}

		if !hexColorRe.MatchString(e.Background) {
			errs = errs.Append(field+".background", fmt.Errorf("invalid hex color %q", e.Background))
		}
		if !hexColorRe.MatchString(e.Foreground) {
			errs = errs.Append(field+".foreground", fmt.Errorf("invalid hex color %q", e.Foreground))
		}
	}

	return errs.ToError()
}

// validateRules checks rule patterns are valid globs and overrides are known values.
func (c *Config) validateRules() error {
	var errs criterio.FieldErrorsBuilder

	for i, rule := range c.Rules {
		field := fmt.Sprintf("rules[%d]", i)

		if rule.Pattern == "" {
			errs = errs.Append(field+".pattern", fmt.Errorf("cannot be empty"))
		} else if !doublestar.ValidatePattern(rule.Pattern) {
			errs = errs.Append(field+".pattern", fmt.Errorf("invalid glob pattern %q", rule.Pattern))
		}

		if rule.Policy != "" && !rule.Policy.IsValid() {
			errs = errs.Append(field+".policy", fmt.Errorf("unknown policy %q", rule.Policy))
		}

		for j, t := range rule.Targets {
			if !t.IsValid() {
				errs = errs.Append(fmt.Sprintf("%s.targets[%d]", field, j), fmt.Errorf("unknown target %q", t))
			}
		}
	}

	return errs.ToError()
}
