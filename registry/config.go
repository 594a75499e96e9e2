package registry

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/envgate/envgate/conditions"
	"github.com/envgate/envgate/locks"
)

// checksFile is the YAML declaration consumed by the envgate binary: a
// list of named environment checks whose conditions gate a no-op body.
// The check either runs (and passes) or is reported as ignored with the
// failing condition's reason, which makes the binary an environment
// readiness probe without Go-level registration.
type checksFile struct {
	Checks []checkConfig `yaml:"checks"`
}

type checkConfig struct {
	Name        string            `yaml:"name"`
	Group       string            `yaml:"group,omitempty"`
	Lock        string            `yaml:"lock,omitempty"`
	LockTimeout string            `yaml:"lock_timeout,omitempty"`
	Conditions  []conditionConfig `yaml:"conditions"`
}

type conditionConfig struct {
	Kind    string   `yaml:"kind"`
	Targets []string `yaml:"targets,omitempty"`
	Count   int      `yaml:"count,omitempty"`
	Size    string   `yaml:"size,omitempty"`
	Offset  int      `yaml:"offset,omitempty"`
	User    string   `yaml:"user,omitempty"`
	Group   string   `yaml:"group,omitempty"`
}

// LoadChecksFile registers every check the YAML file declares. A check's
// group must already be declared on the registry, so callers mixing the
// two declaration styles add their groups first and load the file after.
func (r *Registry) LoadChecksFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read checks file at %s: %w", path, err)
	}

	var file checksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse checks file: %w", err)
	}
	if len(file.Checks) == 0 {
		return &ConfigError{Msg: fmt.Sprintf("checks file %s declares no checks", path)}
	}

	for _, check := range file.Checks {
		entry, err := check.toEntry()
		if err != nil {
			return err
		}
		if err := r.Register(entry); err != nil {
			return err
		}
	}
	r.log.Info("Loaded checks file", "path", path, "checks", len(file.Checks))
	return nil
}

func (c checkConfig) toEntry() (Entry, error) {
	conds := make([]conditions.Condition, 0, len(c.Conditions))
	for _, cc := range c.Conditions {
		cond, err := cc.build()
		if err != nil {
			return Entry{}, &ConfigError{Entry: c.Name, Msg: err.Error()}
		}
		conds = append(conds, cond)
	}

	var spec *locks.Spec
	if c.Lock != "" {
		spec = &locks.Spec{Name: c.Lock}
		if c.LockTimeout != "" {
			d, err := time.ParseDuration(c.LockTimeout)
			if err != nil {
				return Entry{}, &ConfigError{Entry: c.Name, Msg: fmt.Sprintf("invalid lock_timeout %q", c.LockTimeout)}
			}
			spec.Timeout = d
		}
	}

	return Entry{
		Name:       c.Name,
		Conditions: conds,
		Lock:       spec,
		Group:      c.Group,
		Fn:         func(context.Context) error { return nil },
	}, nil
}

func (c conditionConfig) build() (conditions.Condition, error) {
	switch c.Kind {
	case "env":
		if len(c.Targets) == 0 {
			return nil, fmt.Errorf("env condition needs targets")
		}
		return conditions.EnvSet(c.Targets...), nil
	case "no_env":
		if len(c.Targets) == 0 {
			return nil, fmt.Errorf("no_env condition needs targets")
		}
		return conditions.EnvNotSet(c.Targets...), nil
	case "file":
		if len(c.Targets) == 0 {
			return nil, fmt.Errorf("file condition needs targets")
		}
		return conditions.FileExists(c.Targets...), nil
	case "path":
		if len(c.Targets) == 0 {
			return nil, fmt.Errorf("path condition needs targets")
		}
		return conditions.PathExists(c.Targets...), nil
	case "http":
		return conditions.HTTPReachable(c.Targets...)
	case "https":
		return conditions.HTTPSReachable(c.Targets...)
	case "tcp":
		return conditions.TCPReachable(c.Targets...)
	case "icmp":
		return conditions.ICMPReachable(c.Targets...)
	case "user":
		if c.User == "" {
			return nil, fmt.Errorf("user condition needs user")
		}
		return conditions.User(c.User), nil
	case "group":
		if c.Group == "" {
			return nil, fmt.Errorf("group condition needs group")
		}
		return conditions.Group(c.Group), nil
	case "root":
		return conditions.Root(), nil
	case "cpu_core":
		if c.Count < 1 {
			return nil, fmt.Errorf("cpu_core condition needs a positive count")
		}
		return conditions.CPUCoreAtLeast(c.Count), nil
	case "phy_core":
		if c.Count < 1 {
			return nil, fmt.Errorf("phy_core condition needs a positive count")
		}
		return conditions.PhysicalCoreAtLeast(c.Count), nil
	case "mem":
		return conditions.MemAtLeast(c.Size)
	case "swap":
		return conditions.SwapAtLeast(c.Size)
	case "executable":
		if len(c.Targets) == 0 {
			return nil, fmt.Errorf("executable condition needs targets")
		}
		return conditions.ExecutableExists(c.Targets...), nil
	case "timezone":
		return conditions.TimezoneOffsetEquals(c.Offset)
	default:
		return nil, fmt.Errorf("unknown condition kind %q", c.Kind)
	}
}
