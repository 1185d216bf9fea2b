package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"blossom/internal/domain"
	"blossom/pkg/fileutil"
	"blossom/pkg/textutil"
)

// FileName is the plugin configuration file inside the data folder.
const FileName = "config.yml"

const defaultPrefix = "!!blossom"

// Prefixes holds the command prefixes. In YAML it is either a single string or a list.
type Prefixes []string

func (p *Prefixes) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*p = Prefixes{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*p = list
		return nil
	default:
		return fmt.Errorf("line %d: command_prefix must be a string or a list of strings", node.Line)
	}
}

func (p Prefixes) MarshalYAML() (any, error) {
	if len(p) == 1 {
		return p[0], nil
	}
	return []string(p), nil
}

// Configuration is the plugin's config.yml schema.
type Configuration struct {
	CommandPrefix          Prefixes       `yaml:"command_prefix"`
	PermissionRequirements map[string]int `yaml:"permission_requirements"`
	EnablePermissionCheck  bool           `yaml:"enable_permission_check"`
	Debug                  bool           `yaml:"debug"`
	Verbosity              bool           `yaml:"verbosity"`
}

// Default returns the configuration used for every field missing from config.yml.
func Default() *Configuration {
	return &Configuration{
		CommandPrefix: Prefixes{defaultPrefix},
		PermissionRequirements: map[string]int{
			"reload": domain.PermissionAdmin,
		},
		EnablePermissionCheck: true,
	}
}

// Load reads config.yml from dir, writing the defaults first when it does not
// exist. A malformed file yields the defaults (or what could be decoded) together
// with a *domain.ResourceLoadError the caller is expected to log.
func Load(dir string) (*Configuration, error) {
	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, FileName)

	text, err := fileutil.LFRead(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return cfg, fmt.Errorf("write default config: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return Default(), &domain.ResourceLoadError{Path: path, Err: err}
	}

	cfg, err := Parse([]byte(text))
	if err != nil {
		return cfg, &domain.ResourceLoadError{Path: path, Err: err}
	}
	return cfg, nil
}

// Parse decodes a config document on top of the defaults. Fields with a wrong
// type keep their default value and are reported in the returned error.
func Parse(data []byte) (*Configuration, error) {
	cfg := Default()
	err := yaml.Unmarshal(data, cfg)
	var typeErr *yaml.TypeError
	if err != nil && !errors.As(err, &typeErr) {
		return Default(), err
	}
	cfg.normalize()
	return cfg, err
}

// Save writes the configuration to path atomically.
func (c *Configuration) Save(path string) error {
	return fileutil.SafeWrite(path, func(w io.Writer) error {
		text, err := textutil.YAMLDump(c)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	})
}

func (c *Configuration) normalize() {
	seen := make(map[string]struct{}, len(c.CommandPrefix))
	prefixes := make(Prefixes, 0, len(c.CommandPrefix))
	for _, p := range c.CommandPrefix {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		prefixes = append(prefixes, p)
	}
	if len(prefixes) == 0 {
		prefixes = Prefixes{defaultPrefix}
	}
	c.CommandPrefix = prefixes
	// A null mapping decodes to nil and must not drop the default guards.
	if c.PermissionRequirements == nil {
		c.PermissionRequirements = Default().PermissionRequirements
	}
}

// Prefixes returns the deduplicated command prefixes in configuration order.
func (c *Configuration) Prefixes() []string {
	if len(c.CommandPrefix) == 0 {
		return []string{defaultPrefix}
	}
	return append([]string(nil), c.CommandPrefix...)
}

// PrimaryPrefix is the prefix shown in help messages.
func (c *Configuration) PrimaryPrefix() string {
	return c.Prefixes()[0]
}

func (c *Configuration) DebugCommandsEnabled() bool {
	return c.Debug
}

func (c *Configuration) Verbose() bool {
	return c.Verbosity
}

// Permission returns the level required for literal, or def when none is configured.
func (c *Configuration) Permission(literal string, def int) int {
	if level, ok := c.PermissionRequirements[literal]; ok {
		return level
	}
	return def
}

// RequiredLevel is the highest level required by any of the literals sharing a
// command node. Literals without a requirement count as PermissionGuest.
func (c *Configuration) RequiredLevel(literals ...string) int {
	level := domain.PermissionGuest
	for _, literal := range literals {
		level = max(level, c.Permission(literal, domain.PermissionGuest))
	}
	return level
}

// PermissionChecker returns the predicate guarding the node made of literals.
func (c *Configuration) PermissionChecker(literals ...string) domain.PermissionPredicate {
	if !c.EnablePermissionCheck {
		return func(domain.PermissionHolder) bool { return true }
	}
	level := c.RequiredLevel(literals...)
	return func(h domain.PermissionHolder) bool {
		return h != nil && h.HasPermission(level)
	}
}

// Clone returns a deep copy.
func (c *Configuration) Clone() *Configuration {
	out := *c
	out.CommandPrefix = append(Prefixes(nil), c.CommandPrefix...)
	out.PermissionRequirements = maps.Clone(c.PermissionRequirements)
	return &out
}
