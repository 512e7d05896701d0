package roles

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the read-only requirement and multiplier configuration.
// It is built once and shared between concurrent assignment runs.
type Catalog struct {
	requirements map[Role]Requirement
	multipliers  map[string]map[Role]float64
}

// NewCatalog validates and copies the given tables into a Catalog
func NewCatalog(reqs map[Role]Requirement, mults map[string]map[Role]float64) (*Catalog, error) {
	c := &Catalog{
		requirements: make(map[Role]Requirement, len(All)),
		multipliers:  make(map[string]map[Role]float64, len(mults)),
	}

	for role, req := range reqs {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q in requirements", ErrConfiguration, role)
		}
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("%w: role %s: %v", ErrConfiguration, role, err)
		}
		c.requirements[role] = req
	}
	for _, role := range All {
		if _, ok := c.requirements[role]; !ok {
			return nil, fmt.Errorf("%w: missing requirements for role %s", ErrConfiguration, role)
		}
	}

	for meetingType, table := range mults {
		copied := make(map[Role]float64, len(table))
		for role, m := range table {
			if !role.Valid() {
				return nil, fmt.Errorf("%w: unknown role %q in %s multipliers", ErrConfiguration, role, meetingType)
			}
			if m <= 0 {
				return nil, fmt.Errorf("%w: multiplier for %s/%s must be positive, got %g", ErrConfiguration, meetingType, role, m)
			}
			copied[role] = m
		}
		c.multipliers[meetingType] = copied
	}

	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := NewCatalog(DefaultRequirements(), DefaultMultipliers())
	if err != nil {
		panic(err)
	}
	return c
}

// RequirementsFor returns the requirement of a role
func (c *Catalog) RequirementsFor(r Role) (Requirement, bool) {
	req, ok := c.requirements[r]
	return req, ok
}

// MultiplierFor returns the weighting of a role for a meeting type.
// Unknown meeting types or roles are neutral.
func (c *Catalog) MultiplierFor(meetingType string, r Role) float64 {
	if m, ok := c.multipliers[meetingType][r]; ok {
		return m
	}
	return 1.0
}

// Requirements returns the requirement matrix keyed by role name
func (c *Catalog) Requirements() map[string]Requirement {
	out := make(map[string]Requirement, len(c.requirements))
	for role, req := range c.requirements {
		out[string(role)] = req
	}
	return out
}

// Multipliers returns the multiplier table keyed by meeting type, then role name
func (c *Catalog) Multipliers() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(c.multipliers))
	for meetingType, table := range c.multipliers {
		row := make(map[string]float64, len(table))
		for role, m := range table {
			row[string(role)] = m
		}
		out[meetingType] = row
	}
	return out
}

// File is the on-disk catalog layout
type File struct {
	RoleRequirements   map[string]Requirement        `yaml:"role_requirements"`
	MeetingMultipliers map[string]map[string]float64 `yaml:"meeting_multipliers"`
}

// ToFile renders the catalog in its on-disk layout
func (c *Catalog) ToFile() File {
	return File{RoleRequirements: c.Requirements(), MeetingMultipliers: c.Multipliers()}
}

// Load reads a YAML catalog. A section missing from the file keeps the
// built-in table; a present requirements section must cover every role.
// Multipliers are merged into the built-in table per meeting type and role.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrConfiguration, path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a catalog from YAML bytes
func ParseCatalog(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse catalog: %v", ErrConfiguration, err)
	}

	reqs := DefaultRequirements()
	if f.RoleRequirements != nil {
		reqs = make(map[Role]Requirement, len(f.RoleRequirements))
		for name, req := range f.RoleRequirements {
			reqs[Role(name)] = req
		}
	}

	// multipliers merge over the built-in table one value at a time
	mults := DefaultMultipliers()
	for meetingType, table := range f.MeetingMultipliers {
		row, ok := mults[meetingType]
		if !ok {
			row = make(map[Role]float64, len(table))
			mults[meetingType] = row
		}
		for name, m := range table {
			row[Role(name)] = m
		}
	}

	return NewCatalog(reqs, mults)
}
