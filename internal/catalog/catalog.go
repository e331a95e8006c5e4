// Package catalog holds the static condition data shipped with the binary.
package catalog

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/liliang-cn/claimwizard/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Requirements is the evidence list shown for every selected condition
var Requirements = []string{
	"Current medical diagnosis",
	"Service treatment records",
	"Lay statements or buddy statements",
	"Medical nexus letter",
}

// Catalog is the read-only condition data
type Catalog struct {
	conditions []domain.Condition
	byID       map[int]domain.Condition
	query      []domain.ConditionInfo
}

// Load parses the embedded datasets
func Load() (*Catalog, error) {
	var conditions []domain.Condition
	if err := decode("data/conditions.yaml", &conditions); err != nil {
		return nil, err
	}
	var query []domain.ConditionInfo
	if err := decode("data/query.yaml", &query); err != nil {
		return nil, err
	}
	return New(conditions, query)
}

// MustLoad is Load that panics on error. The data is embedded, so a
// failure is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a catalog from explicit data. Condition IDs must be unique.
func New(conditions []domain.Condition, query []domain.ConditionInfo) (*Catalog, error) {
	byID := make(map[int]domain.Condition, len(conditions))
	for _, c := range conditions {
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate condition id %d", c.ID)
		}
		byID[c.ID] = c
	}
	return &Catalog{conditions: conditions, byID: byID, query: query}, nil
}

func decode(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Conditions returns the wizard catalog in catalog order
func (c *Catalog) Conditions() []domain.Condition {
	out := make([]domain.Condition, len(c.conditions))
	copy(out, c.conditions)
	return out
}

// Get returns the condition with id
func (c *Catalog) Get(id int) (domain.Condition, bool) {
	cond, ok := c.byID[id]
	return cond, ok
}

// Query filters the query dataset by name or description, ignoring case
func (c *Catalog) Query(q string) []domain.ConditionInfo {
	q = strings.ToLower(q)
	out := make([]domain.ConditionInfo, 0, len(c.query))
	for _, info := range c.query {
		if strings.Contains(strings.ToLower(info.Name), q) ||
			strings.Contains(strings.ToLower(info.Description), q) {
			out = append(out, info)
		}
	}
	return out
}
