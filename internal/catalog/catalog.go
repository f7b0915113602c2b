// Package catalog holds the read-only reference data of the recommender:
// sectors, clusters, rule tables, questions and narrative templates.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"entrematch/internal/domain"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	catalogFile    = "catalog.yaml"
	narrativesFile = "narratives.yaml"
	prototypeSize  = 4
)

var ErrInvalidCatalog = errors.New("invalid catalog")

type Question struct {
	Key       string       `yaml:"key" json:"key"`
	Dimension string       `yaml:"dimension,omitempty" json:"dimension,omitempty"`
	Trait     domain.Trait `yaml:"trait,omitempty" json:"trait,omitempty"`
	Reverse   bool         `yaml:"reverse,omitempty" json:"reverse,omitempty"`
	Text      string       `yaml:"text" json:"text"`
}

type Sector struct {
	Name        string    `yaml:"name" json:"name"`
	Prototype   []float64 `yaml:"prototype" json:"prototype"`
	Description string    `yaml:"description" json:"description"`
}

type Cluster struct {
	Name        string                  `yaml:"name" json:"name"`
	Members     []string                `yaml:"members" json:"members"`
	Signature   map[domain.Trait]string `yaml:"signature" json:"signature"`
	Description string                  `yaml:"description" json:"description"`
}

// Accepted splits the signature cell of a trait into its alternatives.
func (c Cluster) Accepted(t domain.Trait) []domain.Notation {
	cell := strings.TrimSpace(c.Signature[t])
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, "/")
	out := make([]domain.Notation, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, domain.Notation(p))
		}
	}
	return out
}

func (c Cluster) HasMember(sector string) bool {
	for _, m := range c.Members {
		if m == sector {
			return true
		}
	}
	return false
}

// Rules maps dimension -> level -> sectors.
type Rules map[string]map[domain.Level][]string

// Templates maps question key -> Likert value -> sentence.
type Templates map[string]map[int]string

type Catalog struct {
	Sectors   []Sector  `yaml:"sectors"`
	Clusters  []Cluster `yaml:"clusters"`
	Rules     Rules     `yaml:"rules"`
	Questions struct {
		Entrepreneurial []Question `yaml:"entrepreneurial"`
		Personality     []Question `yaml:"personality"`
	} `yaml:"questions"`
	Narratives struct {
		Entrepreneurial Templates `yaml:"entrepreneurial"`
		Personality     Templates `yaml:"personality"`
	} `yaml:"-"`

	sectorIdx  map[string]int
	clusterIdx map[string]int
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultCat, defaultErr = Load(sub)
	})
	return defaultCat, defaultErr
}

// LoadDir reads catalog.yaml and narratives.yaml from a directory.
func LoadDir(dir string) (*Catalog, error) {
	return Load(os.DirFS(dir))
}

// Load parses and validates the catalog files found in fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, catalogFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", catalogFile, err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parse %s: %w", catalogFile, err)
	}
	raw, err = fs.ReadFile(fsys, narrativesFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", narrativesFile, err)
	}
	if err := yaml.Unmarshal(raw, &cat.Narratives); err != nil {
		return nil, fmt.Errorf("parse %s: %w", narrativesFile, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks cross references and builds the name indexes.
func (c *Catalog) Validate() error {
	if len(c.Sectors) == 0 || len(c.Clusters) == 0 {
		return fmt.Errorf("%w: sectors and clusters are required", ErrInvalidCatalog)
	}
	c.sectorIdx = make(map[string]int, len(c.Sectors))
	for i, s := range c.Sectors {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: sector %d has no name", ErrInvalidCatalog, i)
		}
		if _, dup := c.sectorIdx[s.Name]; dup {
			return fmt.Errorf("%w: duplicate sector %q", ErrInvalidCatalog, s.Name)
		}
		if len(s.Prototype) != prototypeSize {
			return fmt.Errorf("%w: sector %q prototype has %d values", ErrInvalidCatalog, s.Name, len(s.Prototype))
		}
		c.sectorIdx[s.Name] = i
	}

	c.clusterIdx = make(map[string]int, len(c.Clusters))
	for i, cl := range c.Clusters {
		if _, dup := c.clusterIdx[cl.Name]; dup {
			return fmt.Errorf("%w: duplicate cluster %q", ErrInvalidCatalog, cl.Name)
		}
		for _, m := range cl.Members {
			if _, ok := c.sectorIdx[m]; !ok {
				return fmt.Errorf("%w: cluster %q member %q is not a sector", ErrInvalidCatalog, cl.Name, m)
			}
		}
		for _, t := range domain.Traits {
			accepted := cl.Accepted(t)
			if len(accepted) == 0 {
				return fmt.Errorf("%w: cluster %q has no signature for %s", ErrInvalidCatalog, cl.Name, t)
			}
			for _, n := range accepted {
				if !n.Valid() {
					return fmt.Errorf("%w: cluster %q signature %q", ErrInvalidCatalog, cl.Name, n)
				}
			}
		}
		c.clusterIdx[cl.Name] = i
	}

	for _, dim := range domain.RuleDimensions {
		if _, ok := c.Rules[dim]; !ok {
			return fmt.Errorf("%w: no rules for %s", ErrInvalidCatalog, dim)
		}
	}
	for dim, cells := range c.Rules {
		for level, sectors := range cells {
			for _, s := range sectors {
				if _, ok := c.sectorIdx[s]; !ok {
					return fmt.Errorf("%w: rule %s/%s names unknown sector %q", ErrInvalidCatalog, dim, level, s)
				}
			}
		}
	}

	seen := make(map[string]struct{})
	for _, q := range c.Questions.Entrepreneurial {
		switch q.Dimension {
		case domain.DimensionSelfEfficacy, domain.DimensionInnovativeness, domain.DimensionNeedAchievement,
			domain.DimensionLocInternal, domain.DimensionLocExternal:
		default:
			return fmt.Errorf("%w: question %q has dimension %q", ErrInvalidCatalog, q.Key, q.Dimension)
		}
		if err := markKey(seen, q.Key); err != nil {
			return err
		}
	}
	for _, q := range c.Questions.Personality {
		switch q.Trait {
		case domain.TraitOpenness, domain.TraitConscientiousness, domain.TraitExtraversion,
			domain.TraitAgreeableness, domain.TraitNeuroticism:
		default:
			return fmt.Errorf("%w: question %q has trait %q", ErrInvalidCatalog, q.Key, q.Trait)
		}
		if err := markKey(seen, q.Key); err != nil {
			return err
		}
	}
	for _, tpl := range []Templates{c.Narratives.Entrepreneurial, c.Narratives.Personality} {
		for key := range tpl {
			if _, ok := seen[key]; !ok {
				return fmt.Errorf("%w: narrative for unknown question %q", ErrInvalidCatalog, key)
			}
		}
	}
	return nil
}

func markKey(seen map[string]struct{}, key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: question without key", ErrInvalidCatalog)
	}
	if _, dup := seen[key]; dup {
		return fmt.Errorf("%w: duplicate question %q", ErrInvalidCatalog, key)
	}
	seen[key] = struct{}{}
	return nil
}

func (c *Catalog) Sector(name string) (Sector, bool) {
	i, ok := c.sectorIdx[name]
	if !ok {
		return Sector{}, false
	}
	return c.Sectors[i], true
}

func (c *Catalog) Cluster(name string) (Cluster, bool) {
	i, ok := c.clusterIdx[name]
	if !ok {
		return Cluster{}, false
	}
	return c.Clusters[i], true
}

// SectionQuestions returns the ordered questions of a section.
func (c *Catalog) SectionQuestions(section domain.Section) []Question {
	switch section {
	case domain.SectionEntrepreneurial:
		return c.Questions.Entrepreneurial
	case domain.SectionPersonality:
		return c.Questions.Personality
	}
	return nil
}

func (c *Catalog) SectionTemplates(section domain.Section) Templates {
	switch section {
	case domain.SectionEntrepreneurial:
		return c.Narratives.Entrepreneurial
	case domain.SectionPersonality:
		return c.Narratives.Personality
	}
	return nil
}

// HasQuestion reports whether key belongs to the given section.
func (c *Catalog) HasQuestion(section domain.Section, key string) bool {
	for _, q := range c.SectionQuestions(section) {
		if q.Key == key {
			return true
		}
	}
	return false
}
