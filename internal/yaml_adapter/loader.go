// Package yaml_adapter loads project plans from YAML documents:
//
//	name: Website
//	resources:
//	  - {id: 1, name: Dev, cost_per_hour: 30}
//	tasks:
//	  - {id: 1, name: Design, duration: 8, cost: 240, resource: 1}
//	  - {id: 2, name: Launch, depends_on: [1]}
//
// Omitted IDs default to the 1-based position in their list.
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/evmsim/internal/config"
	"github.com/specialistvlad/evmsim/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type document struct {
	Name      string          `yaml:"name"`
	Resources []*resourceNode `yaml:"resources"`
	Tasks     []*taskNode     `yaml:"tasks"`
}

type resourceNode struct {
	ID          *int    `yaml:"id"`
	Name        string  `yaml:"name"`
	CostPerHour float64 `yaml:"cost_per_hour"`
}

type taskNode struct {
	ID        *int    `yaml:"id"`
	Name      string  `yaml:"name"`
	Duration  float64 `yaml:"duration"`
	Cost      float64 `yaml:"cost"`
	Resource  *int    `yaml:"resource"`
	DependsOn []int   `yaml:"depends_on"`
}

// Loader is the YAML implementation of config.ProjectLoader.
type Loader struct{}

// NewLoader creates a new YAML project loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.ProjectLoader = (*Loader)(nil)

// LoadProject reads a single YAML document. Unknown keys are rejected.
func (l *Loader) LoadProject(ctx context.Context, path string) (*config.ProjectDef, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML project loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, config.NotFound(path, nil)
		}
		return nil, &config.LoadError{Path: path, Err: err}
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, config.Malformed(path, "empty document")
		}
		return nil, config.Malformed(path, "failed to decode YAML: %s", err.Error())
	}

	def, err := translate(&doc)
	if err != nil {
		return nil, config.Malformed(path, "%s", err.Error())
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	logger.Debug("YAML project loading complete.", "name", def.Name, "resources", len(def.Resources), "tasks", len(def.Tasks))
	return def, nil
}

func translate(doc *document) (*config.ProjectDef, error) {
	def := &config.ProjectDef{Name: doc.Name}

	for i, r := range doc.Resources {
		if r == nil {
			return nil, fmt.Errorf("resources[%d]: empty entry", i)
		}
		if r.CostPerHour < 0 {
			return nil, fmt.Errorf("resources[%d]: cost_per_hour must be >= 0, got %g", i, r.CostPerHour)
		}
		def.Resources = append(def.Resources, &config.ResourceDef{
			ID:          idOr(r.ID, i),
			Name:        r.Name,
			CostPerHour: r.CostPerHour,
		})
	}

	for i, t := range doc.Tasks {
		if t == nil {
			return nil, fmt.Errorf("tasks[%d]: empty entry", i)
		}
		if t.Duration < 0 || t.Cost < 0 {
			return nil, fmt.Errorf("tasks[%d]: duration and cost must be >= 0, got %g and %g", i, t.Duration, t.Cost)
		}
		def.Tasks = append(def.Tasks, &config.TaskDef{
			ID:               idOr(t.ID, i),
			Name:             t.Name,
			Duration:         t.Duration,
			Cost:             t.Cost,
			RequiredResource: t.Resource,
			DependsOn:        t.DependsOn,
		})
	}
	return def, nil
}

func idOr(id *int, index int) int {
	if id != nil {
		return *id
	}
	return index + 1
}
