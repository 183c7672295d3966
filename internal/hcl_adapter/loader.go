package hcl_adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/evmsim/internal/config"
	"github.com/specialistvlad/evmsim/internal/ctxlog"
	"github.com/specialistvlad/evmsim/internal/fsutil"
)

// Loader is the HCL implementation of config.ProjectLoader and
// config.ExperimentLoader.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var (
	_ config.ProjectLoader    = (*Loader)(nil)
	_ config.ExperimentLoader = (*Loader)(nil)
)

// LoadProject loads a project plan from a single .hcl file or from every .hcl
// file under a directory. Blocks from all files are merged in lexical file
// order, so implicit IDs follow that order.
func (l *Loader) LoadProject(ctx context.Context, path string) (*config.ProjectDef, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL project loader started.", "path", path)

	files, err := l.findAllHCLFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, config.NotFound(path, errors.New("no .hcl files found"))
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var merged projectFile
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, config.Malformed(path, "failed to parse HCL file %s: %s", file, diags.Error())
		}

		var root projectFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, config.Malformed(path, "failed to decode HCL file %s: %s", file, diags.Error())
		}
		merged.Projects = append(merged.Projects, root.Projects...)
		merged.Variables = append(merged.Variables, root.Variables...)
		merged.Resources = append(merged.Resources, root.Resources...)
		merged.Tasks = append(merged.Tasks, root.Tasks...)
	}

	def, err := l.translateProject(ctx, &merged)
	if err != nil {
		return nil, config.Malformed(path, "%s", err.Error())
	}
	if def.Name == "" {
		def.Name = filepath.Base(path)
	}

	logger.Debug("HCL project loading complete.", "name", def.Name, "resources", len(def.Resources), "tasks", len(def.Tasks))
	return def, nil
}

// LoadExperiment loads an experiment file holding exactly one experiment
// block. A relative project path is resolved against the experiment file's
// directory.
func (l *Loader) LoadExperiment(ctx context.Context, path string) (*config.Experiment, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL experiment loader started.", "path", path)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, config.NotFound(path, nil)
		}
		return nil, &config.LoadError{Path: path, Err: err}
	}

	hclFile, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, config.Malformed(path, "failed to parse HCL file: %s", diags.Error())
	}

	var root experimentFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, config.Malformed(path, "failed to decode HCL file: %s", diags.Error())
	}
	if len(root.Experiments) != 1 {
		return nil, config.Malformed(path, "expected exactly one experiment block, found %d", len(root.Experiments))
	}

	vars, err := evalVariables(root.Variables)
	if err != nil {
		return nil, config.Malformed(path, "%s", err.Error())
	}

	header := root.Experiments[0]
	var block experimentBlock
	if diags := gohcl.DecodeBody(header.Body, newEvalContext(vars, nil), &block); diags.HasErrors() {
		return nil, config.Malformed(path, "failed to decode experiment %q: %s", header.Name, diags.Error())
	}

	exp, err := translateExperiment(header.Name, &block)
	if err != nil {
		return nil, config.Malformed(path, "experiment %q: %s", header.Name, err.Error())
	}
	if exp.ProjectPath != "" && !filepath.IsAbs(exp.ProjectPath) {
		exp.ProjectPath = filepath.Join(filepath.Dir(path), exp.ProjectPath)
	}

	logger.Debug("HCL experiment loading complete.", "name", exp.Name, "project", exp.ProjectPath)
	return exp, nil
}

// findAllHCLFiles returns the path itself for a file, or every .hcl file
// under it, sorted, for a directory.
func (l *Loader) findAllHCLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, config.NotFound(path, nil)
		}
		return nil, &config.LoadError{Path: path, Err: fmt.Errorf("error accessing path: %w", err)}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, &config.LoadError{Path: path, Err: err}
	}
	slices.Sort(files)
	return files, nil
}
