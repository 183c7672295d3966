// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file translates a loaded config.ProjectDef into a validated Project.
package model

import (
	"fmt"

	"github.com/specialistvlad/evmsim/internal/config"
)

// FromConfig builds a validated project from its format-agnostic definition.
func FromConfig(def *config.ProjectDef) (*Project, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil project definition", ErrInvalidPlan)
	}

	p := NewProject(def.Name)
	for _, rd := range def.Resources {
		if rd == nil {
			continue
		}
		if err := p.AddResource(NewResource(rd.ID, rd.Name, rd.CostPerHour)); err != nil {
			return nil, err
		}
	}
	for _, td := range def.Tasks {
		if td == nil {
			continue
		}
		t := NewTask(td.ID, td.Name, td.Duration, td.Cost, td.DependsOn...)
		if td.RequiredResource != nil {
			t.WithRequiredResource(*td.RequiredResource)
		}
		if err := p.AddTask(t); err != nil {
			return nil, err
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
