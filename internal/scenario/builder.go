// Package scenario builds and runs ordered sequences of image-tool
// invocations: one metadata query per sample file, followed by a format
// conversion and a metadata query on its output.
package scenario

import (
	"fmt"

	"github.com/jo-hoe/imgsuite/internal/invocation"

	// Registers the info and conversion command factories
	_ "github.com/jo-hoe/imgsuite/internal/commands"
)

// Conversion names the source asset and conversion target of a scenario.
type Conversion struct {
	Source string
	Target string
}

// Builder constructs the invocation sequence for one suite run. All context
// is explicit; the builder holds no hidden state and performs no I/O, so the
// same inputs always produce an identical sequence.
type Builder struct {
	ImageDir   string
	Samples    []string
	Conversion Conversion

	registry *invocation.CommandRegistry
}

// NewBuilder creates a builder over the given sample corpus.
func NewBuilder(imageDir string, samples []string, conversion Conversion) *Builder {
	return &Builder{
		ImageDir:   imageDir,
		Samples:    samples,
		Conversion: conversion,
		registry:   invocation.DefaultRegistry,
	}
}

// Sequence is an ordered, append-only list of invocations. List order equals
// intended execution order.
type Sequence []invocation.Invocation

// Render returns the command strings for the whole sequence in execution order.
func (s Sequence) Render(tool string) []string {
	rendered := make([]string, 0, len(s))
	for _, inv := range s {
		rendered = append(rendered, inv.Render(tool))
	}
	return rendered
}

// Build constructs the full sequence: one info invocation per sample in list
// order, then the conversion, then one info invocation on the conversion
// target. Steps are declared as command configurations and resolved through
// the command registry. Sample paths are composed as ImageDir + "/" + name;
// no filesystem checks happen here.
func (b *Builder) Build() (Sequence, error) {
	configs := b.commandConfigs()

	sequence := make(Sequence, 0, len(configs))
	for i, config := range configs {
		command, err := b.registry.Create(config.Name, config.Params)
		if err != nil {
			return nil, fmt.Errorf("invalid step at index %d: %w", i, err)
		}
		sequence = append(sequence, command.Invocation())
	}
	return sequence, nil
}

// commandConfigs declares the scenario's steps in execution order.
func (b *Builder) commandConfigs() []invocation.CommandConfig {
	configs := make([]invocation.CommandConfig, 0, len(b.Samples)+2)

	for _, sample := range b.Samples {
		configs = append(configs, invocation.CommandConfig{
			Name:   "InfoCommand",
			Params: map[string]any{"path": b.samplePath(sample)},
		})
	}

	if b.Conversion.Source == "" && b.Conversion.Target == "" {
		return configs
	}

	configs = append(configs, invocation.CommandConfig{
		Name:   "ConvertCommand",
		Params: map[string]any{"source": b.Conversion.Source, "target": b.Conversion.Target},
	})

	// Validate the conversion output by querying its metadata
	configs = append(configs, invocation.CommandConfig{
		Name:   "InfoCommand",
		Params: map[string]any{"path": b.Conversion.Target},
	})

	return configs
}

func (b *Builder) samplePath(name string) string {
	if b.ImageDir == "" {
		return name
	}
	// Plain "/" join keeps rendered commands identical across platforms
	return b.ImageDir + "/" + name
}
