// Package tool provides the domain model for agent tools.
package tool

import (
	"context"
	"encoding/json"
)

// Tool represents a named external capability the engine can invoke.
type Tool interface {
	// Name returns the stable string identifier, unique within a registry.
	Name() string

	// Description returns a human-readable description of what the tool does.
	Description() string

	// InputSchema returns the declarative JSON Schema for the input.
	// It is metadata only: Execute performs no schema validation beyond
	// what the tool itself enforces.
	InputSchema() Schema

	// Annotations returns the tool's behavioral annotations.
	Annotations() Annotations

	// Execute runs the tool with the given input.
	Execute(ctx context.Context, input json.RawMessage) (Result, error)
}

// Handler is the function signature for tool execution.
type Handler func(ctx context.Context, input json.RawMessage) (Result, error)

// Definition is a concrete implementation of Tool.
type Definition struct {
	name        string
	description string
	inputSchema Schema
	annotations Annotations
	handler     Handler
}

// Name returns the tool name.
func (d *Definition) Name() string {
	return d.name
}

// Description returns the tool description.
func (d *Definition) Description() string {
	return d.description
}

// InputSchema returns the input schema.
func (d *Definition) InputSchema() Schema {
	return d.inputSchema
}

// Annotations returns the tool annotations.
func (d *Definition) Annotations() Annotations {
	return d.annotations
}

// Execute runs the tool handler.
func (d *Definition) Execute(ctx context.Context, input json.RawMessage) (Result, error) {
	if d.handler == nil {
		return Result{}, ErrNoHandler
	}
	return d.handler(ctx, input)
}

// Builder provides a fluent API for constructing tools.
type Builder struct {
	def *Definition
}

// NewBuilder creates a new tool builder with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		def: &Definition{
			name:        name,
			annotations: DefaultAnnotations(),
		},
	}
}

// WithDescription sets the tool description.
func (b *Builder) WithDescription(desc string) *Builder {
	b.def.description = desc
	return b
}

// WithInputSchema sets the input schema.
func (b *Builder) WithInputSchema(schema Schema) *Builder {
	b.def.inputSchema = schema
	return b
}

// WithAnnotations sets the tool annotations.
func (b *Builder) WithAnnotations(annotations Annotations) *Builder {
	b.def.annotations = annotations
	return b
}

// ReadOnly marks the tool as side-effect free.
func (b *Builder) ReadOnly() *Builder {
	b.def.annotations.ReadOnly = true
	b.def.annotations.RiskLevel = RiskNone
	return b
}

// Destructive marks the tool as capable of irreversible changes.
func (b *Builder) Destructive() *Builder {
	b.def.annotations.Destructive = true
	if b.def.annotations.RiskLevel < RiskHigh {
		b.def.annotations.RiskLevel = RiskHigh
	}
	return b
}

// Idempotent marks the tool as safe to retry.
func (b *Builder) Idempotent() *Builder {
	b.def.annotations.Idempotent = true
	return b
}

// WithRiskLevel sets the risk level.
func (b *Builder) WithRiskLevel(level RiskLevel) *Builder {
	b.def.annotations.RiskLevel = level
	return b
}

// WithTags adds tags to the tool.
func (b *Builder) WithTags(tags ...string) *Builder {
	b.def.annotations.Tags = append(b.def.annotations.Tags, tags...)
	return b
}

// WithHandler sets the tool handler function.
func (b *Builder) WithHandler(handler Handler) *Builder {
	b.def.handler = handler
	return b
}

// Build constructs the tool definition.
func (b *Builder) Build() (Tool, error) {
	if b.def.name == "" {
		return nil, ErrEmptyName
	}
	if b.def.handler == nil {
		return nil, ErrNoHandler
	}
	return b.def, nil
}

// MustBuild constructs the tool definition or panics on error.
func (b *Builder) MustBuild() Tool {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
