package commands

import (
	"fmt"

	"github.com/jo-hoe/imgsuite/internal/invocation"
)

// ConvertParams represents typed parameters for the conversion command
type ConvertParams struct {
	Source string
	Target string
}

// NewConvertParamsFromMap creates ConvertParams from a generic map
func NewConvertParamsFromMap(params map[string]any) (*ConvertParams, error) {
	if err := invocation.ValidateRequiredParams(params, []string{"source", "target"}); err != nil {
		return nil, err
	}

	source := invocation.GetStringParam(params, "source", "")
	target := invocation.GetStringParam(params, "target", "")
	if source == "" {
		return nil, fmt.Errorf("source must be non-empty")
	}
	if target == "" {
		return nil, fmt.Errorf("target must be non-empty")
	}

	return &ConvertParams{
		Source: source,
		Target: target,
	}, nil
}

// ConvertCommand builds a format-conversion invocation. The target format is
// implied by the target path's extension, which the tool resolves on its own.
type ConvertCommand struct {
	name   string
	params *ConvertParams
}

// NewConvertCommand creates a new conversion command from configuration parameters
func NewConvertCommand(params map[string]any) (invocation.Command, error) {
	typedParams, err := NewConvertParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &ConvertCommand{
		name:   "ConvertCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *ConvertCommand) Name() string {
	return c.name
}

// Invocation returns the structured invocation for this command
func (c *ConvertCommand) Invocation() invocation.Invocation {
	return invocation.Invocation{
		Kind: invocation.KindConvert,
		Args: []string{c.params.Source, c.params.Target},
	}
}

func init() {
	// Register the command in the default registry
	if err := invocation.DefaultRegistry.Register("ConvertCommand", NewConvertCommand); err != nil {
		panic(fmt.Sprintf("failed to register ConvertCommand: %v", err))
	}
}
