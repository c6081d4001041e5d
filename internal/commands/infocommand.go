package commands

import (
	"fmt"

	"github.com/jo-hoe/imgsuite/internal/invocation"
)

// InfoParams represents typed parameters for the info command
type InfoParams struct {
	Path string
}

// NewInfoParamsFromMap creates InfoParams from a generic map
func NewInfoParamsFromMap(params map[string]any) (*InfoParams, error) {
	if err := invocation.ValidateRequiredParams(params, []string{"path"}); err != nil {
		return nil, err
	}

	path := invocation.GetStringParam(params, "path", "")
	if path == "" {
		return nil, fmt.Errorf("path must be non-empty")
	}

	return &InfoParams{Path: path}, nil
}

// InfoCommand builds a metadata-info invocation for a single image file.
// The path is not checked against the filesystem; a missing or invalid file
// surfaces as a tool failure at execution time.
type InfoCommand struct {
	name   string
	params *InfoParams
}

// NewInfoCommand creates a new info command from configuration parameters
func NewInfoCommand(params map[string]any) (invocation.Command, error) {
	typedParams, err := NewInfoParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &InfoCommand{
		name:   "InfoCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *InfoCommand) Name() string {
	return c.name
}

// Invocation returns the structured invocation for this command
func (c *InfoCommand) Invocation() invocation.Invocation {
	return invocation.Invocation{
		Kind: invocation.KindInfo,
		Args: []string{c.params.Path},
	}
}

func init() {
	// Register the command in the default registry
	if err := invocation.DefaultRegistry.Register("InfoCommand", NewInfoCommand); err != nil {
		panic(fmt.Sprintf("failed to register InfoCommand: %v", err))
	}
}
