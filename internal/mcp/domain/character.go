// Package domain defines the MCP tool and resource surface for character
// computation.
package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/sheetwright/internal/beyond"
	apperrors "github.com/louisbranch/sheetwright/internal/platform/errors"
	"github.com/louisbranch/sheetwright/internal/render"
	"github.com/louisbranch/sheetwright/internal/systems/dnd5e"
)

// Fetcher retrieves a normalized character snapshot by ID.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, characterID string) (dnd5e.CharacterSnapshot, error)
}

// CharacterComputeInput represents the MCP tool input for computing a sheet
// from a raw character payload.
type CharacterComputeInput struct {
	Payload     string `json:"payload" jsonschema:"raw character JSON payload"`
	ForceLegacy bool   `json:"force_legacy,omitempty" jsonschema:"force 2014 rules, bypassing detection"`
	ForceModern bool   `json:"force_modern,omitempty" jsonschema:"force 2024 rules, bypassing detection"`
}

// CharacterComputeResult represents the MCP tool output: the full computed
// model plus a rendered markdown sheet.
type CharacterComputeResult struct {
	Model    *dnd5e.CharacterComputedModel `json:"model" jsonschema:"computed character statistics"`
	Markdown string                        `json:"markdown" jsonschema:"rendered markdown character sheet"`
}

// CharacterFetchInput represents the MCP tool input for fetching and
// computing a character by its remote ID.
type CharacterFetchInput struct {
	CharacterID string `json:"character_id" jsonschema:"remote character identifier"`
	ForceLegacy bool   `json:"force_legacy,omitempty" jsonschema:"force 2014 rules, bypassing detection"`
	ForceModern bool   `json:"force_modern,omitempty" jsonschema:"force 2024 rules, bypassing detection"`
}

// CharacterComputeTool defines the MCP tool schema for payload computation.
func CharacterComputeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "character_compute",
		Description: "Computes derived statistics (abilities, HP, AC, proficiencies, spell slots) from a raw character JSON payload",
	}
}

// CharacterFetchTool defines the MCP tool schema for fetch-and-compute.
func CharacterFetchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "character_fetch",
		Description: "Fetches a character from the character service by ID and computes its derived statistics",
	}
}

// CharacterComputeHandler executes a payload computation request.
func CharacterComputeHandler() mcp.ToolHandlerFor[CharacterComputeInput, CharacterComputeResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CharacterComputeInput) (*mcp.CallToolResult, CharacterComputeResult, error) {
		if input.Payload == "" {
			return nil, CharacterComputeResult{}, fmt.Errorf("payload is required")
		}
		snap, err := beyond.DecodeSnapshot([]byte(input.Payload))
		if err != nil {
			return nil, CharacterComputeResult{}, fmt.Errorf("decode payload: %w", err)
		}
		return computeResult(snap, input.ForceLegacy, input.ForceModern)
	}
}

// CharacterFetchHandler executes a fetch-and-compute request.
func CharacterFetchHandler(fetcher Fetcher) mcp.ToolHandlerFor[CharacterFetchInput, CharacterComputeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterFetchInput) (*mcp.CallToolResult, CharacterComputeResult, error) {
		if fetcher == nil {
			return nil, CharacterComputeResult{}, fmt.Errorf("character fetching is not configured")
		}
		if input.CharacterID == "" {
			return nil, CharacterComputeResult{}, fmt.Errorf("character id is required")
		}
		snap, err := fetcher.FetchSnapshot(ctx, input.CharacterID)
		if err != nil {
			return nil, CharacterComputeResult{}, fmt.Errorf("fetch character %s: %w", input.CharacterID, err)
		}
		return computeResult(snap, input.ForceLegacy, input.ForceModern)
	}
}

func computeResult(snap dnd5e.CharacterSnapshot, forceLegacy, forceModern bool) (*mcp.CallToolResult, CharacterComputeResult, error) {
	model, err := dnd5e.Compute(snap, dnd5e.Options{
		ForceLegacy: forceLegacy,
		ForceModern: forceModern,
	})
	if err != nil {
		if code := apperrors.CodeOf(err); code != apperrors.CodeUnknown {
			return nil, CharacterComputeResult{}, fmt.Errorf("compute failed (%s): %w", code, err)
		}
		return nil, CharacterComputeResult{}, fmt.Errorf("compute failed: %w", err)
	}
	return nil, CharacterComputeResult{
		Model:    model,
		Markdown: render.Markdown(model),
	}, nil
}
