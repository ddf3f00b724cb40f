package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

// SpellSlotRow is one caster level's regular slot counts.
type SpellSlotRow struct {
	CasterLevel int    `json:"caster_level"`
	Slots       [9]int `json:"slots"`
}

// PactMagicRow is one warlock level's pact slot pool.
type PactMagicRow struct {
	WarlockLevel int `json:"warlock_level"`
	SlotLevel    int `json:"slot_level"`
	SlotCount    int `json:"slot_count"`
}

// SpellSlotsResource defines the readable multiclass spell slot table.
func SpellSlotsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "spell_slots",
		Title:       "Multiclass Spell Slots",
		Description: "Regular spell slots by effective caster level 1-20",
		MIMEType:    "application/json",
		URI:         "srd://spell-slots",
	}
}

// PactMagicResource defines the readable pact magic table.
func PactMagicResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "pact_magic",
		Title:       "Pact Magic Slots",
		Description: "Pact slot level and count by warlock level 1-20",
		MIMEType:    "application/json",
		URI:         "srd://pact-magic",
	}
}

// SpellSlotsResourceHandler serves the regular slot table.
func SpellSlotsResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		rows := make([]SpellSlotRow, 0, 20)
		for level := 1; level <= 20; level++ {
			rows = append(rows, SpellSlotRow{
				CasterLevel: level,
				Slots:       srd.RegularSlots(level),
			})
		}
		return resourceJSON(SpellSlotsResource().URI, req, rows)
	}
}

// PactMagicResourceHandler serves the pact magic table.
func PactMagicResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		rows := make([]PactMagicRow, 0, 20)
		for level := 1; level <= 20; level++ {
			slotLevel, slotCount := srd.PactSlots(level)
			rows = append(rows, PactMagicRow{
				WarlockLevel: level,
				SlotLevel:    slotLevel,
				SlotCount:    slotCount,
			})
		}
		return resourceJSON(PactMagicResource().URI, req, rows)
	}
}

func resourceJSON(defaultURI string, req *mcp.ReadResourceRequest, payload any) (*mcp.ReadResourceResult, error) {
	uri := defaultURI
	if req != nil && req.Params != nil && req.Params.URI != "" {
		uri = req.Params.URI
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
