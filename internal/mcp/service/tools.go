package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/sheetwright/internal/mcp/domain"
)

func registerCharacterTools(mcpServer *mcp.Server, fetcher domain.Fetcher) {
	mcp.AddTool(mcpServer, domain.CharacterComputeTool(), domain.CharacterComputeHandler())
	mcp.AddTool(mcpServer, domain.CharacterFetchTool(), domain.CharacterFetchHandler(fetcher))
}

// registerRuleResources registers the readable rule tables.
func registerRuleResources(mcpServer *mcp.Server) {
	mcpServer.AddResource(domain.SpellSlotsResource(), domain.SpellSlotsResourceHandler())
	mcpServer.AddResource(domain.PactMagicResource(), domain.PactMagicResourceHandler())
}
