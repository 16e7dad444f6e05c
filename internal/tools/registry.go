package tools

import (
	"log/slog"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/cache"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/clients/gaelspell"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/clients/gramadoir"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/config"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/mcp"
)

// BuildRegistry constructs the immutable tool registry from configuration.
// Each capability always gets a local stub; a configured base URL upgrades it
// to the remote implementation via last-write-wins registration.
func BuildRegistry(cfg *config.Config, resultCache *cache.Cache, logger *slog.Logger) (*mcp.Registry, error) {
	var toolset []mcp.Tool

	grammarLocal, err := NewGrammarLocal()
	if err != nil {
		return nil, err
	}
	spellLocal, err := NewSpellLocal()
	if err != nil {
		return nil, err
	}
	toolset = append(toolset, grammarLocal, spellLocal)

	if cfg.GramadoirBaseURL != "" {
		client := gramadoir.New(cfg.GramadoirBaseURL, cfg.RetryAttempts, resultCache, logger)
		remote, err := NewGrammarRemote(client)
		if err != nil {
			return nil, err
		}
		toolset = append(toolset, remote)
		logger.Info("tool_registered", "tool", GrammarToolName, "backend", "remote", "base_url", cfg.GramadoirBaseURL)
	} else {
		logger.Info("tool_registered", "tool", GrammarToolName, "backend", "local_stub")
	}

	if cfg.SpellcheckBaseURL != "" {
		client := gaelspell.New(cfg.SpellcheckBaseURL, cfg.RetryAttempts, resultCache, logger)
		remote, err := NewSpellRemote(client)
		if err != nil {
			return nil, err
		}
		toolset = append(toolset, remote)
		logger.Info("tool_registered", "tool", SpellToolName, "backend", "remote", "base_url", cfg.SpellcheckBaseURL)
	} else {
		logger.Info("tool_registered", "tool", SpellToolName, "backend", "local_stub")
	}

	return mcp.NewRegistry(toolset...), nil
}
