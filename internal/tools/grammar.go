// Package tools defines the concrete gateway tools and builds the registry
// from configuration. Each capability has a remote-backed implementation and
// a local stub used when no upstream is configured.
package tools

import (
	"context"
	"encoding/json"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/clients/gramadoir"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/mcp"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/models"
)

// GrammarToolName is the stable identifier of the grammar capability.
const GrammarToolName = "gael.grammar_check"

func textArgSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "Irish text to check",
			},
		},
		"required": []any{"text"},
	}
}

type textArgs struct {
	Text string `json:"text"`
}

// GrammarRemote checks Irish grammar by delegating to An Gramadóir.
type GrammarRemote struct {
	client    *gramadoir.Client
	validator *mcp.SchemaValidator
}

// NewGrammarRemote builds the remote-backed grammar tool.
func NewGrammarRemote(client *gramadoir.Client) (*GrammarRemote, error) {
	validator, err := mcp.NewSchemaValidator(textArgSchema())
	if err != nil {
		return nil, err
	}
	return &GrammarRemote{client: client, validator: validator}, nil
}

func (t *GrammarRemote) Name() string        { return GrammarToolName }
func (t *GrammarRemote) Description() string { return "Irish grammar check via An Gramadóir (remote)" }

func (t *GrammarRemote) InputSchema() map[string]any { return textArgSchema() }

// Call validates arguments, invokes the upstream and shapes the result.
func (t *GrammarRemote) Call(ctx context.Context, arguments []byte) (any, error) {
	if err := t.validator.ValidateRaw(arguments); err != nil {
		return nil, err
	}

	var args textArgs
	if err := json.Unmarshal(arguments, &args); err != nil {
		return nil, err
	}

	issues, err := t.client.Check(ctx, args.Text)
	if err != nil {
		return nil, err
	}
	return map[string]any{"issues": issues}, nil
}

// Health reports upstream liveness.
func (t *GrammarRemote) Health(ctx context.Context) bool {
	return t.client.Health(ctx)
}

// GrammarLocal is the stub registered when no upstream is configured. It
// accepts the same arguments and returns an empty issue list.
type GrammarLocal struct {
	validator *mcp.SchemaValidator
}

// NewGrammarLocal builds the local stub grammar tool.
func NewGrammarLocal() (*GrammarLocal, error) {
	validator, err := mcp.NewSchemaValidator(textArgSchema())
	if err != nil {
		return nil, err
	}
	return &GrammarLocal{validator: validator}, nil
}

func (t *GrammarLocal) Name() string        { return GrammarToolName }
func (t *GrammarLocal) Description() string { return "Irish grammar check (local stub)" }

func (t *GrammarLocal) InputSchema() map[string]any { return textArgSchema() }

func (t *GrammarLocal) Call(ctx context.Context, arguments []byte) (any, error) {
	if err := t.validator.ValidateRaw(arguments); err != nil {
		return nil, err
	}
	return map[string]any{"issues": []models.GrammarIssue{}}, nil
}
