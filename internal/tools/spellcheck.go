package tools

import (
	"context"
	"encoding/json"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/clients/gaelspell"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/mcp"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/models"
)

// SpellToolName is the stable identifier of the spellcheck capability.
const SpellToolName = "spell.check"

// SpellRemote checks Irish spelling by delegating to GaelSpell.
type SpellRemote struct {
	client    *gaelspell.Client
	validator *mcp.SchemaValidator
}

// NewSpellRemote builds the remote-backed spellcheck tool.
func NewSpellRemote(client *gaelspell.Client) (*SpellRemote, error) {
	validator, err := mcp.NewSchemaValidator(textArgSchema())
	if err != nil {
		return nil, err
	}
	return &SpellRemote{client: client, validator: validator}, nil
}

func (t *SpellRemote) Name() string        { return SpellToolName }
func (t *SpellRemote) Description() string { return "Irish spellcheck via GaelSpell (remote)" }

func (t *SpellRemote) InputSchema() map[string]any { return textArgSchema() }

func (t *SpellRemote) Call(ctx context.Context, arguments []byte) (any, error) {
	if err := t.validator.ValidateRaw(arguments); err != nil {
		return nil, err
	}

	var args textArgs
	if err := json.Unmarshal(arguments, &args); err != nil {
		return nil, err
	}

	corrections, err := t.client.Check(ctx, args.Text)
	if err != nil {
		return nil, err
	}
	return map[string]any{"corrections": corrections}, nil
}

// Health reports upstream liveness.
func (t *SpellRemote) Health(ctx context.Context) bool {
	return t.client.Health(ctx)
}

// SpellLocal is the stub registered when no upstream is configured.
type SpellLocal struct {
	validator *mcp.SchemaValidator
}

// NewSpellLocal builds the local stub spellcheck tool.
func NewSpellLocal() (*SpellLocal, error) {
	validator, err := mcp.NewSchemaValidator(textArgSchema())
	if err != nil {
		return nil, err
	}
	return &SpellLocal{validator: validator}, nil
}

func (t *SpellLocal) Name() string        { return SpellToolName }
func (t *SpellLocal) Description() string { return "Irish spellcheck (local stub)" }

func (t *SpellLocal) InputSchema() map[string]any { return textArgSchema() }

func (t *SpellLocal) Call(ctx context.Context, arguments []byte) (any, error) {
	if err := t.validator.ValidateRaw(arguments); err != nil {
		return nil, err
	}
	return map[string]any{"corrections": []models.Correction{}}, nil
}
