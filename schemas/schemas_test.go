package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/proposal-assistant/internal/schemas"
	schemafiles "github.com/jonathan/proposal-assistant/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, name := range schemafiles.Names() {
		t.Run(name, func(t *testing.T) {
			content, err := schemafiles.Load(name)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(content), &schemaObj), "schema file should be valid JSON: %s", name)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare type and $schema")
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := schemafiles.Load("nope.schema.json")
	assert.Error(t, err)
}

func TestGenerationResponse_Examples(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		valid bool
	}{
		{name: "portuguese keys", json: `{"textoExplicacao": "Texto", "duvidaPertinente": "?", "prazo": 10, "valor": 1000}`, valid: true},
		{name: "english aliases", json: `{"textExplanation": "Text", "deadline": 5, "value": null}`, valid: true},
		{name: "null overrides", json: `{"textoExplicacao": "Texto", "prazo": null, "valor": null}`, valid: true},
		{name: "missing explanation", json: `{"duvidaPertinente": "?", "prazo": 10}`, valid: false},
		{name: "string deadline", json: `{"textoExplicacao": "Texto", "prazo": "10 dias"}`, valid: false},
		{name: "negative price", json: `{"textoExplicacao": "Texto", "valor": -1}`, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateEmbedded(schemafiles.GenerationResponse, tt.json)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestProposalResult_InviablePlaceholder(t *testing.T) {
	body := `{"textoProposta": "este projeto você pula.", "prazo": 0, "valor": 0, "complexidade": "simple", "viabilidade": "inviável (blacklist: php)"}`

	assert.NoError(t, schemas.ValidateEmbedded(schemafiles.ProposalResult, body))
}

func TestProjectInput_RequiresTitle(t *testing.T) {
	assert.NoError(t, schemas.ValidateEmbedded(schemafiles.ProjectInput, `{"tituloProjeto": "Site", "userConfig": {"userRole": "designer"}}`))
	assert.Error(t, schemas.ValidateEmbedded(schemafiles.ProjectInput, `{"descricaoProjeto": "sem título"}`))
	assert.Error(t, schemas.ValidateEmbedded(schemafiles.ProjectInput, `{"tituloProjeto": "Site", "userConfig": {"valueAdjustment": 5000}}`))
}
