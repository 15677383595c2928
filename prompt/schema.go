package prompt

import (
	"encoding/json"
	"github.com/Odunjoy/NaijaStoic-props/scene"
	"github.com/invopop/jsonschema"
)

// Response is the shape the model is asked to return.
type Response struct {
	Scenes []scene.Scene `json:"scenes" jsonschema:"minItems=3,maxItems=3" jsonschema_description:"Exactly three scenes in order: hook, pivot, dunk."`
}

func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var responseSchema = mustMarshal(GenerateSchema[Response]())

func mustMarshal(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(b)
}

// ResponseSchema is the JSON schema embedded in every prompt.
func ResponseSchema() string {
	return responseSchema
}
