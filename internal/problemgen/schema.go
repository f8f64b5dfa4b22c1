package problemgen

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// problemSchemaJSON is the shape every model reply must have once code
// fences are stripped. Extra keys are tolerated.
const problemSchemaJSON = `{
	"type": "object",
	"properties": {
		"problem_text": {"type": "string", "minLength": 1},
		"final_answer": {"type": "number"}
	},
	"required": ["problem_text", "final_answer"]
}`

var problemSchema = compileSchema("schema://problem.json", problemSchemaJSON)

func compileSchema(url, src string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		panic(err)
	}
	return c.MustCompile(url)
}

// validateProblemJSON checks raw JSON text against problemSchema.
func validateProblemJSON(raw string) error {
	v, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return err
	}
	return problemSchema.Validate(v)
}
