package httpadapter

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/action_request.schema.json
var actionRequestSchemaJSON string

var actionRequestSchema = jsonschema.MustCompileString("action_request.schema.json", actionRequestSchemaJSON)

var errInvalidJSON = errors.New("invalid json")

// payloadError carries the schema violation back to the client.
type payloadError struct {
	msg string
}

func (e *payloadError) Error() string { return e.msg }

// validateActionBody checks raw against the action request schema before it
// is decoded into typed structs.
func validateActionBody(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return errInvalidJSON
	}
	if err := actionRequestSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &payloadError{msg: describe(ve)}
		}
		return &payloadError{msg: err.Error()}
	}
	return nil
}

// describe reports the first leaf violation as "<pointer>: <message>".
func describe(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}
