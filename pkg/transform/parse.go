package transform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Request is a parsed transform request. Image is still encoded; decoding is
// left to the caller so a request that fails validation costs no decode.
type Request struct {
	Image  string
	Config Config
}

// Parse validates a raw JSON request body for technique and returns the
// request with defaults applied to every omitted optional field. Fields that
// belong to no parameter of technique, or a "technique" field naming another
// technique, are rejected.
func (e *Engine) Parse(technique string, body []byte) (Request, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return Request{}, err
	}

	var image string
	_ = json.Unmarshal(fields["image"], &image)
	if image == "" || !hasText(fields) {
		return Request{}, missingParameterError()
	}
	delete(fields, "image")

	config, err := e.parseFields(technique, fields)
	if err != nil {
		return Request{}, err
	}
	return Request{Image: image, Config: config}, nil
}

// ParseParams is Parse for transports that carry the image out of band, so
// params holds only the text and technique parameters.
func (e *Engine) ParseParams(technique string, params []byte) (Config, error) {
	fields, err := decodeFields(params)
	if err != nil {
		return nil, err
	}
	if !hasText(fields) {
		return nil, missingParameterError()
	}
	return e.parseFields(technique, fields)
}

func (e *Engine) parseFields(technique string, fields map[string]json.RawMessage) (Config, error) {
	t, err := ParseTechnique(technique)
	if err != nil {
		return nil, err
	}

	if raw, found := fields["technique"]; found {
		var named string
		if err := json.Unmarshal(raw, &named); err != nil || named != string(t) {
			return nil, newValidationError("technique",
				fmt.Sprintf("request names technique %s but was sent to %s", strings.TrimSpace(string(raw)), t), ErrTechniqueMismatch)
		}
		delete(fields, "technique")
	}

	return e.ParseConfig(t, fields)
}

func decodeFields(body []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, newValidationError("", "request body must be a JSON object", err)
	}
	return fields, nil
}

func hasText(fields map[string]json.RawMessage) bool {
	var text string
	_ = json.Unmarshal(fields["text"], &text)
	return text != ""
}

func missingParameterError() error {
	return newValidationError("", "Missing required parameters: image and text", ErrMissingParameter)
}

// ParseConfig builds the configuration of technique from its JSON fields.
func (e *Engine) ParseConfig(technique Technique, fields map[string]json.RawMessage) (Config, error) {
	config, err := DefaultConfig(technique)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, newValidationError("", "request body could not be read", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		return nil, decodeError(technique, err)
	}

	if err := e.validate.Struct(config); err != nil {
		return nil, toValidationError(err)
	}
	return config, nil
}

func decodeError(technique Technique, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return newValidationError(typeErr.Field, "must be a "+jsonTypeName(typeErr.Type.Kind()), ErrTechniqueMismatch)
	}
	if field, found := strings.CutPrefix(err.Error(), "json: unknown field "); found {
		return newValidationError(strings.Trim(field, `"`), "is not a parameter of "+string(technique), ErrTechniqueMismatch)
	}
	return newValidationError("", err.Error(), err)
}

func jsonTypeName(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	}
	return kind.String()
}
