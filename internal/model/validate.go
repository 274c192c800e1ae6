package model

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var recordSchema []byte

// ErrInvalidRecord wraps every schema violation reported by ValidateJSON.
var ErrInvalidRecord = errors.New("record failed schema validation")

// ValidateJSON validates raw JSON against resume.schema.json and decodes it.
func ValidateJSON(raw []byte) (*Record, error) {
	schemaLoader := gojsonschema.NewBytesLoader(recordSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, errors.Wrap(err, "schema validation could not run")
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, errors.Wrap(ErrInvalidRecord, strings.Join(msgs, "; "))
	}

	rec := NewRecord()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, errors.Wrap(err, "decode record")
	}
	return rec.Clone(), nil
}

// ValidateRecord validates an already decoded record.
func ValidateRecord(r *Record) error {
	if r == nil {
		return errors.Wrap(ErrInvalidRecord, "record is nil")
	}
	b, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "encode record")
	}
	_, err = ValidateJSON(b)
	return err
}
