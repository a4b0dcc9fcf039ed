// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package projector

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/xeipuuv/gojsonschema"

	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/verifier"
)

// ErrPayloadShape is returned when a verified payload does not have the
// structure a projection needs.
var ErrPayloadShape = errors.New("projector: unexpected payload shape")

// Record is a single certificate record taken from an updates payload.
type Record map[string]any

// KeyMap groups active certificate records by key identifier.
type KeyMap map[string][]Record

// Options names the payload fields a Projector reads.
type Options struct {
	// CertsField holds the certificate records of an updates payload.
	CertsField string
	// KeyIDField holds the key identifier inside each record.
	KeyIDField string
	// ActiveKeyIDsField holds the active key identifiers of a key list payload.
	ActiveKeyIDsField string
	// RevokedField holds the revoked certificate entries.
	RevokedField string
	// DropFields are removed from every emitted record.
	DropFields []string
}

// Projector reshapes verified payloads for output.
//
// Thread Safety: Safe for concurrent use; it never mutates the payloads it reads.
type Projector struct {
	opts          Options
	certsSchema   *gojsonschema.Schema
	keyIDsSchema  *gojsonschema.Schema
	revokedSchema *gojsonschema.Schema
}

// New compiles the payload schemas for opts.
func New(opts Options) (*Projector, error) {
	certs, err := certsSchema(opts.KeyIDField)
	if err != nil {
		return nil, err
	}
	keyIDs, err := staticSchema(keyIDsSchemaFile)
	if err != nil {
		return nil, err
	}
	revoked, err := staticSchema(revokedSchemaFile)
	if err != nil {
		return nil, err
	}

	opts.DropFields = slices.Clone(opts.DropFields)
	return &Projector{
		opts:          opts,
		certsSchema:   certs,
		keyIDsSchema:  keyIDs,
		revokedSchema: revoked,
	}, nil
}

// KeysByID groups the certificate records of updates by key identifier,
// keeping only records whose identifier is listed as active in keylist.
//
// Every identifier that appears in updates gets an entry, even when none of
// its records is active. Emitted records are copies with the configured
// drop fields removed.
//
// Parameters:
//   - updates: Verified payload carrying the certificate records
//   - keylist: Verified payload carrying the active key identifiers
//
// Returns:
//   - KeyMap: Active records grouped by key identifier
//   - error: ErrPayloadShape if either payload has an unexpected structure
func (p *Projector) KeysByID(updates, keylist verifier.Payload) (KeyMap, error) {
	if err := validateField(p.certsSchema, updates, p.opts.CertsField); err != nil {
		return nil, err
	}
	if err := validateField(p.keyIDsSchema, keylist, p.opts.ActiveKeyIDsField); err != nil {
		return nil, err
	}

	active := make(map[string]struct{})
	for _, id := range keylist[p.opts.ActiveKeyIDsField].([]any) {
		active[id.(string)] = struct{}{}
	}

	records := updates[p.opts.CertsField].([]any)
	keys := make(KeyMap, len(records))
	for _, item := range records {
		kid := item.(map[string]any)[p.opts.KeyIDField].(string)
		if _, ok := keys[kid]; !ok {
			keys[kid] = []Record{}
		}
	}

	for _, item := range records {
		record := item.(map[string]any)
		kid := record[p.opts.KeyIDField].(string)
		if _, ok := active[kid]; !ok {
			continue
		}
		keys[kid] = append(keys[kid], p.project(record))
	}

	return keys, nil
}

// project copies record without the drop fields.
func (p *Projector) project(record map[string]any) Record {
	out := make(Record, len(record))
	for field, value := range record {
		if slices.Contains(p.opts.DropFields, field) {
			continue
		}
		out[field] = value
	}
	return out
}

// RevokedList returns the revoked entries of payload, one line each.
//
// String entries are returned as they are; any other entry is returned in
// its compact JSON encoding.
func (p *Projector) RevokedList(payload verifier.Payload) ([]string, error) {
	if err := validateField(p.revokedSchema, payload, p.opts.RevokedField); err != nil {
		return nil, err
	}

	entries := payload[p.opts.RevokedField].([]any)
	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		if s, ok := entry.(string); ok {
			lines = append(lines, s)
			continue
		}
		encoded, err := json.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrPayloadShape, i, err)
		}
		lines = append(lines, string(encoded))
	}
	return lines, nil
}
