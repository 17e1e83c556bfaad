// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package protocol defines the wire shape of the debug protocol: the request
// envelope a client POSTs, the payloads it carries, and the typed content
// variants each payload type decodes into.
package protocol

import (
	"encoding/json"
	"errors"
)

var (
	// ErrMissingUUID is returned by Validate when the envelope has no correlation id.
	ErrMissingUUID = errors.New("request uuid is required")
	// ErrMissingPayloads is returned by Validate when the envelope has no payloads field.
	ErrMissingPayloads = errors.New("request payloads are required")
)

// Request is one submitted batch. All payloads share UUID, which groups the
// calls made from a single debug call site on the client.
type Request struct {
	UUID     string    `json:"uuid"`
	Payloads []Payload `json:"payloads"`
	Meta     *Meta     `json:"meta,omitempty"`
}

// Payload is a single protocol event. Content is kept raw until Decode picks
// the variant from Type.
type Payload struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
	Origin  *Origin         `json:"origin,omitempty"`
}

// Origin locates the client code that produced a payload.
type Origin struct {
	File         string `json:"file,omitempty"`
	LineNumber   int    `json:"line_number,omitempty"`
	FunctionName string `json:"function_name,omitempty"`
	Hostname     string `json:"hostname,omitempty"`
}

// Meta is session information sent along with a request.
type Meta struct {
	PHPVersion        string `json:"php_version,omitempty"`
	LaravelVersion    string `json:"laravel_version,omitempty"`
	RayPackageVersion string `json:"ray_package_version,omitempty"`
	ProjectName       string `json:"project_name,omitempty"`
}

// UnmarshalJSON keeps track of whether payloads was present at all so that
// Validate can tell `"payloads": []` apart from a missing field.
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request
	var aux struct {
		plain
		Payloads *[]Payload `json:"payloads"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Request(aux.plain)
	if aux.Payloads != nil {
		r.Payloads = *aux.Payloads
		if r.Payloads == nil {
			r.Payloads = []Payload{}
		}
	}
	return nil
}

// Validate checks the envelope minimums. The store never calls it; the HTTP
// boundary rejects invalid requests before they reach the store.
func (r Request) Validate() error {
	if r.UUID == "" {
		return ErrMissingUUID
	}
	if r.Payloads == nil {
		return ErrMissingPayloads
	}
	return nil
}
