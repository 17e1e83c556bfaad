// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "valid", body: `{"uuid":"abc","payloads":[{"type":"log","content":{"values":["x"]}}]}`},
		{name: "empty payloads allowed", body: `{"uuid":"abc","payloads":[]}`},
		{name: "missing uuid", body: `{"payloads":[]}`, wantErr: ErrMissingUUID},
		{name: "missing payloads", body: `{"uuid":"abc"}`, wantErr: ErrMissingPayloads},
		{name: "null payloads", body: `{"uuid":"abc","payloads":null}`, wantErr: ErrMissingPayloads},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req Request
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			err := req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestRequestUnmarshalKeepsMetaAndOrigin(t *testing.T) {
	body := `{
		"uuid": "abc",
		"payloads": [{"type": "log", "content": {"values": [1]}, "origin": {"file": "/app/index.php", "line_number": 12, "hostname": "box"}}],
		"meta": {"php_version": "8.3.0", "ray_package_version": "1.40.0", "project_name": "shop"}
	}`
	var req Request
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.Len(t, req.Payloads, 1)
	require.NotNil(t, req.Payloads[0].Origin)
	assert.Equal(t, "/app/index.php", req.Payloads[0].Origin.File)
	assert.Equal(t, 12, req.Payloads[0].Origin.LineNumber)
	require.NotNil(t, req.Meta)
	assert.Equal(t, "shop", req.Meta.ProjectName)
}

func TestKindVocabulary(t *testing.T) {
	for _, k := range EntryKinds() {
		assert.False(t, k.IsDirective(), "%s", k)
		assert.True(t, k.IsKnown(), "%s", k)
	}
	for _, k := range DirectiveKinds() {
		assert.True(t, k.IsDirective(), "%s", k)
	}
	assert.False(t, Kind("something_new").IsKnown())
	assert.Len(t, Kinds(), len(EntryKinds())+len(DirectiveKinds()))
}

func TestDecodersCoverVocabulary(t *testing.T) {
	for _, k := range Kinds() {
		_, ok := decoders[k]
		assert.True(t, ok, "no decoder for %s", k)
	}
	assert.Len(t, decoders, len(Kinds()))
}

func TestDecodeKindsMatch(t *testing.T) {
	// Every decoded variant reports the kind it was decoded from, except
	// custom, which may be refined by label.
	for _, k := range Kinds() {
		if k == KindCustom {
			continue
		}
		c, err := Decode(Payload{Type: string(k)})
		if k == KindColor || k == KindSize || k == KindLock {
			assert.Error(t, err, "%s requires content", k)
			continue
		}
		require.NoError(t, err, "%s", k)
		assert.Equal(t, k, c.Kind())
	}
}

func TestDecode(t *testing.T) {
	t.Run("log values stay raw", func(t *testing.T) {
		c, err := Decode(Payload{Type: "log", Content: json.RawMessage(`{"values":["hello",42,{"a":1}]}`)})
		require.NoError(t, err)
		log, ok := c.(LogContent)
		require.True(t, ok)
		require.Len(t, log.Values, 3)
		assert.JSONEq(t, `42`, string(log.Values[1]))
	})

	t.Run("custom refined by label", func(t *testing.T) {
		cases := map[string]Kind{
			"Text":      KindText,
			"HTML":      KindHTML,
			"XML":       KindXML,
			"Image":     KindImage,
			"JSON":      KindJSON,
			"index.php": KindCustom,
		}
		for label, want := range cases {
			raw, _ := json.Marshal(map[string]string{"content": "x", "label": label})
			c, err := Decode(Payload{Type: "custom", Content: raw})
			require.NoError(t, err)
			assert.Equal(t, want, c.Kind(), label)
		}
	})

	t.Run("empty array content for content-less kinds", func(t *testing.T) {
		for _, k := range []Kind{KindClearAll, KindHide, KindRemove, KindNull, KindSeparator, KindConfetti} {
			c, err := Decode(Payload{Type: string(k), Content: json.RawMessage(`[]`)})
			require.NoError(t, err, "%s", k)
			assert.Equal(t, k, c.Kind())
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		c, err := Decode(Payload{Type: "mailable", Content: json.RawMessage(`{"html":"<p>"}`)})
		require.NoError(t, err)
		u, ok := c.(Unknown)
		require.True(t, ok)
		assert.Equal(t, Kind("mailable"), u.Kind())
		assert.JSONEq(t, `{"html":"<p>"}`, string(u.Raw))
	})

	t.Run("unusable content", func(t *testing.T) {
		bad := []Payload{
			{Type: "bool", Content: json.RawMessage(`{"value":"yes"}`)},
			{Type: "log", Content: json.RawMessage(`"just a string"`)},
			{Type: "color", Content: json.RawMessage(`{"color":""}`)},
			{Type: "color", Content: json.RawMessage(`{"color":7}`)},
			{Type: "new_screen", Content: json.RawMessage(`{"name":false}`)},
		}
		for _, p := range bad {
			_, err := Decode(p)
			assert.ErrorIs(t, err, ErrUnusableContent, "%s %s", p.Type, p.Content)
		}
	})
}

func TestTableRowsKeepOrder(t *testing.T) {
	table := TableContent{Values: json.RawMessage(`{"zeta":1,"alpha":"two","mid":[3]}`)}
	rows := table.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, []string{rows[0].Key, rows[1].Key, rows[2].Key})
	assert.JSONEq(t, `[3]`, string(rows[2].Value))

	list := TableContent{Values: json.RawMessage(`["a","b"]`)}
	rows = list.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[1].Key)

	assert.Empty(t, TableContent{Values: json.RawMessage(`"scalar"`)}.Rows())
}

func TestImageSource(t *testing.T) {
	assert.Equal(t, "https://example.com/a.png", ImageContent{Content: `<img src="https://example.com/a.png" alt="" />`}.Source())
	assert.Equal(t, "/tmp/b.png", ImageContent{Location: "/tmp/b.png"}.Source())
}
