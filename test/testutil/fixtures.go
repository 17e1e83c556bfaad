// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package testutil

import (
	"encoding/json"

	"github.com/TimBroddin/raybun/internal/protocol"
)

// Sample data creators for consistent testing

// Payload builds a payload from a kind and a raw JSON content document.
func Payload(kind protocol.Kind, content string) protocol.Payload {
	return protocol.Payload{Type: string(kind), Content: json.RawMessage(content)}
}

// Request builds a request from payloads.
func Request(uuid string, payloads ...protocol.Payload) protocol.Request {
	return protocol.Request{UUID: uuid, Payloads: payloads}
}

// LogPayload builds a log payload. Values are marshalled as JSON.
func LogPayload(values ...any) protocol.Payload {
	raw, err := json.Marshal(map[string][]any{"values": values})
	if err != nil {
		panic(err)
	}
	return protocol.Payload{Type: string(protocol.KindLog), Content: raw}
}

// LogRequest is a request holding one log payload.
func LogRequest(uuid string, values ...any) protocol.Request {
	return Request(uuid, LogPayload(values...))
}

// LabelRequest is a request holding one label directive.
func LabelRequest(uuid, label string) protocol.Request {
	raw, _ := json.Marshal(protocol.LabelContent{Label: label})
	return Request(uuid, protocol.Payload{Type: string(protocol.KindLabel), Content: raw})
}

// ScreenRequest is a request switching to the named screen.
func ScreenRequest(uuid, name string) protocol.Request {
	raw, _ := json.Marshal(protocol.NewScreenContent{Name: name})
	return Request(uuid, protocol.Payload{Type: string(protocol.KindNewScreen), Content: raw})
}

// SampleRequests returns a mix of payload types as a client would send them.
func SampleRequests() []protocol.Request {
	origin := &protocol.Origin{File: "/app/Http/Controllers/OrderController.php", LineNumber: 42, FunctionName: "store"}
	meta := &protocol.Meta{PHPVersion: "8.3.4", RayPackageVersion: "1.41.0", ProjectName: "shop"}

	reqs := []protocol.Request{
		LogRequest("req-log", "hello", 42),
		Request("req-exc", Payload(protocol.KindException, `{
			"class": "RuntimeException",
			"message": "Order not found",
			"frames": [{"file_name": "/app/Order.php", "line_number": 10, "class": "Order", "method": "find"}]
		}`)),
		Request("req-sql", Payload(protocol.KindQuery, `{"sql": "select * from orders where id = ?", "bindings": [7], "connection_name": "mysql", "time": 1.25}`)),
		Request("req-table", Payload(protocol.KindTable, `{"values": {"id": 7, "total": "12.00"}, "label": "Order"}`)),
		Request("req-json", Payload(protocol.KindJSON, `{"value": "{\"a\":1}"}`)),
		Request("req-html", Payload(protocol.KindHTML, `{"content": "<p>Hello <b>there</b></p>"}`), Payload(protocol.KindColor, `{"color": "green"}`)),
		Request("req-bool", Payload(protocol.KindBool, `{"value": true}`)),
	}
	for i := range reqs {
		reqs[i].Meta = meta
		for j := range reqs[i].Payloads {
			reqs[i].Payloads[j].Origin = origin
		}
	}
	return reqs
}

// RequestJSON marshals a request the way a client puts it on the wire.
func RequestJSON(req protocol.Request) []byte {
	out, err := json.Marshal(req)
	if err != nil {
		panic(err)
	}
	return out
}
