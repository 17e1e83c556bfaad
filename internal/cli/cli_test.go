// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TimBroddin/raybun/internal/classify"
	"github.com/TimBroddin/raybun/internal/config"
	"github.com/TimBroddin/raybun/internal/protocol"
	"github.com/TimBroddin/raybun/internal/server"
	"github.com/TimBroddin/raybun/test/testutil"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "raybun version "+appVersion+"\n", out)
}

func TestHelp(t *testing.T) {
	for _, arg := range []string{"help", "-h", "--help"} {
		t.Run(arg, func(t *testing.T) {
			out, _, err := run(t, arg)
			require.NoError(t, err)
			assert.Contains(t, out, "Usage:")
			assert.Contains(t, out, "serve")
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	_, errOut, err := run(t, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, errOut, "Unknown command: frobnicate")
}

func TestConfigCommand(t *testing.T) {
	out, _, err := run(t, "config", "--port", "9999", "--max-entries", "10")
	require.NoError(t, err)

	var cfg config.AppConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Store.MaxEntries)
	assert.Equal(t, "default", cfg.Store.DefaultScreen)
}

func TestConfigCommandRejectsInvalidFlags(t *testing.T) {
	_, _, err := run(t, "config", "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server port")

	_, _, err = run(t, "config", "--no-such-flag")
	assert.Error(t, err)
}

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest(sendOptions{
		kind:   "log",
		label:  "Greeting",
		color:  "green",
		screen: "debug",
		uuid:   "fixed",
	}, []string{"hello", "world"})
	require.NoError(t, err)
	require.NoError(t, req.Validate())

	assert.Equal(t, "fixed", req.UUID)
	kinds := make([]string, len(req.Payloads))
	for i, p := range req.Payloads {
		kinds[i] = p.Type
	}
	assert.Equal(t, []string{"new_screen", "log", "color", "label"}, kinds)
	assert.JSONEq(t, `{"values":["hello","world"]}`, string(req.Payloads[1].Content))
	assert.Equal(t, "raybun send", req.Payloads[1].Origin.File)
}

func TestBuildRequestKinds(t *testing.T) {
	tests := []struct {
		name    string
		opts    sendOptions
		values  []string
		kind    protocol.Kind
		content string
		wantErr bool
	}{
		{name: "text", opts: sendOptions{kind: "text"}, values: []string{"a", "b"}, kind: protocol.KindText, content: `{"content":"a b"}`},
		{name: "html", opts: sendOptions{kind: "html"}, values: []string{"<b>x</b>"}, kind: protocol.KindHTML, content: `{"content":"<b>x</b>"}`},
		{name: "json", opts: sendOptions{kind: "json"}, values: []string{`{"a":1}`}, kind: protocol.KindJSON, content: `{"value":"{\"a\":1}"}`},
		{name: "raw log", opts: sendOptions{kind: "log", rawJSON: true}, values: []string{"42", `{"a":1}`}, kind: protocol.KindLog, content: `{"values":[42,{"a":1}]}`},
		{name: "invalid json", opts: sendOptions{kind: "json"}, values: []string{"{"}, wantErr: true},
		{name: "invalid raw", opts: sendOptions{kind: "log", rawJSON: true}, values: []string{"nope"}, wantErr: true},
		{name: "unknown type", opts: sendOptions{kind: "video"}, values: []string{"x"}, wantErr: true},
		{name: "nothing", opts: sendOptions{kind: "log"}, values: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := buildRequest(tt.opts, tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, req.Payloads, 1)
			assert.Equal(t, string(tt.kind), req.Payloads[0].Type)
			assert.JSONEq(t, tt.content, string(req.Payloads[0].Content))
			assert.NotEmpty(t, req.UUID)
		})
	}
}

func TestSendDeliversToServer(t *testing.T) {
	st := testutil.NewStore(0)
	ts := httptest.NewServer(server.New(config.Default(), st).Handler())
	defer ts.Close()

	host, port, err := net.SplitHostPort(ts.Listener.Addr().String())
	require.NoError(t, err)

	out, _, err := run(t, "send", "--host", host, "--port", port, "hello", "--label", "Greeting", "--color", "red")
	require.NoError(t, err)
	assert.Contains(t, out, "3 received")
	assert.Contains(t, out, "1 created")

	entries := st.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Greeting", entries[0].Label)
	assert.Equal(t, "red", entries[0].Color)
	assert.Equal(t, "hello", classify.Preview(entries[0].Content, 0))
}

func TestSendReportsServerErrors(t *testing.T) {
	ts := httptest.NewServer(server.New(config.Default(), testutil.NewStore(0)).Handler())
	defer ts.Close()

	req := protocol.Request{UUID: ""}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	_, err := postRequest(ctx, ts.URL+"/", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestSendUnreachable(t *testing.T) {
	_, _, err := run(t, "send", "--host", "127.0.0.1", "--port", strconv.Itoa(closedPort(t)), "--timeout", "1s", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach")
}

func closedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestIngestResponseShape(t *testing.T) {
	// send relies on the field names the server writes
	raw, err := json.Marshal(server.IngestResponse{Status: "ok", Received: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","received":2,"created":0,"directives":0,"skipped":0}`, string(raw))
}
