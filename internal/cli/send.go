// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TimBroddin/raybun/internal/logger"
	"github.com/TimBroddin/raybun/internal/protocol"
	"github.com/TimBroddin/raybun/internal/server"
)

type sendOptions struct {
	kind    string
	label   string
	color   string
	size    string
	screen  string
	uuid    string
	rawJSON bool
	timeout time.Duration
}

var errNothingToSend = errors.New("nothing to send: pass values as arguments or pipe them on stdin")

func sendCommand(args []string, stdout, stderr io.Writer) error {
	var common commonOptions
	opts := sendOptions{}
	fs := newFlagSet("send", stderr)
	common.register(fs)
	fs.StringVarP(&opts.kind, "type", "t", "log", "Payload type: log, text, html, json")
	fs.StringVarP(&opts.label, "label", "l", "", "Label the entry")
	fs.StringVar(&opts.color, "color", "", "Color the entry (green, orange, red, purple, blue, gray)")
	fs.StringVar(&opts.size, "size", "", "Display size (sm, lg)")
	fs.StringVarP(&opts.screen, "screen", "s", "", "Switch to this screen before sending")
	fs.StringVar(&opts.uuid, "uuid", "", "Request uuid (default: random)")
	fs.BoolVar(&opts.rawJSON, "raw", false, "Treat log values as JSON documents instead of strings")
	fs.DurationVar(&opts.timeout, "timeout", 5*time.Second, "Request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load(fs)
	if err != nil {
		return err
	}

	values := fs.Args()
	if len(values) == 0 {
		in, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		if s := strings.TrimRight(string(in), "\n"); s != "" {
			values = []string{s}
		}
	}

	req, err := buildRequest(opts, values)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	resp, err := postRequest(ctx, "http://"+cfg.Server.Addr()+"/", req)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "sent %s: %d received, %d created, %d skipped\n",
		req.UUID, resp.Received, resp.Created, resp.Skipped)
	return nil
}

// buildRequest turns command-line values into one request. A screen switch
// goes first so the entry lands on it; directives follow the entry they
// decorate.
func buildRequest(opts sendOptions, values []string) (protocol.Request, error) {
	if len(values) == 0 {
		return protocol.Request{}, errNothingToSend
	}

	id := opts.uuid
	if id == "" {
		id = uuid.NewString()
	}
	host, _ := os.Hostname()
	origin := &protocol.Origin{File: appName + " send", Hostname: host}

	var payloads []protocol.Payload
	add := func(kind protocol.Kind, content any) error {
		raw, err := json.Marshal(content)
		if err != nil {
			return fmt.Errorf("failed to encode %s payload: %w", kind, err)
		}
		payloads = append(payloads, protocol.Payload{Type: string(kind), Content: raw, Origin: origin})
		return nil
	}

	if opts.screen != "" {
		if err := add(protocol.KindNewScreen, protocol.NewScreenContent{Name: opts.screen}); err != nil {
			return protocol.Request{}, err
		}
	}

	joined := strings.Join(values, " ")
	var err error
	switch opts.kind {
	case "log", "":
		var logValues []json.RawMessage
		logValues, err = logValuesFrom(values, opts.rawJSON)
		if err == nil {
			err = add(protocol.KindLog, protocol.LogContent{Values: logValues})
		}
	case "text":
		err = add(protocol.KindText, protocol.TextContent{Content: joined})
	case "html":
		err = add(protocol.KindHTML, protocol.HTMLContent{Content: joined})
	case "json":
		if !json.Valid([]byte(joined)) {
			return protocol.Request{}, fmt.Errorf("--type json needs a valid JSON document")
		}
		err = add(protocol.KindJSON, protocol.JSONContent{Value: joined})
	default:
		return protocol.Request{}, fmt.Errorf("unsupported payload type %q (log, text, html, json)", opts.kind)
	}
	if err != nil {
		return protocol.Request{}, err
	}

	if opts.color != "" {
		if err := add(protocol.KindColor, protocol.ColorContent{Color: opts.color}); err != nil {
			return protocol.Request{}, err
		}
	}
	if opts.size != "" {
		if err := add(protocol.KindSize, protocol.SizeContent{Size: opts.size}); err != nil {
			return protocol.Request{}, err
		}
	}
	if opts.label != "" {
		if err := add(protocol.KindLabel, protocol.LabelContent{Label: opts.label}); err != nil {
			return protocol.Request{}, err
		}
	}

	return protocol.Request{
		UUID:     id,
		Payloads: payloads,
		Meta:     &protocol.Meta{ProjectName: appName},
	}, nil
}

func logValuesFrom(values []string, rawJSON bool) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		if rawJSON {
			if !json.Valid([]byte(v)) {
				return nil, fmt.Errorf("--raw value is not JSON: %s", v)
			}
			out = append(out, json.RawMessage(v))
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

// postRequest delivers req the way a debug client does.
func postRequest(ctx context.Context, url string, req protocol.Request) (server.IngestResponse, error) {
	log := logger.GetCLILogger()

	body, err := json.Marshal(req)
	if err != nil {
		return server.IngestResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return server.IngestResponse{}, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return server.IngestResponse{}, fmt.Errorf("failed to reach %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return server.IngestResponse{}, fmt.Errorf("server answered %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var out server.IngestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return server.IngestResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	log.Debug().Str("uuid", req.UUID).Int("created", out.Created).Msg("Request sent")
	return out, nil
}
