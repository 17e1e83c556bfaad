// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnusableContent wraps every Decode failure. The content did not have the
// shape its payload type requires.
var ErrUnusableContent = errors.New("unusable payload content")

type decoder func(raw json.RawMessage) (Content, error)

// decoders maps each known kind to its variant. TestDecodersCoverVocabulary
// keeps this table in step with Kinds().
var decoders = map[Kind]decoder{
	KindLog:            decodeAs[LogContent],
	KindCustom:         decodeCustom,
	KindText:           decodeAs[TextContent],
	KindHTML:           decodeAs[HTMLContent],
	KindXML:            decodeAs[XMLContent],
	KindJSON:           decodeAs[JSONContent],
	KindImage:          decodeAs[ImageContent],
	KindFileContents:   decodeAs[FileContentsContent],
	KindException:      decodeAs[ExceptionContent],
	KindQuery:          decodeAs[QueryContent],
	KindTable:          decodeAs[TableContent],
	KindTrace:          decodeAs[TraceContent],
	KindCaller:         decodeAs[CallerContent],
	KindMeasure:        decodeAs[MeasureContent],
	KindBool:           decodeAs[BoolContent],
	KindNull:           ignoreAs[NullContent],
	KindCarbon:         decodeAs[CarbonContent],
	KindApplicationLog: decodeAs[ApplicationLogContent],
	KindSeparator:      ignoreAs[SeparatorContent],
	KindNotify:         decodeAs[NotifyContent],
	KindLock:           decodeLock,
	KindColor:          decodeColor,
	KindLabel:          decodeAs[LabelContent],
	KindSize:           decodeSize,
	KindNewScreen:      decodeAs[NewScreenContent],
	KindClearAll:       ignoreAs[ClearAllContent],
	KindHide:           ignoreAs[HideContent],
	KindRemove:         ignoreAs[RemoveContent],
	KindShowApp:        ignoreAs[ShowAppContent],
	KindHideApp:        ignoreAs[HideAppContent],
	KindConfetti:       ignoreAs[ConfettiContent],
}

// Decode turns a payload into its typed content. Unknown types never fail:
// they come back as Unknown with the raw content attached.
func Decode(p Payload) (Content, error) {
	dec, ok := decoders[Kind(p.Type)]
	if !ok {
		return Unknown{Type: p.Type, Raw: p.Content}, nil
	}
	c, err := dec(p.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnusableContent, p.Type, err)
	}
	return c, nil
}

func isEmpty(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func decodeAs[T Content](raw json.RawMessage) (Content, error) {
	var c T
	if isEmpty(raw) {
		return c, nil
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// ignoreAs is used for kinds whose content carries nothing. Clients commonly
// send `[]` for these, which would not unmarshal into a struct.
func ignoreAs[T Content](json.RawMessage) (Content, error) {
	var c T
	return c, nil
}

// decodeCustom refines custom payloads into their specific variant based on
// the label the client attached.
func decodeCustom(raw json.RawMessage) (Content, error) {
	c, err := decodeAs[CustomContent](raw)
	if err != nil {
		return nil, err
	}
	custom := c.(CustomContent)
	switch custom.Label {
	case "Text":
		return TextContent(custom), nil
	case "HTML":
		return HTMLContent(custom), nil
	case "XML":
		return XMLContent(custom), nil
	case "Image":
		return ImageContent{Content: custom.Content, Label: custom.Label}, nil
	case "JSON":
		return JSONContent{Value: custom.Content}, nil
	}
	return custom, nil
}

func decodeColor(raw json.RawMessage) (Content, error) {
	c, err := decodeAs[ColorContent](raw)
	if err != nil {
		return nil, err
	}
	if c.(ColorContent).Color == "" {
		return nil, errors.New("color is empty")
	}
	return c, nil
}

func decodeSize(raw json.RawMessage) (Content, error) {
	c, err := decodeAs[SizeContent](raw)
	if err != nil {
		return nil, err
	}
	if c.(SizeContent).Size == "" {
		return nil, errors.New("size is empty")
	}
	return c, nil
}

func decodeLock(raw json.RawMessage) (Content, error) {
	c, err := decodeAs[LockContent](raw)
	if err != nil {
		return nil, err
	}
	if c.(LockContent).Name == "" {
		return nil, errors.New("lock name is empty")
	}
	return c, nil
}
