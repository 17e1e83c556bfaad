// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package classify turns stored content into what the viewer shows: a
// one-line preview, a display category, the body text of the detail pane
// and the probable source language of free-form text.
//
// Nothing in this package fails. Every input maps to a result, at worst a
// fallback.
package classify

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Language is a syntax tag for highlighting. The zero value means plain text.
type Language string

const (
	LanguageNone       Language = ""
	LanguageHTML       Language = "html"
	LanguageXML        Language = "xml"
	LanguageJSON       Language = "json"
	LanguageSQL        Language = "sql"
	LanguagePHP        Language = "php"
	LanguageJavaScript Language = "javascript"
	LanguageCSS        Language = "css"
)

// Lexer returns the chroma lexer name for l, or "" for plain text.
func (l Language) Lexer() string {
	return string(l)
}

var (
	// Opening of an element, comment or doctype. `<?php` is not a tag.
	markupStart = regexp.MustCompile(`^<(?:[A-Za-z][\w:.-]*|!--|!(?i:doctype)|/[A-Za-z])`)
	closingTag  = regexp.MustCompile(`</[A-Za-z][\w:.-]*\s*>`)
	xmlnsAttr   = regexp.MustCompile(`^<[A-Za-z][\w:.-]*[^>]*\sxmlns(?::[\w-]+)?\s*=`)
	scriptTag   = regexp.MustCompile(`(?i)</?script[\s>]`)

	sqlStatement = regexp.MustCompile(`(?i)^(?:SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|TRUNCATE|WITH)\s`)
	phpOpen      = regexp.MustCompile(`(?i)^<\?(?:php\b|=)`)

	jsDeclaration = []*regexp.Regexp{
		regexp.MustCompile(`^(?:export\s+(?:default\s+)?)?(?:async\s+)?function\s*\*?\s*[\w$]*\s*\(`),
		regexp.MustCompile(`^(?:export\s+)?(?:const|let|var)\s+[\w${}\[\],\s]+=`),
		regexp.MustCompile(`^(?:export\s+(?:default\s+)?)?class\s+[\w$]+(?:\s+extends\s+[\w$.]+)?\s*\{`),
		regexp.MustCompile(`^import\s+(?:[\w$*{}\s,]+\s+from\s+)?["']`),
	}

	cssRule   = regexp.MustCompile(`(?s)^[^{}@;]+\{\s*[-\w]+\s*:[^{}]*\}`)
	cssAtRule = regexp.MustCompile(`^@(?:media|import|font-face|keyframes|charset|supports|layer|page)\b`)
)

// DetectLanguage guesses the source language of text. Checks run in a fixed
// order and the first match wins: markup, JSON, SQL, PHP, JavaScript, CSS.
// Container checks come first so that a JSON object holding SQL strings is
// still JSON.
func DetectLanguage(text string) Language {
	t := strings.TrimSpace(text)
	if t == "" {
		return LanguageNone
	}

	if lang, ok := detectMarkup(t); ok {
		return lang
	}

	if isJSON(t) {
		return LanguageJSON
	}

	if sqlStatement.MatchString(t) {
		return LanguageSQL
	}

	if phpOpen.MatchString(t) {
		return LanguagePHP
	}

	for _, re := range jsDeclaration {
		if re.MatchString(t) {
			return LanguageJavaScript
		}
	}

	if cssAtRule.MatchString(t) || cssRule.MatchString(t) {
		return LanguageCSS
	}

	return LanguageNone
}

func detectMarkup(t string) (Language, bool) {
	if strings.HasPrefix(t, "<?xml") {
		return LanguageXML, true
	}
	if !markupStart.MatchString(t) {
		return LanguageNone, false
	}
	if !closingTag.MatchString(t) && !strings.Contains(t, "/>") {
		return LanguageNone, false
	}
	if scriptTag.MatchString(t) {
		return LanguageHTML, true
	}
	if xmlnsAttr.MatchString(t) {
		return LanguageXML, true
	}
	return LanguageHTML, true
}

func isJSON(t string) bool {
	first, last := t[0], t[len(t)-1]
	if !(first == '{' && last == '}') && !(first == '[' && last == ']') {
		return false
	}
	return json.Valid([]byte(t))
}
