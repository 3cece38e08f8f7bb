package main

import (
	_ "embed"
	"strings"

	"github.com/vanderheijden86/glidetype/pkg/suggest"
)

// words.jsonl is the built-in fallback dictionary used when no
// dictionary path is configured. Frequencies are rounded counts from a
// public web corpus.
//
//go:embed words.jsonl
var embeddedWords string

func embeddedDictionary(opts suggest.LoadOptions) (*suggest.Dictionary, error) {
	return suggest.ParseDictionary(strings.NewReader(embeddedWords), opts)
}
