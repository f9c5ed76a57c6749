// Package textproc cleans and tokenizes raw legal case text for the lexical
// and extraction pipelines.  Corpus texts and query texts must pass through
// the same CleanText so the fitted vocabulary space stays comparable.
package textproc

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	urlRe        = regexp.MustCompile(`http\S+|www\.\S+`)

	// Court-record abbreviation normalization so "I.P.C." and "ipc" hit
	// the same vocabulary term.
	ipcAbbrevRe  = regexp.MustCompile(`i\.p\.c\.?`)
	crpcAbbrevRe = regexp.MustCompile(`cr\.p\.c\.?`)
	cpcAbbrevRe  = regexp.MustCompile(`c\.p\.c\.?`)

	// Numbering noise common in digitised judgments.
	paraNoiseRe = regexp.MustCompile(`\bpara\s*\.?\s*\d+\s*\.?`)
	pageNoiseRe = regexp.MustCompile(`\bpage\s*no\s*\.?\s*\d+`)

	punctuationRe = regexp.MustCompile(`[^\w\s.,;:\-/()]`)
)

// CleanText normalizes raw legal text: lowercase, whitespace collapse, URL
// removal, abbreviation normalization, judgment-numbering noise removal, and
// a punctuation filter that keeps legally relevant separators.  Empty input
// yields an empty string.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = urlRe.ReplaceAllString(text, "")
	text = ipcAbbrevRe.ReplaceAllString(text, "ipc")
	text = crpcAbbrevRe.ReplaceAllString(text, "crpc")
	text = cpcAbbrevRe.ReplaceAllString(text, "cpc")
	text = paraNoiseRe.ReplaceAllString(text, "")
	text = pageNoiseRe.ReplaceAllString(text, "")
	text = punctuationRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	return whitespaceRe.ReplaceAllString(text, " ")
}

// Tokenize splits cleaned text on whitespace, dropping single-character
// tokens.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}

// Summary describes a preprocessed query for response echo.
type Summary struct {
	Cleaned    string
	TokenCount int
}

// Preprocess runs the full pipeline on a raw query text.
func Preprocess(raw string) Summary {
	cleaned := CleanText(raw)
	return Summary{
		Cleaned:    cleaned,
		TokenCount: len(Tokenize(cleaned)),
	}
}
