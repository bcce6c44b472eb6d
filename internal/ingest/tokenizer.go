// Package ingest adapts raw Wikipedia abstract-dump documents into the
// field-tagged, pre-tokenized streams the indexbuild façade consumes. The
// pipeline spec treats tokenization as an external collaborator; this
// package is that collaborator, kept in its own package so the core indexer
// never depends on a text-analysis library.
package ingest

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "against": {}, "all": {},
	"am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "aren't": {}, "as": {}, "at": {},
	"be": {}, "because": {}, "been": {}, "before": {}, "being": {}, "below": {}, "between": {},
	"both": {}, "but": {}, "by": {}, "can": {}, "can't": {}, "cannot": {}, "could": {},
	"couldn't": {}, "did": {}, "didn't": {}, "do": {}, "does": {}, "doesn't": {}, "doing": {},
	"don't": {}, "down": {}, "during": {}, "each": {}, "few": {}, "for": {}, "from": {},
	"further": {}, "had": {}, "hadn't": {}, "has": {}, "hasn't": {}, "have": {}, "haven't": {},
	"having": {}, "he": {}, "he'd": {}, "he'll": {}, "he's": {}, "her": {}, "here": {},
	"here's": {}, "hers": {}, "herself": {}, "him": {}, "himself": {}, "his": {}, "how": {},
	"how's": {}, "i": {}, "i'd": {}, "i'll": {}, "i'm": {}, "i've": {}, "if": {}, "in": {},
	"into": {}, "is": {}, "isn't": {}, "it": {}, "it's": {}, "its": {}, "itself": {},
	"let's": {}, "me": {}, "more": {}, "most": {}, "mustn't": {}, "my": {}, "myself": {},
	"no": {}, "nor": {}, "not": {}, "of": {}, "off": {}, "on": {}, "once": {}, "only": {},
	"or": {}, "other": {}, "ought": {}, "our": {}, "ours": {}, "ourselves": {}, "out": {},
	"over": {}, "own": {}, "same": {}, "shan't": {}, "she": {}, "she'd": {}, "she'll": {},
	"she's": {}, "should": {}, "shouldn't": {}, "so": {}, "some": {}, "such": {}, "than": {},
	"that": {}, "that's": {}, "the": {}, "their": {}, "theirs": {}, "them": {}, "themselves": {},
	"then": {}, "there": {}, "there's": {}, "these": {}, "they": {}, "they'd": {}, "they'll": {},
	"they're": {}, "they've": {}, "this": {}, "those": {}, "through": {}, "to": {}, "too": {},
	"under": {}, "until": {}, "up": {}, "very": {}, "was": {}, "wasn't": {}, "we": {},
	"we'd": {}, "we'll": {}, "we're": {}, "we've": {}, "were": {}, "weren't": {}, "what": {},
	"what's": {}, "when": {}, "when's": {}, "where": {}, "where's": {}, "which": {},
	"while": {}, "who": {}, "who's": {}, "whom": {}, "why": {}, "why's": {}, "with": {},
	"won't": {}, "would": {}, "wouldn't": {}, "you": {}, "you'd": {}, "you'll": {},
	"you're": {}, "you've": {}, "your": {}, "yours": {}, "yourself": {}, "yourselves": {},
}

func lowercaseFilter(tokens []string) []string {
	r := make([]string, len(tokens))
	for i, token := range tokens {
		r[i] = strings.ToLower(token)
	}
	return r
}

func characterFilter(tokens []string) []string {
	r := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if len(token) < 2 {
			continue
		}
		r = append(r, token)
	}
	return r
}

func stopwordFilter(tokens []string) []string {
	r := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := stopwords[token]; !ok {
			r = append(r, token)
		}
	}
	return r
}

func stemmerFilter(tokens []string) []string {
	r := make([]string, len(tokens))
	for i, token := range tokens {
		r[i] = snowballeng.Stem(token, false)
	}
	return r
}

// Tokenize runs one field's raw text through the normalization pipeline:
// split on whitespace, strip leading/trailing punctuation and short
// fragments, lowercase, drop stopwords, then stem. The order matters —
// stemming after lowercasing avoids case-sensitive stem mismatches, and
// stopwords are filtered before stemming so contractions like "don't"
// match the stopword list in their unstemmed form.
func Tokenize(text string) []string {
	tokens := strings.Fields(text)
	tokens = characterFilter(tokens)
	tokens = lowercaseFilter(tokens)
	tokens = stopwordFilter(tokens)
	tokens = stemmerFilter(tokens)
	return tokens
}
