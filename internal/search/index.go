// Package search is a small in-memory keyword index over farming notes:
// catalog tips and optional markdown notes files. The index is immutable
// after construction and safe for concurrent use.
//
// Scoring is Jaccard similarity between the query token set and each
// document's token set: |Q ∩ D| / |Q ∪ D|. Ties are broken by shorter text,
// then lexically, so results are deterministic.
package search

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Document is one searchable unit. ID lets callers map results back to their
// own records; notes loaded from markdown get generated IDs.
type Document struct {
	ID   string
	Text string
}

// Result is a ranked document with its similarity score.
type Result struct {
	ID      string
	Snippet string
	Score   float64
}

// Index ranks documents for a query.
type Index interface {
	TopK(query string, k int) []Result
	Len() int
}

type Option func(*config)

type config struct {
	minRunes  int
	stopwords map[string]struct{}
	maxDocs   int
}

// EnglishStopwords are dropped from queries and documents by default.
var EnglishStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "how",
	"in", "is", "it", "my", "of", "on", "or", "the", "to", "what", "when",
	"which", "with", "your",
}

func defaultConfig() config {
	c := config{}
	WithStopwords(EnglishStopwords)(&c)
	return c
}

// WithMinRunes skips documents shorter than n runes.
func WithMinRunes(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.minRunes = n
		}
	}
}

// WithStopwords replaces the stop-word list. An empty list disables
// stop-word removal.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) == 0 {
			c.stopwords = nil
			return
		}
		c.stopwords = m
	}
}

// WithMaxDocs caps the number of indexed documents.
func WithMaxDocs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDocs = n
		}
	}
}

type doc struct {
	id     string
	text   string
	tokens map[string]struct{}
}

type index struct {
	cfg  config
	docs []doc
}

// New indexes docs. Blank documents and documents without tokens are
// skipped.
func New(docs []Document, opts ...Option) Index {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	idx := &index{cfg: cfg, docs: make([]doc, 0, len(docs))}
	for _, d := range docs {
		t := strings.TrimSpace(normalizeWhitespace(d.Text))
		if t == "" {
			continue
		}
		if cfg.minRunes > 0 && utf8.RuneCountInString(t) < cfg.minRunes {
			continue
		}
		toks := tokenize(t, cfg.stopwords)
		if len(toks) == 0 {
			continue
		}
		idx.docs = append(idx.docs, doc{id: d.ID, text: t, tokens: toks})
		if cfg.maxDocs > 0 && len(idx.docs) >= cfg.maxDocs {
			break
		}
	}
	return idx
}

func (i *index) Len() int { return len(i.docs) }

// TopK returns up to k matching documents, best first. k <= 0 means 3.
func (i *index) TopK(q string, k int) []Result {
	if len(i.docs) == 0 || strings.TrimSpace(q) == "" {
		return nil
	}
	if k <= 0 {
		k = 3
	}
	qTokens := tokenize(q, i.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}

	type scored struct {
		Result
		runes int
	}
	var buf []scored
	for _, d := range i.docs {
		over := overlap(qTokens, d.tokens)
		if over == 0 {
			continue
		}
		score := float64(over) / float64(len(qTokens)+len(d.tokens)-over)
		buf = append(buf, scored{
			Result: Result{ID: d.id, Snippet: d.text, Score: score},
			runes:  utf8.RuneCountInString(d.text),
		})
	}

	sort.SliceStable(buf, func(a, b int) bool {
		if buf[a].Score != buf[b].Score {
			return buf[a].Score > buf[b].Score
		}
		if buf[a].runes != buf[b].runes {
			return buf[a].runes < buf[b].runes
		}
		return buf[a].Snippet < buf[b].Snippet
	})

	if k > len(buf) {
		k = len(buf)
	}
	out := make([]Result, k)
	for n := 0; n < k; n++ {
		out[n] = buf[n].Result
	}
	return out
}

var wordRE = regexp.MustCompile(`[\p{L}\p{M}]+\p{N}*|\p{N}+`)

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	words := wordRE.FindAllString(strings.ToLower(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, skip := stop[w]; skip {
			continue
		}
		out[w] = struct{}{}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
