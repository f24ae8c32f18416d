package search

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseNotes reads a markdown notes file into documents. Paragraphs
// (separated by blank lines) become one document each; every table row
// becomes its own document with cells joined by spaces, and separator rows
// and headings markers are dropped. IDs are "<prefix>-<n>".
func ParseNotes(r io.Reader, prefix string) ([]Document, error) {
	var (
		docs []Document
		para []string
	)
	add := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		docs = append(docs, Document{ID: fmt.Sprintf("%s-%d", prefix, len(docs)+1), Text: text})
	}
	flush := func() {
		add(strings.Join(para, " "))
		para = para[:0]
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|"):
			flush()
			if row, ok := tableRow(line); ok {
				add(row)
			}
		default:
			para = append(para, strings.TrimLeft(line, "# "))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return docs, nil
}

// LoadNotes parses the notes file at path.
func LoadNotes(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseNotes(f, "note")
}

func tableRow(line string) (string, bool) {
	cells := strings.Split(strings.Trim(line, "|"), "|")
	kept := make([]string, 0, len(cells))
	sep := true
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if strings.Trim(c, ":-") != "" {
			sep = false
		}
		if c != "" {
			kept = append(kept, c)
		}
	}
	if sep || len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, " "), true
}
