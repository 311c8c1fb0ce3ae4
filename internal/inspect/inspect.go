package inspect

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/cachebust/internal/buster"
	"github.com/nao1215/cachebust/internal/model"
)

// assetAttributes maps element names to the attribute the rewriter versions.
var assetAttributes = map[string]string{
	"link":   "href",
	"script": "src",
}

// Inspect tokenizes data and returns the link and script references it
// contains, each marked with whether the rewriter's patterns cover it.
// Pattern matches with no counterpart tag are returned in PatternOnly.
func Inspect(file string, data []byte) (*model.Inspection, error) {
	result := model.NewInspection(file)

	// starts[i] is the byte offset of the tag of result.References[i].
	var starts []int

	z := html.NewTokenizer(bytes.NewReader(data))
	offset := 0
	for {
		tt := z.Next()
		size := len(z.Raw())

		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, z.Err()
		}

		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			tok := z.Token()
			if attr, ok := assetAttributes[tok.Data]; ok {
				if val, found := getAttr(tok, attr); found {
					result.References = append(result.References, model.Reference{
						Tag:       tok.Data,
						Attribute: attr,
						URL:       val,
						External:  buster.IsExternal(val),
					})
					starts = append(starts, offset)
				}
			}
		}

		offset += size
	}

	result.PatternOnly = cover(result.References, starts, buster.Matches(string(data)))

	return result, nil
}

// cover marks every reference whose tag is where a pattern match starts and
// whose value the match captured. Matches that cover nothing are returned.
func cover(refs []model.Reference, starts []int, matches []model.Change) []model.Change {
	byStart := make(map[int]int, len(starts))
	for i, start := range starts {
		byStart[start] = i
	}

	leftover := make([]model.Change, 0)
	for _, m := range matches {
		if i, ok := byStart[m.Offset]; ok && refs[i].Tag == m.Tag && sameValue(m.Original, refs[i].URL) {
			refs[i].Covered = true
			continue
		}
		leftover = append(leftover, m)
	}
	return leftover
}

// sameValue compares a raw attribute value from the source text with the
// decoded value the tokenizer produced.
func sameValue(raw, decoded string) bool {
	return raw == decoded || html.UnescapeString(raw) == decoded
}

// getAttr returns the value of the attribute key and whether it is present.
func getAttr(tok html.Token, key string) (string, bool) {
	for _, attr := range tok.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, key) {
			return attr.Val, true
		}
	}
	return "", false
}
