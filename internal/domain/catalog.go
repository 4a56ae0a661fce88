package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrEmptyCatalog = errors.New("vocabulary catalog is empty")

type CatalogWord struct {
	Word     string   `toml:"word" yaml:"word" json:"word"`
	Pinyin   string   `toml:"pinyin" yaml:"pinyin" json:"pinyin"`
	English  string   `toml:"english" yaml:"english" json:"english"`
	Category string   `toml:"category" yaml:"category" json:"category"`
	Stage    Stage    `toml:"stage" yaml:"stage" json:"stage"`
	Emoji    string   `toml:"emoji,omitempty" yaml:"emoji,omitempty" json:"emoji,omitempty"`
	Examples []string `toml:"examples,omitempty" yaml:"examples,omitempty" json:"examples,omitempty"`
}

// Catalog is the ordered vocabulary bank a session can teach from.
type Catalog struct {
	words    []CatalogWord
	byWord   map[string]int
	byPinyin map[string]int
}

func NewCatalog(words []CatalogWord) (*Catalog, error) {
	if len(words) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		words:    make([]CatalogWord, 0, len(words)),
		byWord:   make(map[string]int, len(words)),
		byPinyin: make(map[string]int, len(words)),
	}
	for i, word := range words {
		word.Word = strings.TrimSpace(word.Word)
		if word.Word == "" {
			return nil, fmt.Errorf("catalog entry %d has no word", i)
		}
		if !word.Stage.Valid() {
			return nil, fmt.Errorf("catalog word %q has invalid stage %d", word.Word, int(word.Stage))
		}
		if _, dup := c.byWord[word.Word]; dup {
			return nil, fmt.Errorf("catalog word %q is duplicated", word.Word)
		}

		c.byWord[word.Word] = len(c.words)
		if key := FoldPinyin(word.Pinyin); key != "" {
			if _, taken := c.byPinyin[key]; !taken {
				c.byPinyin[key] = len(c.words)
			}
		}
		c.words = append(c.words, word)
	}

	return c, nil
}

func (c *Catalog) Words() []CatalogWord {
	out := make([]CatalogWord, len(c.words))
	copy(out, c.words)
	return out
}

func (c *Catalog) Len() int {
	return len(c.words)
}

func (c *Catalog) Lookup(word string) (CatalogWord, bool) {
	idx, ok := c.byWord[word]
	if !ok {
		return CatalogWord{}, false
	}
	return c.words[idx], true
}

// Reachable returns the words whose stage does not exceed stage, in catalog
// order.
func (c *Catalog) Reachable(stage Stage) []CatalogWord {
	out := make([]CatalogWord, 0, len(c.words))
	for _, word := range c.words {
		if word.Stage <= stage {
			out = append(out, word)
		}
	}
	return out
}

// Mentions lists the catalog words used in text, either as characters or as
// tone-less pinyin tokens. Each word appears once, in order of first mention.
func (c *Catalog) Mentions(text string) []CatalogWord {
	seen := map[string]struct{}{}
	var out []CatalogWord

	add := func(idx int) {
		word := c.words[idx]
		if _, ok := seen[word.Word]; ok {
			return
		}
		seen[word.Word] = struct{}{}
		out = append(out, word)
	}

	type hit struct {
		pos int
		idx int
	}
	var hits []hit
	for idx, word := range c.words {
		if pos := strings.Index(text, word.Word); pos >= 0 {
			hits = append(hits, hit{pos: pos, idx: idx})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	for _, h := range hits {
		add(h.idx)
	}

	for _, token := range strings.FieldsFunc(FoldPinyin(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	}) {
		if idx, ok := c.byPinyin[token]; ok {
			add(idx)
		}
	}

	return out
}

// FoldPinyin lower-cases s and strips tone marks so "Píngguǒ" matches "pingguo".
func FoldPinyin(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// IsHan reports whether r is a CJK unified ideograph.
func IsHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}
