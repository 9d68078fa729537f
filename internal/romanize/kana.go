package romanize

import (
	_ "embed"
	"fmt"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed kana.yaml
var kanaYAML []byte

// kanaFile mirrors the layout of kana.yaml.
type kanaFile struct {
	Hiragana map[string]string `yaml:"hiragana"`
	Katakana map[string]string `yaml:"katakana"`
}

// KanaTable maps one or two kana to their romaji.
type KanaTable map[string]string

// loadKanaTable parses the embedded table once per process.
var loadKanaTable = sync.OnceValues(func() (KanaTable, error) {
	return ParseKanaTable(kanaYAML)
})

// DefaultKanaTable returns the embedded kana table.
// The returned map is shared and must not be modified.
func DefaultKanaTable() (KanaTable, error) {
	return loadKanaTable()
}

// ParseKanaTable parses a kana table in the kana.yaml layout.
// Keys must be one or two characters long.
func ParseKanaTable(data []byte) (KanaTable, error) {
	var f kanaFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse kana table: %w", err)
	}

	table := make(KanaTable, len(f.Hiragana)+len(f.Katakana))
	for _, section := range []map[string]string{f.Hiragana, f.Katakana} {
		for k, v := range section {
			if n := utf8.RuneCountInString(k); n < 1 || n > 2 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidKanaKey, k)
			}
			table[k] = v
		}
	}
	return table, nil
}

// lookup returns the romaji for the kana at the start of runes and how many
// runes it consumed. Digraphs win over single kana. ok is false when the
// first rune is not in the table.
func (t KanaTable) lookup(runes []rune) (romaji string, n int, ok bool) {
	if len(runes) >= 2 {
		if v, found := t[string(runes[:2])]; found {
			return v, 2, true
		}
	}
	if len(runes) >= 1 {
		if v, found := t[string(runes[:1])]; found {
			return v, 1, true
		}
	}
	return "", 0, false
}
