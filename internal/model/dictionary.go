package model

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// DictionaryEntry is a single element of the definition lookup response
type DictionaryEntry struct {
	Word       string               `json:"word"`
	Phonetic   string               `json:"phonetic,omitempty"`
	Phonetics  []DictionaryPhonetic `json:"phonetics"`
	Origin     string               `json:"origin,omitempty"`
	Meanings   []DictionaryMeaning  `json:"meanings"`
	License    *DictionaryLicense   `json:"license,omitempty"`
	SourceURLs []string             `json:"sourceUrls,omitempty"`
}

type DictionaryPhonetic struct {
	Text      string             `json:"text,omitempty"`
	Audio     string             `json:"audio,omitempty"`
	SourceURL string             `json:"sourceUrl,omitempty"`
	License   *DictionaryLicense `json:"license,omitempty"`
}

type DictionaryMeaning struct {
	PartOfSpeech string                 `json:"partOfSpeech"`
	Definitions  []DictionaryDefinition `json:"definitions"`
	Synonyms     []string               `json:"synonyms,omitempty"`
	Antonyms     []string               `json:"antonyms,omitempty"`
}

type DictionaryDefinition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"`
	Antonyms   []string `json:"antonyms,omitempty"`
}

type DictionaryLicense struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NewWord folds every entry returned for a word into one Word row with its
// child rows. The headword of the first entry wins.
func NewWord(entries []DictionaryEntry) *Word {
	if len(entries) == 0 {
		return nil
	}

	w := &Word{
		Word:      strings.ToLower(strings.TrimSpace(entries[0].Word)),
		Meanings:  []Meaning{},
		Phonetics: []Phonetic{},
	}

	var sources []string
	for _, e := range entries {
		if w.Phonetic == "" {
			w.Phonetic = e.Phonetic
		}
		if w.Origin == "" {
			w.Origin = e.Origin
		}
		if w.License == nil && e.License != nil {
			if b, err := json.Marshal(e.License); err == nil {
				w.License = datatypes.JSON(b)
			}
		}
		sources = append(sources, e.SourceURLs...)

		for _, p := range e.Phonetics {
			if p.Text == "" && p.Audio == "" {
				continue
			}
			w.Phonetics = append(w.Phonetics, Phonetic{
				Text:      p.Text,
				Audio:     p.Audio,
				SourceURL: p.SourceURL,
			})
		}

		for _, m := range e.Meanings {
			meaning := Meaning{
				PartOfSpeech: m.PartOfSpeech,
				Synonyms:     NewStringSlice(m.Synonyms),
				Antonyms:     NewStringSlice(m.Antonyms),
				Definitions:  make([]Definition, 0, len(m.Definitions)),
			}
			for _, d := range m.Definitions {
				meaning.Definitions = append(meaning.Definitions, Definition{
					Definition: d.Definition,
					Example:    d.Example,
					Synonyms:   NewStringSlice(d.Synonyms),
					Antonyms:   NewStringSlice(d.Antonyms),
				})
			}
			w.Meanings = append(w.Meanings, meaning)
		}
	}

	if len(sources) > 0 {
		if b, err := json.Marshal(sources); err == nil {
			w.SourceURLs = datatypes.JSON(b)
		}
	}

	return w
}
