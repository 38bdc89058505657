package model

import (
	"time"

	"gorm.io/datatypes"
)

// Word is a global dictionary entry shared by every user that added it.
// Rows are keyed by the lowercased word and never updated once created.
type Word struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Word       string         `gorm:"uniqueIndex;size:100;not null" json:"word"`
	Phonetic   string         `json:"phonetic,omitempty"`
	Origin     string         `gorm:"type:text" json:"origin,omitempty"`
	License    datatypes.JSON `json:"license,omitempty"`
	SourceURLs datatypes.JSON `json:"source_urls,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`

	Meanings  []Meaning  `gorm:"constraint:OnDelete:CASCADE" json:"meanings"`
	Phonetics []Phonetic `gorm:"constraint:OnDelete:CASCADE" json:"phonetics"`
	Images    []Image    `gorm:"constraint:OnDelete:CASCADE" json:"images"`
}

type Meaning struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"-"`
	WordID       uint        `gorm:"index;not null" json:"-"`
	PartOfSpeech string      `gorm:"size:32" json:"part_of_speech"`
	Synonyms     StringSlice `json:"synonyms"`
	Antonyms     StringSlice `json:"antonyms"`

	Definitions []Definition `gorm:"constraint:OnDelete:CASCADE" json:"definitions"`
}

type Definition struct {
	ID         uint        `gorm:"primaryKey;autoIncrement" json:"-"`
	MeaningID  uint        `gorm:"index;not null" json:"-"`
	Definition string      `gorm:"type:text;not null" json:"definition"`
	Example    string      `gorm:"type:text" json:"example,omitempty"`
	Synonyms   StringSlice `json:"synonyms"`
	Antonyms   StringSlice `json:"antonyms"`
}

type Phonetic struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	WordID    uint   `gorm:"index;not null" json:"-"`
	Text      string `json:"text,omitempty"`
	Audio     string `json:"audio,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
}

// Image illustrates a word. URLs are unique across all words.
type Image struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	WordID         uint   `gorm:"index;not null" json:"-"`
	URL            string `gorm:"uniqueIndex;size:512;not null" json:"url"`
	DescriptionURL string `gorm:"size:512" json:"description_url"`
	Comment        string `gorm:"type:text" json:"comment"`
}
