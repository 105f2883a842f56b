package worddetail

import (
	"github.com/heartmarshall/myenglish-vocab/internal/domain"
	"github.com/heartmarshall/myenglish-vocab/internal/wsd"
)

// Detail is the sense information for a word in a sentence.
// When the sense server cannot be reached Synsets is nil and ErrorMessage
// says why.
type Detail struct {
	Word          domain.Word
	Sentence      domain.Sentence
	Found         bool
	MatchedSynset string
	Synsets       []wsd.SynsetMatch
	ErrorMessage  string
}
