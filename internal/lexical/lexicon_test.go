package lexical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
	"github.com/heartmarshall/myenglish-vocab/internal/lexical"
	"github.com/heartmarshall/myenglish-vocab/internal/lexical/wordnet"
)

func newLexicon(t *testing.T) *lexical.Lexicon {
	t.Helper()
	idx, err := wordnet.Load("wordnet/testdata")
	require.NoError(t, err)
	return lexical.New(idx)
}

func TestLemmatize(t *testing.T) {
	t.Parallel()
	lex := newLexicon(t)

	tests := []struct {
		token  string
		pos    domain.PartOfSpeech
		want   string
		wantOK bool
	}{
		{"animals", domain.PartOfSpeechNoun, "animal", true},
		{"banks", domain.PartOfSpeechNoun, "bank", true},
		{"banking", domain.PartOfSpeechVerb, "bank", true},
		{"banked", domain.PartOfSpeechVerb, "bank", true},
		{"gave", domain.PartOfSpeechVerb, "give", true},
		{"given", domain.PartOfSpeechVerb, "give", true},
		{"Gives", domain.PartOfSpeechVerb, "give", true},
		{"oxen", domain.PartOfSpeechNoun, "ox", true},
		{"bigger", domain.PartOfSpeechAdjective, "", false}, // doubled consonant is not a rule
		{"quickly", domain.PartOfSpeechAdverb, "quickly", true},
		{"unicorns", domain.PartOfSpeechNoun, "", false},
		{"", domain.PartOfSpeechNoun, "", false},
		{"bank", domain.PartOfSpeech("x"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.token+"/"+string(tt.pos), func(t *testing.T) {
			t.Parallel()
			got, ok := lex.Lemmatize(tt.token, tt.pos)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLemmatize_WithoutIndex(t *testing.T) {
	t.Parallel()
	lex := lexical.New(nil)

	got, ok := lex.Lemmatize("went", domain.PartOfSpeechVerb)
	assert.True(t, ok)
	assert.Equal(t, "go", got)

	_, ok = lex.Lemmatize("animals", domain.PartOfSpeechNoun)
	assert.False(t, ok)
	assert.Empty(t, lex.Synsets("bank"))
}

func TestSynsets_AllPartsOfSpeech(t *testing.T) {
	t.Parallel()
	lex := newLexicon(t)

	got := lex.Synsets("bank")
	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"bank.n.01", "depository_financial_institution.n.01", "bank.v.01"}, ids)
}

func TestSynsets_InflectedForm(t *testing.T) {
	t.Parallel()
	lex := newLexicon(t)

	got := lex.Synsets("gave")
	require.Len(t, got, 2)
	assert.Equal(t, "give.v.01", got[0].ID)
}

func TestSynsets_Unknown(t *testing.T) {
	t.Parallel()
	lex := newLexicon(t)
	assert.Empty(t, lex.Synsets("zzyzx"))
}

func TestSegmentSentences(t *testing.T) {
	t.Parallel()
	lex := lexical.New(nil)

	got, err := lex.SegmentSentences("The pig slept. The farm was quiet.")
	require.NoError(t, err)
	assert.Equal(t, []string{"The pig slept.", "The farm was quiet."}, got)
}

func TestTokenizeAndTag(t *testing.T) {
	t.Parallel()
	lex := lexical.New(nil)

	tokens, err := lex.Tokenize("The pig slept.")
	require.NoError(t, err)
	assert.Equal(t, []string{"The", "pig", "slept", "."}, tokens)

	tagged, err := lex.Tag(tokens)
	require.NoError(t, err)
	require.Len(t, tagged, len(tokens))
	assert.Equal(t, "The", tagged[0].Text)
	assert.Equal(t, "DT", tagged[0].Tag)
	assert.Equal(t, ".", tagged[3].Tag)

	empty, err := lex.Tag(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
