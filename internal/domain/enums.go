package domain

// PartOfSpeech is the coarse word class stored on a Word.
// Only the four indexed classes exist; everything else is dropped by the classifier.
type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "n"
	PartOfSpeechVerb      PartOfSpeech = "v"
	PartOfSpeechAdverb    PartOfSpeech = "r"
	PartOfSpeechAdjective PartOfSpeech = "a"
)

// PartsOfSpeech lists the indexed classes in destination order.
var PartsOfSpeech = []PartOfSpeech{
	PartOfSpeechNoun,
	PartOfSpeechVerb,
	PartOfSpeechAdverb,
	PartOfSpeechAdjective,
}

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdverb, PartOfSpeechAdjective:
		return true
	}
	return false
}

// Name returns the human readable class name.
func (p PartOfSpeech) Name() string {
	switch p {
	case PartOfSpeechNoun:
		return "noun"
	case PartOfSpeechVerb:
		return "verb"
	case PartOfSpeechAdverb:
		return "adverb"
	case PartOfSpeechAdjective:
		return "adjective"
	}
	return "unknown"
}

// CoarsePOS maps a Penn Treebank tag onto one of the indexed classes.
// empty reports that the tag is the base form of its class, so the surface
// spelling equals the lemma and is not worth recording as a declination.
// ok is false for tags that are never indexed (determiners, prepositions, punctuation...).
func CoarsePOS(tag string) (pos PartOfSpeech, empty bool, ok bool) {
	switch tag {
	case "NN":
		return PartOfSpeechNoun, true, true
	case "NNS", "NNP", "NNPS":
		return PartOfSpeechNoun, false, true
	case "VB", "VBP":
		return PartOfSpeechVerb, true, true
	case "VBD", "VBG", "VBN", "VBZ":
		return PartOfSpeechVerb, false, true
	case "RB":
		return PartOfSpeechAdverb, true, true
	case "RBR", "RBS":
		return PartOfSpeechAdverb, false, true
	case "JJ":
		return PartOfSpeechAdjective, true, true
	case "JJR", "JJS", "JJT":
		return PartOfSpeechAdjective, false, true
	}
	return "", false, false
}
