package domain

// Word is a vocabulary record identified by the natural key (Lem, POS).
// POS may be empty on legacy rows.
type Word struct {
	ID          int64
	Lem         string
	POS         PartOfSpeech
	Count       int
	Declination Declination
	Definition  *string
	Synset      *string
}

// Declination maps a fine-grained tag (e.g. "VBD") to an observed spelling.
type Declination map[string]string

// Union adds every tag of other that d does not have yet.
// Existing spellings are kept.
func (d Declination) Union(other Declination) Declination {
	out := make(Declination, len(d)+len(other))
	for tag, form := range other {
		out[tag] = form
	}
	for tag, form := range d {
		out[tag] = form
	}
	return out
}

// Clone returns an independent copy; a nil Declination clones to an empty one.
func (d Declination) Clone() Declination {
	out := make(Declination, len(d))
	for tag, form := range d {
		out[tag] = form
	}
	return out
}

// Synset is one sense of a word in the lexical resource.
type Synset struct {
	ID         string
	Definition string
	Examples   []string
}

// TaggedToken is a token with its Penn Treebank tag.
type TaggedToken struct {
	Text string
	Tag  string
}
