package domain

// RelationKind names a many-to-many link. The source side is listed first.
type RelationKind string

const (
	// RelationSentenceWord links a word to the sentences it occurs in.
	RelationSentenceWord RelationKind = "sentence_word"
	// RelationFlashcardWord links a word to flashcards whose keyword produced it.
	RelationFlashcardWord RelationKind = "flashcard_word"
	// RelationSentenceFlashcard links a flashcard to sentences containing its words.
	RelationSentenceFlashcard RelationKind = "sentence_flashcard"
)
