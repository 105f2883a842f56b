package lexical

import "github.com/heartmarshall/myenglish-vocab/internal/domain"

// irregularForms maps common inflections that no detachment rule recovers.
// Index-provided forms take precedence.
var irregularForms = map[domain.PartOfSpeech]map[string]string{
	domain.PartOfSpeechNoun: {
		"children": "child", "men": "man", "women": "woman", "feet": "foot",
		"teeth": "tooth", "geese": "goose", "mice": "mouse", "oxen": "ox",
		"people": "person", "lives": "life", "knives": "knife", "wives": "wife",
		"leaves": "leaf", "halves": "half", "sheep": "sheep", "wolves": "wolf",
	},
	domain.PartOfSpeechVerb: {
		"am": "be", "is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be",
		"has": "have", "had": "have", "having": "have",
		"did": "do", "does": "do", "done": "do",
		"gave": "give", "given": "give",
		"went": "go", "gone": "go", "goes": "go",
		"came": "come", "saw": "see", "seen": "see",
		"took": "take", "taken": "take", "made": "make",
		"said": "say", "told": "tell", "thought": "think",
		"knew": "know", "known": "know", "got": "get", "gotten": "get",
		"found": "find", "left": "leave", "felt": "feel",
		"brought": "bring", "began": "begin", "begun": "begin",
		"kept": "keep", "held": "hold", "stood": "stand",
		"heard": "hear", "ran": "run", "sat": "sit", "spoke": "speak", "spoken": "speak",
		"wrote": "write", "written": "write", "ate": "eat", "eaten": "eat",
		"drank": "drink", "drunk": "drink", "slept": "sleep", "woke": "wake", "woken": "wake",
		"fell": "fall", "fallen": "fall", "forgot": "forget", "forgotten": "forget",
		"led": "lead", "met": "meet", "paid": "pay", "sang": "sing", "sung": "sing",
		"taught": "teach", "understood": "understand", "won": "win", "wore": "wear", "worn": "wear",
	},
	domain.PartOfSpeechAdjective: {
		"better": "good", "best": "good", "worse": "bad", "worst": "bad",
		"more": "much", "most": "much", "less": "little", "least": "little",
		"further": "far", "farther": "far",
	},
	domain.PartOfSpeechAdverb: {
		"better": "well", "best": "well",
	},
}
