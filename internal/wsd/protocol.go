// Package wsd implements word-sense disambiguation: a trained vocabulary of
// per-lemma classifiers, the TCP service answering sense queries and its
// client.
//
// Wire protocol: the client sends one JSON request {"word", "sentence"} per
// connection, optionally followed by a NUL byte, and half-closes. The server
// answers with one JSON response followed by a single NUL byte and closes.
// JSON escapes control characters, so a response body never contains a raw
// NUL.
package wsd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Terminator ends every response on the wire.
const Terminator byte = 0x00

// ErrResponseTooLarge is returned when a response exceeds the read limit.
var ErrResponseTooLarge = errors.New("wsd: response too large")

// Request asks which sense of Word is used in Sentence.
type Request struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
}

// SynsetMatch is one candidate sense. It travels as a JSON array
// [match, id, definition].
type SynsetMatch struct {
	Match      bool
	ID         string
	Definition string
}

func (m SynsetMatch) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{m.Match, m.ID, m.Definition})
}

func (m *SynsetMatch) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("synset match: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("synset match: want 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &m.Match); err != nil {
		return fmt.Errorf("synset match flag: %w", err)
	}
	if err := json.Unmarshal(raw[1], &m.ID); err != nil {
		return fmt.Errorf("synset match id: %w", err)
	}
	if err := json.Unmarshal(raw[2], &m.Definition); err != nil {
		return fmt.Errorf("synset match definition: %w", err)
	}
	return nil
}

// Response lists every known sense of Word. Found is 1 when the vocabulary
// had an entry for the word, in which case MatchedSynset names the chosen
// sense.
type Response struct {
	Found         int           `json:"found"`
	Word          string        `json:"word"`
	MatchedSynset string        `json:"matched_synset,omitempty"`
	Synsets       []SynsetMatch `json:"synsets"`
	// ErrorMessage is set by the client side when the service could not be
	// reached. It never travels on the wire.
	ErrorMessage string `json:"-"`
}

// Matched returns the sense flagged as the match.
func (r Response) Matched() (SynsetMatch, bool) {
	for _, s := range r.Synsets {
		if s.Match {
			return s, true
		}
	}
	return SynsetMatch{}, false
}

// WriteRequest encodes req followed by the terminator.
func WriteRequest(w io.Writer, req Request) error {
	return writeFrame(w, req)
}

// WriteResponse encodes resp followed by the terminator.
func WriteResponse(w io.Writer, resp Response) error {
	if resp.Synsets == nil {
		resp.Synsets = []SynsetMatch{}
	}
	return writeFrame(w, resp)
}

func writeFrame(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(append(body, Terminator)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ReadResponse reads until the terminator or EOF and decodes the bytes
// before it. At most limit bytes are read when limit is positive.
func ReadResponse(r io.Reader, limit int64) (Response, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	raw, err := bufio.NewReader(r).ReadBytes(Terminator)
	if err != nil && !errors.Is(err, io.EOF) {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	if limit > 0 && int64(len(raw)) > limit {
		return Response{}, ErrResponseTooLarge
	}
	raw = bytes.TrimSuffix(raw, []byte{Terminator})
	if len(bytes.TrimSpace(raw)) == 0 {
		return Response{}, fmt.Errorf("read response: %w", io.ErrUnexpectedEOF)
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}
