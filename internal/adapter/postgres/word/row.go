package word

import (
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

type wordRow struct {
	ID          int64              `db:"id"`
	Lem         string             `db:"lem"`
	POS         *string            `db:"pos"`
	Count       int                `db:"count"`
	Declination domain.Declination `db:"declination"`
	Definition  *string            `db:"definition"`
	Synset      *string            `db:"synset"`
}

func (r wordRow) toDomain() domain.Word {
	w := domain.Word{
		ID:          r.ID,
		Lem:         r.Lem,
		Count:       r.Count,
		Declination: r.Declination,
		Definition:  r.Definition,
		Synset:      r.Synset,
	}
	if r.POS != nil {
		w.POS = domain.PartOfSpeech(*r.POS)
	}
	if w.Declination == nil {
		w.Declination = domain.Declination{}
	}
	return w
}

func scanWord(row pgx.Row) (domain.Word, error) {
	var r wordRow
	if err := row.Scan(&r.ID, &r.Lem, &r.POS, &r.Count, &r.Declination, &r.Definition, &r.Synset); err != nil {
		return domain.Word{}, err
	}
	return r.toDomain(), nil
}

// posArg stores an unset part of speech as NULL.
func posArg(pos domain.PartOfSpeech) any {
	if pos == "" {
		return nil
	}
	return string(pos)
}

func naturalKey(lem string, pos domain.PartOfSpeech) string {
	return lem + "/" + string(pos)
}

func prefixed(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
