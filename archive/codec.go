package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/viant/wordrank/rank"
	"github.com/viant/wordrank/schedule"
)

// document is the JSON form of a record. Ranking files may also hold a bare
// ranking array.
type document struct {
	GameDate   string       `json:"game_date,omitempty"`
	SecretWord string       `json:"secret_word,omitempty"`
	Ranking    []rank.Entry `json:"ranking"`
	CreatedAt  string       `json:"created_at,omitempty"`
}

// EncodeRanking encodes a ranking as an indented JSON array of
// {word, similarity, rank} objects with non-ASCII text left unescaped.
func EncodeRanking(ranking []rank.Entry) ([]byte, error) {
	if ranking == nil {
		ranking = []rank.Entry{}
	}
	return marshal(ranking, "  ")
}

func marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeRecord(rec *Record) ([]byte, error) {
	return marshal(document{
		GameDate:   schedule.FormatDate(rec.GameDate),
		SecretWord: rec.SecretWord,
		Ranking:    rec.Ranking,
		CreatedAt:  formatTime(rec.CreatedAt),
	}, "")
}

// decodeDocument accepts either a bare ranking array or an object holding a
// "ranking" array with optional game_date, secret_word and created_at.
func decodeDocument(data []byte) (*document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("archive: empty ranking document")
	}
	switch data[0] {
	case '[':
		var ranking []rank.Entry
		if err := json.Unmarshal(data, &ranking); err != nil {
			return nil, fmt.Errorf("archive: decode ranking: %w", err)
		}
		return &document{Ranking: ranking}, nil
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("archive: decode document: %w", err)
		}
		if r, ok := raw["ranking"]; !ok || len(bytes.TrimSpace(r)) == 0 || bytes.TrimSpace(r)[0] != '[' {
			return nil, fmt.Errorf("archive: document has no ranking array")
		}
		doc := &document{}
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("archive: decode document: %w", err)
		}
		return doc, nil
	}
	return nil, fmt.Errorf("archive: ranking document must be a JSON array or object")
}

func (d *document) record(fallbackDate time.Time) (*Record, error) {
	rec := &Record{GameDate: schedule.Day(fallbackDate), SecretWord: d.SecretWord, Ranking: d.Ranking}
	if d.GameDate != "" {
		date, err := schedule.ParseDate(d.GameDate)
		if err != nil {
			return nil, err
		}
		rec.GameDate = date
	}
	rec.CreatedAt = parseTime(d.CreatedAt)
	return rec, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
