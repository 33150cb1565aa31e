package trivia

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Question is a question-bank row in its wire representation.
type Question struct {
	ID         int         `json:"id"`
	Question   string      `json:"question"`
	Answer     string      `json:"answer"`
	Category   CategoryRef `json:"category"`
	Difficulty int         `json:"difficulty"`
}

// Category is a row of the categories table.
type Category struct {
	ID   int
	Type string
}

// CategoryRef is the opaque category token carried on questions. The column is
// varchar and quiz filtering compares tokens as strings, so numeric and string
// JSON inputs are both accepted and preserved.
type CategoryRef string

func (c CategoryRef) String() string {
	return string(c)
}

// UnmarshalJSON accepts a JSON number, string, or null.
func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CategoryRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = CategoryRef(n.String())
	return nil
}

// MarshalJSON re-emits an all-digit token as a bare number, anything else as a
// string.
func (c CategoryRef) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(c)); err == nil {
		return strconv.AppendInt(nil, int64(n), 10), nil
	}
	return json.Marshal(string(c))
}

// CategoryMap renders categories as a JSON object of id→type pairs while
// keeping iteration order by ascending id, which a Go map cannot guarantee.
type CategoryMap []Category

func (m CategoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(cat.ID))
		buf.WriteString(`":`)
		val, err := json.Marshal(cat.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
