package signal

import (
	"bytes"
	"strconv"
)

// Text decodes a free-form field from a JSON string, number or boolean.
// Numbers and booleans keep their literal text; null, objects and arrays
// decode to empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '"':
		if s, err := strconv.Unquote(string(raw)); err == nil {
			*t = Text(s)
		}
	case '{', '[', 'n':
	default:
		*t = Text(raw)
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}
