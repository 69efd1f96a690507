package data

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ParseDelimitedCharacters decodes the legacy character-list encoding used by
// the principals table. The field looks like a JSON string array but is really
// a join on literal `["`, `","` and `"]` delimiters, so embedded escapes are
// never interpreted. An empty field is an empty list; input without the
// bracket delimiters is an error, which callers are expected to log and
// degrade to an empty list.
func ParseDelimitedCharacters(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}

	if !strings.HasPrefix(s, `["`) || !strings.HasSuffix(s, `"]`) {
		return nil, fmt.Errorf("malformed characters encoding: %q", s)
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(s, `["`), `"]`)

	return strings.Split(inner, `","`), nil
}

// ParseStrictCharacters decodes a character list stored as a proper JSON
// string array, as used by the credits rows behind the person lookup. Unlike
// ParseDelimitedCharacters, malformed input here is a hard error for the
// whole request.
func ParseStrictCharacters(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}

	var characters []string
	if err := json.Unmarshal([]byte(s), &characters); err != nil {
		return nil, fmt.Errorf("decoding characters %q: %w", s, err)
	}

	return characters, nil
}
