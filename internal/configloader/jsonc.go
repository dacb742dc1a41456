package configloader

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeJSONC decodes markdownlint's JSONC dialect: JSON that may contain
// `//` and `/* */` comments and trailing commas.
func decodeJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}
	if err := json.Unmarshal(stripJSONC(content), target); err != nil {
		return fmt.Errorf("decode JSONC: %w", err)
	}
	return nil
}

// stripJSONC removes comments and trailing commas outside string literals.
// Newlines ending line comments are kept so decode errors report the
// right line.
func stripJSONC(content []byte) []byte {
	out := make([]byte, 0, len(content))
	trailing := -1 // offset in out of a comma not yet followed by a value

	for i := 0; i < len(content); i++ {
		c := content[i]
		rest := content[i:]

		switch {
		case c == '"':
			end := stringEnd(content, i)
			out = append(out, content[i:end]...)
			i = end - 1
			trailing = -1

		case bytes.HasPrefix(rest, []byte("//")):
			newline := bytes.IndexByte(rest, '\n')
			if newline < 0 {
				return out
			}
			i += newline - 1

		case bytes.HasPrefix(rest, []byte("/*")):
			end := bytes.Index(rest[2:], []byte("*/"))
			if end < 0 {
				return out
			}
			i += end + 3

		case c == ',':
			trailing = len(out)
			out = append(out, c)

		case c == '}' || c == ']':
			if trailing >= 0 {
				out = append(out[:trailing], out[trailing+1:]...)
				trailing = -1
			}
			out = append(out, c)

		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			out = append(out, c)

		default:
			trailing = -1
			out = append(out, c)
		}
	}
	return out
}

// stringEnd returns the offset just past the string literal opening at start.
func stringEnd(content []byte, start int) int {
	for i := start + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(content)
}
