package style

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Format renders s as canonical style source: one directive per line,
// single-quoted targets and `:key => value` options.
func Format(s *Style) []byte {
	var buf bytes.Buffer
	if s == nil {
		return buf.Bytes()
	}

	for _, d := range s.Directives {
		buf.WriteString(d.Kind.String())
		if d.Kind != KindAll {
			buf.WriteByte(' ')
			if d.Kind == KindTag || d.Kind == KindExcludeTag {
				buf.WriteString(FormatValue(Symbol(d.Target)))
			} else {
				buf.WriteString(FormatValue(d.Target))
			}
		}
		for _, opt := range d.Params {
			buf.WriteString(", ")
			buf.WriteString(formatKey(opt.Key))
			buf.WriteString(" => ")
			buf.WriteString(FormatValue(opt.Value))
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// FormatWithHeader renders s after a comment header. Each header line is
// prefixed with "# " unless it already starts with "#".
func FormatWithHeader(s *Style, header string) []byte {
	if header == "" {
		return Format(s)
	}

	var buf bytes.Buffer
	for line := range strings.SplitSeq(strings.TrimRight(header, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "#"):
			buf.WriteString(line)
		case line == "":
			buf.WriteString("#")
		default:
			buf.WriteString("# " + line)
		}
		buf.WriteByte('\n')
	}
	buf.Write(Format(s))
	return buf.Bytes()
}

// FormatValue renders a single value in source form.
func FormatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return "nil"
	case string:
		return quote(typed)
	case Symbol:
		if isIdentifier(string(typed)) {
			return ":" + string(typed)
		}
		return ":" + quote(string(typed))
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return formatFloat(typed)
	case []any:
		parts := make([]string, len(typed))
		for i, elem := range typed {
			parts[i] = FormatValue(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []string:
		parts := make([]string, len(typed))
		for i, elem := range typed {
			parts[i] = quote(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return quote(fmt.Sprint(typed))
	}
}

func formatKey(key string) string {
	if isIdentifier(key) {
		return ":" + key
	}
	return quote(key)
}

// formatFloat keeps a decimal point so the value reads back as a float.
func formatFloat(f float64) string {
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(text, ".eEn") {
		return text
	}
	return text + ".0"
}

func quote(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + replacer.Replace(s) + "'"
}

func isIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}
