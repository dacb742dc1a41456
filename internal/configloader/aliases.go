package configloader

import "strings"

// markdownlintOnlyRules lists markdownlint rules with no mdl counterpart,
// keyed by ID and alias, so imports can say why a key was dropped.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintOnlyRules = map[string]string{
	"MD042": "no-empty-links",
	"MD043": "required-headings",
	"MD044": "proper-names",
	"MD045": "no-alt-text",
	"MD048": "code-fence-style",
	"MD049": "emphasis-style",
	"MD050": "strong-style",
	"MD051": "link-fragments",
	"MD052": "reference-links-images",
	"MD053": "link-image-reference-definitions",
	"MD054": "link-image-style",
	"MD055": "table-pipe-style",
	"MD056": "table-column-count",
	"MD058": "blanks-around-tables",
	"MD059": "descriptive-link-text",
	"MD060": "table-column-style",
}

// markdownlintOnlyTags lists markdownlint tags whose rules mdl lacks.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintOnlyTags = map[string]bool{
	"accessibility": true,
	"images":        true,
	"spelling":      true,
	"table":         true,
}

// markdownlintOnlyRule reports whether key names a markdownlint rule that
// mdl does not implement, returning its ID.
func markdownlintOnlyRule(key string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(key))
	if _, ok := markdownlintOnlyRules[upper]; ok {
		return upper, true
	}
	lower := strings.ToLower(strings.TrimSpace(key))
	for id, alias := range markdownlintOnlyRules {
		if alias == lower {
			return id, true
		}
	}
	return "", false
}
