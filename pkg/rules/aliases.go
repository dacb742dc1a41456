package rules

// markdownlintName pairs an mdl rule with the name markdownlint gives the
// same check.
type markdownlintName struct {
	id   string
	name string
}

// markdownlintNames lets configs written for markdownlint address mdl
// rules. Rules markdownlint added later (MD042 onward, except MD046 and
// MD047) have no mdl counterpart and are absent.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintNames = []markdownlintName{
	{"MD001", "heading-increment"},
	{"MD002", "first-heading-h1"},
	{"MD003", "heading-style"},
	{"MD004", "ul-style"},
	{"MD005", "list-indent"},
	{"MD006", "ul-start-left"},
	{"MD007", "ul-indent"},
	{"MD009", "no-trailing-spaces"},
	{"MD010", "no-hard-tabs"},
	{"MD011", "no-reversed-links"},
	{"MD012", "no-multiple-blanks"},
	{"MD013", "line-length"},
	{"MD014", "commands-show-output"},
	{"MD018", "no-missing-space-atx"},
	{"MD019", "no-multiple-space-atx"},
	{"MD020", "no-missing-space-closed-atx"},
	{"MD021", "no-multiple-space-closed-atx"},
	{"MD022", "blanks-around-headings"},
	{"MD023", "heading-start-left"},
	{"MD024", "no-duplicate-heading"},
	{"MD025", "single-title"},
	{"MD026", "no-trailing-punctuation"},
	{"MD027", "no-multiple-space-blockquote"},
	{"MD028", "no-blanks-blockquote"},
	{"MD029", "ol-prefix"},
	{"MD030", "list-marker-space"},
	{"MD031", "blanks-around-fences"},
	{"MD032", "blanks-around-lists"},
	{"MD033", "no-inline-html"},
	{"MD034", "no-bare-urls"},
	{"MD035", "hr-style"},
	{"MD036", "no-emphasis-as-heading"},
	{"MD037", "no-space-in-emphasis"},
	{"MD038", "no-space-in-code"},
	{"MD039", "no-space-in-links"},
	{"MD040", "fenced-code-language"},
	{"MD041", "first-line-heading"},
	{"MD046", "code-block-style"},
	{"MD047", "single-trailing-newline"},
}

// tagAliases maps markdownlint tag spellings onto mdl's.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tagAliases = map[string]string{
	"headings": "headers",
	"heading":  "headers",
}
