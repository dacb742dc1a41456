package rules

// Parameter structs are reflected into JSON Schema, so the json tag is the
// parameter name as written in a style file and the jsonschema tag carries
// the constraints. Every field is optional.

// HeaderLevelParams is used by rules that check for a particular header level.
type HeaderLevelParams struct {
	Level int `json:"level,omitempty" jsonschema:"minimum=1,maximum=6"`
}

// HeaderStyleParams configures MD003.
type HeaderStyleParams struct {
	Style string `json:"style,omitempty" jsonschema:"enum=consistent,enum=atx,enum=atx_closed,enum=setext,enum=setext_with_atx"`
}

// ListStyleParams configures MD004.
type ListStyleParams struct {
	Style string `json:"style,omitempty" jsonschema:"enum=consistent,enum=asterisk,enum=plus,enum=dash,enum=sublist"`
}

// ListIndentParams configures MD007.
type ListIndentParams struct {
	Indent int `json:"indent,omitempty" jsonschema:"minimum=1"`
}

// TrailingSpacesParams configures MD009.
type TrailingSpacesParams struct {
	BrSpaces int `json:"br_spaces,omitempty" jsonschema:"minimum=0"`
}

// HardTabsParams configures MD010.
type HardTabsParams struct {
	IgnoreCodeBlocks bool `json:"ignore_code_blocks,omitempty"`
}

// LineLengthParams configures MD013.
type LineLengthParams struct {
	LineLength       int  `json:"line_length,omitempty" jsonschema:"minimum=1"`
	IgnoreCodeBlocks bool `json:"ignore_code_blocks,omitempty"`
	CodeBlocks       bool `json:"code_blocks,omitempty"`
	Tables           bool `json:"tables,omitempty"`
	Headings         bool `json:"headings,omitempty"`
}

// DuplicateHeaderParams configures MD024.
type DuplicateHeaderParams struct {
	AllowDifferentNesting bool `json:"allow_different_nesting,omitempty"`
}

// PunctuationParams is used by rules that look at trailing punctuation.
type PunctuationParams struct {
	Punctuation string `json:"punctuation,omitempty"`
}

// OrderedListParams configures MD029.
type OrderedListParams struct {
	Style string `json:"style,omitempty" jsonschema:"enum=one,enum=ordered,enum=one_or_ordered"`
}

// ListMarkerSpaceParams configures MD030.
type ListMarkerSpaceParams struct {
	UlSingle int `json:"ul_single,omitempty" jsonschema:"minimum=1"`
	OlSingle int `json:"ol_single,omitempty" jsonschema:"minimum=1"`
	UlMulti  int `json:"ul_multi,omitempty" jsonschema:"minimum=1"`
	OlMulti  int `json:"ol_multi,omitempty" jsonschema:"minimum=1"`
}

// InlineHTMLParams configures MD033. AllowedElements is a comma-separated
// list of element names.
type InlineHTMLParams struct {
	AllowedElements string `json:"allowed_elements,omitempty"`
}

// HRStyleParams configures MD035. Besides "consistent" the style may be
// any literal horizontal rule such as "---".
type HRStyleParams struct {
	Style string `json:"style,omitempty" jsonschema:"minLength=1"`
}

// CodeBlockStyleParams configures MD046.
type CodeBlockStyleParams struct {
	Style string `json:"style,omitempty" jsonschema:"enum=consistent,enum=fenced,enum=indented"`
}
