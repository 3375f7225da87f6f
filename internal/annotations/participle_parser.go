package annotations

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/buildergen/internal/errors"
)

// ParticipleParser parses builder annotations using alecthomas/participle
type ParticipleParser struct {
	parser *participle.Parser[annotation]
}

// annotation is the grammar of a builder annotation: //builder::<type>
type annotation struct {
	Comment   string `parser:"@Comment"`
	Namespace string `parser:"@Namespace"`
	Separator string `parser:"@Separator"`
	Type      string `parser:"@Ident"`
}

// NewParticipleParser creates a new parser using participle
func NewParticipleParser() *ParticipleParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Namespace", Pattern: Namespace},
		{Name: "Separator", Pattern: `::`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[^\sa-zA-Z0-9_]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	return &ParticipleParser{
		parser: participle.MustBuild[annotation](
			participle.Lexer(lex),
			participle.Elide("Whitespace"),
		),
	}
}

// IsAnnotation reports whether a comment line is meant as a builder
// annotation. It does not check that the annotation is well formed.
func IsAnnotation(comment string) bool {
	comment = strings.TrimSpace(comment)
	if !strings.HasPrefix(comment, "//") {
		return false
	}
	content := strings.TrimLeftFunc(comment[2:], unicode.IsSpace)
	return strings.HasPrefix(content, Namespace+"::")
}

// ParseAnnotation parses a single comment line. loc is the position of the
// comment and is used to place syntax errors.
func (p *ParticipleParser) ParseAnnotation(comment string, loc errors.SourceLocation) (*ParsedAnnotation, error) {
	raw := strings.TrimSpace(comment)

	parsed, err := p.parser.ParseString(loc.File, raw)
	if err != nil {
		return nil, p.syntaxError(err, loc)
	}

	typ, err := ParseAnnotationType(parsed.Type)
	if err != nil {
		return nil, errors.NewSyntaxError(fmt.Sprintf("unknown builder annotation '%s'", parsed.Type)).
			WithToken(parsed.Type).
			WithLocation(loc).
			WithSuggestion("Use format: " + Marker)
	}

	return &ParsedAnnotation{
		Type:     typ,
		Location: loc,
		Raw:      raw,
	}, nil
}

// syntaxError converts a participle error into a located SyntaxError
func (p *ParticipleParser) syntaxError(err error, loc errors.SourceLocation) *errors.SyntaxError {
	message := err.Error()
	var perr participle.Error
	if stderrors.As(err, &perr) {
		message = perr.Message()
		if pos := perr.Position(); pos.Column > 0 && loc.Column > 0 {
			loc.Column += pos.Column - 1
		}
	}

	syntaxErr := errors.NewSyntaxError("malformed builder annotation: " + message).
		WithLocation(loc).
		WithSuggestion("Use format: " + Marker)

	var unexpected *participle.UnexpectedTokenError
	if stderrors.As(err, &unexpected) {
		syntaxErr.WithToken(unexpected.Unexpected.Value)
	}
	return syntaxErr
}
