package text

import (
	"errors"
	"strings"

	"github.com/Manu343726/sawfish/pkg/utils"
)

var (
	ErrUnbalancedBrace    = errors.New("unbalanced brace")
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
	ErrQuoteInDisplay     = errors.New("double quote in display text")
)

// Selects how literal text is rendered
type Mode uint

const (
	// Display text: literal runs are emitted as quoted strings
	Mode_Display Mode = iota
	// Action and pcode text: literal runs are emitted verbatim
	Mode_Semantics
)

func (m Mode) String() string {
	switch m {
	case Mode_Display:
		return "display"
	case Mode_Semantics:
		return "semantics"
	}

	panic("unreachable")
}

// Resolves a field placeholder into the token name it stands for
type Resolver func(id string) (string, error)

type pieceKind uint

const (
	pieceKind_Literal pieceKind = iota
	pieceKind_Field
	pieceKind_Local
)

type piece struct {
	kind  pieceKind
	value string
}

type scanner struct {
	input   string
	current int
	pieces  []piece
}

func (s *scanner) atEnd() bool {
	return s.current >= len(s.input)
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}

	return s.input[s.current]
}

func (s *scanner) match(expected byte) bool {
	if s.atEnd() || s.peek() != expected {
		return false
	}

	s.current++
	return true
}

// Appends a literal, merging it with the previous one
func (s *scanner) literal(value string) {
	if value == "" {
		return
	}

	if n := len(s.pieces); n > 0 && s.pieces[n-1].kind == pieceKind_Literal {
		s.pieces[n-1].value += value
		return
	}

	s.pieces = append(s.pieces, piece{kind: pieceKind_Literal, value: value})
}

func (s *scanner) scan() ([]piece, error) {
	for !s.atEnd() {
		start := s.current
		c := s.input[s.current]
		s.current++

		switch c {
		case '{':
			if s.match('{') {
				s.literal("{")
			} else if err := s.placeholder(start); err != nil {
				return nil, err
			}
		case '}':
			if !s.match('}') {
				return nil, utils.MakeError(ErrUnbalancedBrace, "single '}' at offset %v in %q, use '}}' for a literal brace", start, s.input)
			}
			s.literal("}")
		default:
			for !s.atEnd() && s.peek() != '{' && s.peek() != '}' {
				s.current++
			}
			s.literal(s.input[start:s.current])
		}
	}

	return s.pieces, nil
}

func (s *scanner) placeholder(start int) error {
	kind := pieceKind_Field
	if s.match('$') {
		kind = pieceKind_Local
	}

	begin := s.current
	for !s.atEnd() && s.peek() != '}' {
		if s.peek() == '{' {
			return utils.MakeError(ErrUnbalancedBrace, "nested '{' at offset %v in %q", s.current, s.input)
		}
		s.current++
	}

	if s.atEnd() {
		return utils.MakeError(ErrUnbalancedBrace, "placeholder opened at offset %v in %q is never closed", start, s.input)
	}

	name := s.input[begin:s.current]
	s.current++

	if name == "" {
		return utils.MakeError(ErrUnknownPlaceholder, "empty placeholder at offset %v in %q", start, s.input)
	}

	s.pieces = append(s.pieces, piece{kind: kind, value: name})
	return nil
}

// Renders text with placeholders:
//
//	{field}  the token name of a field or named field, given by resolve
//	{$name}  a pcode local, emitted as is
//	{{ }}    literal braces
func Format(mode Mode, input string, resolve Resolver) (string, error) {
	pieces, err := (&scanner{input: input}).scan()
	if err != nil {
		return "", err
	}

	var out strings.Builder

	for _, p := range pieces {
		switch p.kind {
		case pieceKind_Literal:
			if mode == Mode_Display {
				// sleigh display strings have no escapes
				if strings.ContainsRune(p.value, '"') {
					return "", utils.MakeError(ErrQuoteInDisplay, "%q", input)
				}
				out.WriteString(`"` + p.value + `"`)
			} else {
				out.WriteString(p.value)
			}
		case pieceKind_Local:
			out.WriteString(p.value)
		case pieceKind_Field:
			if resolve == nil {
				return "", utils.MakeError(ErrUnknownPlaceholder, "'{%v}' in %q, no fields to resolve it against", p.value, input)
			}

			name, err := resolve(p.value)
			if err != nil {
				return "", utils.MakeError(ErrUnknownPlaceholder, "'{%v}' in %q: %v", p.value, input, err)
			}
			out.WriteString(name)
		}
	}

	return out.String(), nil
}

// Returns the identifiers of the field placeholders in the text, in order
func Placeholders(input string) ([]string, error) {
	pieces, err := (&scanner{input: input}).scan()
	if err != nil {
		return nil, err
	}

	fields := utils.Filter(pieces, func(p piece) bool { return p.kind == pieceKind_Field })
	return utils.Map(fields, func(p piece) string { return p.value }), nil
}

// Escapes braces so the text renders literally
func Escape(input string) string {
	return strings.NewReplacer("{", "{{", "}", "}}").Replace(input)
}
