package instructions

import (
	"cmp"
	"fmt"

	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
	"github.com/Manu343726/sawfish/pkg/utils"
)

// Decode token declared for a resolved field. Tokens are compared by value
type Token struct {
	Name   string
	Range  pattern.BitRange
	Signed bool
}

func NewToken(field pattern.Field) Token {
	return Token{
		Name:   field.TokenName(),
		Range:  field.Range,
		Signed: field.IsSigned(),
	}
}

func (t Token) String() string {
	if t.Signed {
		return fmt.Sprintf("%v = %v signed", t.Name, t.Range)
	}

	return fmt.Sprintf("%v = %v", t.Name, t.Range)
}

// Orders tokens by start bit, then length, then name
func CompareTokens(a, b Token) int {
	if c := cmp.Compare(a.Range.Start, b.Range.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Range.Len(), b.Range.Len()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}

	switch {
	case a.Signed == b.Signed:
		return 0
	case b.Signed:
		return -1
	}

	return 1
}

// Set of distinct tokens of one encoding word
type TokenSet map[Token]struct{}

// Adds a token, returning false if it was already in the set
func (s TokenSet) Insert(token Token) bool {
	if _, hasToken := s[token]; hasToken {
		return false
	}

	s[token] = struct{}{}
	return true
}

// Returns the tokens in declaration order
func (s TokenSet) Sorted() []Token {
	return utils.SortedSet(s, CompareTokens)
}

// Token sets of every encoding word of a family
type TokenFamily [pattern.MaxWords]TokenSet

func newTokenFamily() TokenFamily {
	var tokens TokenFamily

	for i := range tokens {
		tokens[i] = make(TokenSet)
	}

	return tokens
}

// Binds a register selecting token to the registers it can encode
type TokenVar struct {
	Name      string
	Registers []string
}

func NewTokenVar(field pattern.Field) (TokenVar, error) {
	descriptor, err := registers.Catalog.Set(field.Type.RegisterSet())
	if err != nil {
		return TokenVar{}, err
	}

	return TokenVar{
		Name:      field.TokenName(),
		Registers: descriptor.Registers(),
	}, nil
}

func (v TokenVar) String() string {
	return fmt.Sprintf("%v -> [%v]", v.Name, utils.FormatSlice(v.Registers, " "))
}
