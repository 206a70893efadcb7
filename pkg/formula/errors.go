package formula

import "fmt"

// at formats the best-effort character offset shared by all error kinds.
// An offset of -1 means the failure was discovered after positions were lost.
func at(offset int) string {
	if offset < 0 {
		return ""
	}
	return fmt.Sprintf(" at offset %d", offset)
}

// PreprocessError reports unbalanced quotes or a malformed column reference
// found while canonicalizing the input.
type PreprocessError struct {
	Offset  int
	Message string
}

func (e *PreprocessError) Error() string {
	return fmt.Sprintf("preprocess error%s: %s", at(e.Offset), e.Message)
}

// TokenizeError reports an unterminated string or bracket, or an illegal
// character.
type TokenizeError struct {
	Offset  int
	Message string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenize error%s: %s", at(e.Offset), e.Message)
}

// ClassifyError reports consecutive binary operators with no operand
// between them.
type ClassifyError struct {
	Offset  int
	Message string
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("classify error%s: %s", at(e.Offset), e.Message)
}

// UnexpectedTokenError reports a builder context violation, such as a
// separator outside a function call or a then outside a conditional.
type UnexpectedTokenError struct {
	Offset  int
	Token   string
	Message string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %q%s: %s", e.Token, at(e.Offset), e.Message)
}

// MissingBracketError reports a function or conditional keyword not followed
// by an opening bracket.
type MissingBracketError struct {
	Offset int
	After  string
}

func (e *MissingBracketError) Error() string {
	return fmt.Sprintf("expected opening bracket after %q%s", e.After, at(e.Offset))
}

// MissingEndifError reports input exhausted while a conditional is open.
type MissingEndifError struct {
	Offset int
}

func (e *MissingEndifError) Error() string {
	return fmt.Sprintf("missing endif: conditional still open%s", at(e.Offset))
}

// UnknownFunctionError reports an emission-time registry lookup failure.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", e.Name)
}

// MalformedTreeError reports an internal invariant violation discovered
// while collapsing scaffolding nodes or while emitting the tree.
type MalformedTreeError struct {
	Message string
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("malformed tree: %s", e.Message)
}

// NestingLimitError reports that the configured maximum nesting depth was
// exceeded while building the tree.
type NestingLimitError struct {
	Limit int
}

func (e *NestingLimitError) Error() string {
	return fmt.Sprintf("nesting depth exceeds limit of %d", e.Limit)
}
