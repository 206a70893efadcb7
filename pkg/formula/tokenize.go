package formula

import "strings"

// tokenizer scan modes.
type scanMode int

const (
	modeDefault scanMode = iota
	modeSingleQuote
	modeDoubleQuote
	modeBracket
)

// singleCharSplits are the one-character operators and punctuation that end
// the current token in default mode.
const singleCharSplits = "+-*/=<>%(),"

// twoCharSplits are matched greedily before single characters.
var twoCharSplits = []string{"!=", "<=", ">=", "=="}

// Tokenize splits a preprocessed formula into raw token strings. Quoted
// strings keep their quotes; bracketed column text keeps its brackets and
// supports nested pairs.
func Tokenize(s string) ([]string, error) {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	mode := modeDefault
	depth := 0
	openOffset := -1

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch mode {
		case modeSingleQuote:
			current.WriteByte(c)
			if c == '\'' {
				flush()
				mode = modeDefault
			}
			continue
		case modeDoubleQuote:
			current.WriteByte(c)
			if c == '"' {
				flush()
				mode = modeDefault
			}
			continue
		case modeBracket:
			current.WriteByte(c)
			switch c {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					flush()
					mode = modeDefault
				}
			}
			continue
		}

		// Default mode.
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		case c == '\'':
			flush()
			mode = modeSingleQuote
			openOffset = i
			current.WriteByte(c)
		case c == '"':
			flush()
			mode = modeDoubleQuote
			openOffset = i
			current.WriteByte(c)
		case c == '[':
			flush()
			mode = modeBracket
			openOffset = i
			depth = 1
			current.WriteByte(c)
		case matchesTwoCharSplit(s, i):
			flush()
			tokens = append(tokens, s[i:i+2])
			i++
		case c == '!':
			return nil, &TokenizeError{Offset: i, Message: "illegal character '!'"}
		case strings.IndexByte(singleCharSplits, c) >= 0:
			flush()
			tokens = append(tokens, string(c))
		default:
			current.WriteByte(c)
		}
	}

	switch mode {
	case modeSingleQuote, modeDoubleQuote:
		return nil, &TokenizeError{Offset: openOffset, Message: "unterminated string literal"}
	case modeBracket:
		return nil, &TokenizeError{Offset: openOffset, Message: "unterminated column reference"}
	}
	flush()

	return tokens, nil
}

func matchesTwoCharSplit(s string, i int) bool {
	if i+2 > len(s) {
		return false
	}
	for _, op := range twoCharSplits {
		if s[i:i+2] == op {
			return true
		}
	}
	return false
}
