package runtime

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/errors"
)

// Call resolves name, converts args per the standard rules, invokes once,
// and releases the argument list on every path.
func (env *Environment) Call(name string, args ...any) (data.Value, error) {
	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction(name); err != nil {
		return data.VoidValue(), err
	}
	if err := b.Append(args...); err != nil {
		return data.VoidValue(), err
	}
	return b.Invoke()
}

// CallInto performs Call and extracts the result into dst, which must be
// a pointer to one of the codec's supported Go targets.
func (env *Environment) CallInto(dst any, name string, args ...any) error {
	out, err := env.Call(name, args...)
	if err != nil {
		return err
	}
	return env.codec.Into(dst, out)
}

// CallString is the legacy text-argument path: argLine splits on
// whitespace outside double quotes, and each token converts by lexical
// shape. Quoted tokens become STRING, integer-shaped tokens INTEGER,
// float-shaped tokens FLOAT, and everything else SYMBOL. Quotes survive
// only as string delimiters; there is no escape syntax. The structured
// Call path is preferred for anything but pre-tokenized input.
func (env *Environment) CallString(name, argLine string) (data.Value, error) {
	toks, err := splitArgLine(argLine)
	if err != nil {
		return data.VoidValue(), err
	}
	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction(name); err != nil {
		return data.VoidValue(), err
	}
	for _, tok := range toks {
		if err := b.Append(tok.value(env)); err != nil {
			return data.VoidValue(), err
		}
	}
	return b.Invoke()
}

// token is one argument lexed out of a legacy argument line.
type token struct {
	text   string
	quoted bool
}

// splitArgLine splits line on spaces and tabs outside double quotes. A
// quote opening mid-token ends the bare token before it; an unterminated
// quote fails the whole line.
func splitArgLine(line string) ([]token, error) {
	var toks []token
	var cur strings.Builder
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			if inQuote {
				toks = append(toks, token{text: cur.String(), quoted: true})
				cur.Reset()
				inQuote = false
				continue
			}
			if cur.Len() > 0 {
				toks = append(toks, token{text: cur.String()})
				cur.Reset()
			}
			inQuote = true
		case unicode.IsSpace(r) && !inQuote:
			if cur.Len() > 0 {
				toks = append(toks, token{text: cur.String()})
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, errors.BadToken("unterminated double quote")
	}
	if cur.Len() > 0 {
		toks = append(toks, token{text: cur.String()})
	}
	return toks, nil
}

// value converts the token by its lexical shape.
func (t token) value(env *Environment) data.Value {
	if t.quoted {
		return env.strVal(t.text)
	}
	if looksNumeric(t.text) {
		if n, err := strconv.ParseInt(t.text, 10, 64); err == nil {
			return env.intVal(n)
		}
		if x, err := strconv.ParseFloat(t.text, 64); err == nil {
			return env.floatVal(x)
		}
	}
	return env.symVal(t.text)
}

// looksNumeric gates the numeric parse so symbol-shaped text like "Inf"
// or "-" never lexes as a number.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c != '+' && c != '-' && c != '.' && (c < '0' || c > '9') {
		return false
	}
	return strings.ContainsAny(s, "0123456789")
}
