package envsnap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultMacro is the invocation name written at the head of the artifact.
const DefaultMacro = "sysvars"

// ErrMalformed is returned by Parse for text that is not a snapshot artifact.
var ErrMalformed = errors.New("envsnap: malformed artifact")

// Encode writes the table as
//
//	macro! { "K1" => "V1", "K2" => "V2" }
//
// Names and values use Go quoted-string syntax, which escapes any byte
// sequence, valid UTF-8 or not.
func Encode(w io.Writer, macro string, t Table) error {
	if macro == "" {
		macro = DefaultMacro
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(macro)
	bw.WriteString("! { ")
	for i, v := range t.vars {
		if i > 0 {
			bw.WriteString(", ")
		}
		bw.WriteString(strconv.Quote(v.Name))
		bw.WriteString(" => ")
		bw.WriteString(strconv.Quote(v.Value))
	}
	bw.WriteString(" }")
	return bw.Flush()
}

// EncodeString is Encode into a string
func EncodeString(macro string, t Table) string {
	var sb strings.Builder
	_ = Encode(&sb, macro, t)
	return sb.String()
}

// Parse reads an artifact written by Encode and returns its macro name and
// table.
func Parse(r io.Reader) (string, Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", Table{}, fmt.Errorf("reading artifact: %w", err)
	}
	p := &parser{src: string(data)}
	return p.parse()
}

// ReadFile parses the artifact stored at path
func ReadFile(path string) (string, Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", Table{}, err
	}
	defer f.Close()
	return Parse(f)
}

type parser struct {
	src string
	pos int
}

func (p *parser) parse() (string, Table, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	macro := p.src[start:p.pos]
	if macro == "" {
		return "", Table{}, p.errorf("expected macro name")
	}
	if err := p.expect("!"); err != nil {
		return "", Table{}, err
	}
	if err := p.expect("{"); err != nil {
		return "", Table{}, err
	}

	var vars []Var
	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			break
		}
		if len(vars) > 0 {
			if err := p.expect(","); err != nil {
				return "", Table{}, err
			}
			p.skipSpace()
			// trailing comma
			if p.peek() == '}' {
				p.pos++
				break
			}
		}
		name, err := p.quoted()
		if err != nil {
			return "", Table{}, err
		}
		if err := p.expect("=>"); err != nil {
			return "", Table{}, err
		}
		value, err := p.quoted()
		if err != nil {
			return "", Table{}, err
		}
		vars = append(vars, Var{Name: name, Value: value})
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return "", Table{}, p.errorf("unexpected trailing text")
	}
	return macro, Table{vars: vars}, nil
}

func (p *parser) quoted() (string, error) {
	p.skipSpace()
	if p.peek() != '"' {
		return "", p.errorf("expected quoted string")
	}
	start := p.pos
	p.pos++
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case '"':
			p.pos++
			s, err := strconv.Unquote(p.src[start:p.pos])
			if err != nil {
				return "", fmt.Errorf("%w: bad string at offset %d: %v", ErrMalformed, start, err)
			}
			return s, nil
		}
		p.pos++
	}
	return "", p.errorf("unterminated string")
}

func (p *parser) expect(tok string) error {
	p.skipSpace()
	if !strings.HasPrefix(p.src[p.pos:], tok) {
		return p.errorf("expected %q", tok)
	}
	p.pos += len(tok)
	return nil
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrMalformed, fmt.Sprintf(format, args...), p.pos)
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
