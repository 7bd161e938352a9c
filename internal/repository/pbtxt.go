package repository

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// pbtxt is a scanner for the protobuf text-format subset used by
// config.pbtxt: scalar fields, nested messages, repeated blocks and scalar
// lists. It produces a generic message tree the config loader extracts
// typed fields from.

type pbtxtMessage struct {
	fields map[string][]any // scalar values or *pbtxtMessage, in order
}

func newPbtxtMessage() *pbtxtMessage {
	return &pbtxtMessage{fields: make(map[string][]any)}
}

func (m *pbtxtMessage) add(key string, v any) {
	m.fields[key] = append(m.fields[key], v)
}

func (m *pbtxtMessage) scalar(key string) (any, bool) {
	vs := m.fields[key]
	if len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

func (m *pbtxtMessage) str(key string) string {
	v, _ := m.scalar(key)
	s, _ := v.(string)
	return s
}

func (m *pbtxtMessage) messages(key string) []*pbtxtMessage {
	var out []*pbtxtMessage
	for _, v := range m.fields[key] {
		if msg, ok := v.(*pbtxtMessage); ok {
			out = append(out, msg)
		}
	}
	return out
}

func (m *pbtxtMessage) ints(key string) []int64 {
	var out []int64
	for _, v := range m.fields[key] {
		if n, ok := v.(int64); ok {
			out = append(out, n)
		}
	}
	return out
}

type pbtxtParser struct {
	src []rune
	pos int
}

func parsePbtxt(src string) (*pbtxtMessage, error) {
	p := &pbtxtParser{src: []rune(src)}
	msg, err := p.message(true)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (p *pbtxtParser) message(top bool) (*pbtxtMessage, error) {
	msg := newPbtxtMessage()
	for {
		p.skipSpace()
		if p.eof() {
			if top {
				return msg, nil
			}
			return nil, fmt.Errorf("unexpected end of input inside message")
		}
		if p.peek() == '}' {
			if top {
				return nil, fmt.Errorf("unexpected '}' at top level")
			}
			p.pos++
			return msg, nil
		}
		key, err := p.ident()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		switch {
		case !p.eof() && p.peek() == ':':
			p.pos++
			p.skipSpace()
			if !p.eof() && p.peek() == '[' {
				values, err := p.list()
				if err != nil {
					return nil, err
				}
				for _, v := range values {
					msg.add(key, v)
				}
			} else if !p.eof() && p.peek() == '{' {
				// "key: { ... }" is accepted like "key { ... }"
				p.pos++
				sub, err := p.message(false)
				if err != nil {
					return nil, err
				}
				msg.add(key, sub)
			} else {
				v, err := p.value()
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", key, err)
				}
				msg.add(key, v)
			}
		case !p.eof() && p.peek() == '{':
			p.pos++
			sub, err := p.message(false)
			if err != nil {
				return nil, err
			}
			msg.add(key, sub)
		case !p.eof() && p.peek() == '[':
			values, err := p.list()
			if err != nil {
				return nil, err
			}
			for _, v := range values {
				msg.add(key, v)
			}
		default:
			return nil, fmt.Errorf("field %s: expected ':', '{' or '['", key)
		}
	}
}

func (p *pbtxtParser) list() ([]any, error) {
	p.pos++ // consume '['
	var out []any
	for {
		p.skipSpace()
		if p.eof() {
			return nil, fmt.Errorf("unexpected end of input inside list")
		}
		if p.peek() == ']' {
			p.pos++
			return out, nil
		}
		if p.peek() == ',' {
			p.pos++
			continue
		}
		if p.peek() == '{' {
			p.pos++
			sub, err := p.message(false)
			if err != nil {
				return nil, err
			}
			out = append(out, sub)
			continue
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func (p *pbtxtParser) value() (any, error) {
	if p.eof() {
		return nil, fmt.Errorf("expected value")
	}
	if p.peek() == '"' || p.peek() == '\'' {
		return p.quoted()
	}
	start := p.pos
	for !p.eof() && !unicode.IsSpace(p.peek()) && !strings.ContainsRune("]},", p.peek()) {
		p.pos++
	}
	token := string(p.src[start:p.pos])
	switch token {
	case "":
		return nil, fmt.Errorf("empty value")
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, nil
	}
	// bare enum identifiers come through as strings
	return token, nil
}

func (p *pbtxtParser) quoted() (string, error) {
	quote := p.peek()
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.peek()
		p.pos++
		switch c {
		case quote:
			return b.String(), nil
		case '\\':
			if p.eof() {
				return "", fmt.Errorf("dangling escape in string")
			}
			esc := p.peek()
			p.pos++
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(c)
		}
	}
	return "", fmt.Errorf("unterminated string")
}

func (p *pbtxtParser) ident() (string, error) {
	start := p.pos
	for !p.eof() && (unicode.IsLetter(p.peek()) || unicode.IsDigit(p.peek()) || p.peek() == '_') {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("expected identifier at offset %d", p.pos)
	}
	return string(p.src[start:p.pos]), nil
}

func (p *pbtxtParser) skipSpace() {
	for !p.eof() {
		c := p.peek()
		if unicode.IsSpace(c) {
			p.pos++
			continue
		}
		if c == '#' {
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
			continue
		}
		return
	}
}

func (p *pbtxtParser) peek() rune { return p.src[p.pos] }
func (p *pbtxtParser) eof() bool  { return p.pos >= len(p.src) }
