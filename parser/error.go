package parser

import (
	"fmt"
	"strings"

	"github.com/freeeve/machparse/token"
)

// FrameKind classifies why a single ErrorFrame was pushed onto a
// ParseError's stack.
type FrameKind int

const (
	// FrameExpectedToken records a failure to find a specific expected token.
	FrameExpectedToken FrameKind = iota
	// FrameExpectedLabel records a named sub-parser that was active when a
	// failure occurred (pushed by Context/pushContext).
	FrameExpectedLabel
	// FrameCombinatorFailure records a failure where no alternative in an
	// ordered choice matched.
	FrameCombinatorFailure
)

func (k FrameKind) String() string {
	switch k {
	case FrameExpectedToken:
		return "expected-token"
	case FrameExpectedLabel:
		return "expected-context-label"
	case FrameCombinatorFailure:
		return "combinator-failure"
	default:
		return "unknown"
	}
}

// ErrorFrame is one entry in a ParseError's stack: the input remaining at
// the point of failure, what kind of failure it was, and a human label.
type ErrorFrame struct {
	Remaining string
	Kind      FrameKind
	Label     string
}

// ParseError represents a parse error with position. Frames, when present,
// give a furthest-consumed-wins diagnostic stack in push order (outermost
// active context first, the specific token/combinator failure last); Pos
// and Message alone remain a valid, self-contained error for callers that
// don't need the stack.
type ParseError struct {
	Pos     token.Pos
	Message string
	Frames  []ErrorFrame
}

func (e ParseError) Error() string {
	if len(e.Frames) == 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	var b strings.Builder
	for i, f := range e.Frames {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Kind.String())
		b.WriteString(": ")
		b.WriteString(f.Label)
		b.WriteString(" at: ")
		b.WriteString(truncateRunes(f.Remaining, 40))
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n])
}

// furthest returns the length of the remaining text at e's deepest frame,
// i.e. the frame pushed last. An error with no frames is treated as having
// consumed nothing (furthest possible remaining).
func (e *ParseError) furthest() (int, bool) {
	if e == nil || len(e.Frames) == 0 {
		return 0, false
	}
	return len(e.Frames[len(e.Frames)-1].Remaining), true
}

// Or implements ordered choice with furthest-consumed-wins: of the receiver
// and other, it returns whichever one's deepest frame consumed more input
// (shorter Remaining), keeping the receiver on a tie. A nil argument loses
// to a non-nil one; an error with no frames loses to one that has them.
func (e *ParseError) Or(other *ParseError) *ParseError {
	if e == nil {
		return other
	}
	if other == nil {
		return e
	}
	eLen, eHas := e.furthest()
	oLen, oHas := other.furthest()
	switch {
	case eHas && !oHas:
		return e
	case oHas && !eHas:
		return other
	case eLen <= oLen:
		return e
	default:
		return other
	}
}

// pushContext marks label as the currently active named sub-parser; every
// errorf call made before the matching popContext records a
// FrameExpectedLabel frame for it.
func (p *Parser) pushContext(label string) {
	p.contextStack = append(p.contextStack, label)
}

// popContext pops the most recently pushed context label.
func (p *Parser) popContext() {
	if len(p.contextStack) > 0 {
		p.contextStack = p.contextStack[:len(p.contextStack)-1]
	}
}

// remainingFrom returns the source text from the current token onward, for
// use as an ErrorFrame's Remaining field.
func (p *Parser) remainingFrom(pos token.Pos) string {
	src := p.lexer.Source()
	if pos.Offset < 0 || pos.Offset > len(src) {
		return ""
	}
	return src[pos.Offset:]
}

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	remaining := p.remainingFrom(p.cur.Pos)

	frames := make([]ErrorFrame, 0, len(p.contextStack)+1)
	for _, label := range p.contextStack {
		frames = append(frames, ErrorFrame{
			Remaining: remaining,
			Kind:      FrameExpectedLabel,
			Label:     label,
		})
	}
	frames = append(frames, ErrorFrame{
		Remaining: remaining,
		Kind:      FrameExpectedToken,
		Label:     msg,
	})

	p.errors = append(p.errors, ParseError{
		Pos:     p.cur.Pos,
		Message: msg,
		Frames:  frames,
	})
}
