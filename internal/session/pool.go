package session

import (
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/random"
)

// WrongAnswerPool holds missed and timed-out questions for the current
// session. Duplicates are kept: a question missed twice is twice as likely
// to be drawn.
type WrongAnswerPool struct {
	items []problemgen.Question
}

// Add appends a copy of q.
func (p *WrongAnswerPool) Add(q problemgen.Question) {
	p.items = append(p.items, q)
}

// RemovePrompt removes every entry whose prompt equals prompt and returns
// how many were removed.
func (p *WrongAnswerPool) RemovePrompt(prompt string) int {
	kept := p.items[:0]
	for _, q := range p.items {
		if q.Prompt != prompt {
			kept = append(kept, q)
		}
	}
	removed := len(p.items) - len(kept)
	clear(p.items[len(kept):])
	p.items = kept
	return removed
}

// Len returns the number of entries, duplicates included.
func (p *WrongAnswerPool) Len() int {
	return len(p.items)
}

// Count returns how many entries carry prompt.
func (p *WrongAnswerPool) Count(prompt string) int {
	n := 0
	for _, q := range p.items {
		if q.Prompt == prompt {
			n++
		}
	}
	return n
}

// Draw returns a uniformly chosen entry. The pool must be non-empty.
func (p *WrongAnswerPool) Draw(src random.Source) problemgen.Question {
	return random.Pick(src, p.items)
}

// Items returns a copy of the entries in insertion order.
func (p *WrongAnswerPool) Items() []problemgen.Question {
	return append([]problemgen.Question(nil), p.items...)
}

// Reset empties the pool.
func (p *WrongAnswerPool) Reset() {
	p.items = nil
}
