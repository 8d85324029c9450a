package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathdrill/internal/random"
)

// MirrorSum is the sum of a letter's position and its mirror's (A↔Z).
const MirrorSum = 27

// LetterPosition returns the 1-based alphabet position of an uppercase letter.
func LetterPosition(letter byte) int {
	return int(letter-'A') + 1
}

// LetterAt returns the uppercase letter at a 1-based position.
func LetterAt(pos int) byte {
	return byte('A' + pos - 1)
}

// GenerateAlphabet draws a letter between Start and End (in either order).
func GenerateAlphabet(cfg AlphabetConfig, src random.Source) (*Question, error) {
	start, ok1 := normalizeLetter(cfg.Start)
	end, ok2 := normalizeLetter(cfg.End)
	if !ok1 || !ok2 {
		return nil, generationFailure(DomainAlphabet, "start %q and end %q must be letters", cfg.Start, cfg.End)
	}
	lo, hi := start, end
	if lo > hi {
		lo, hi = hi, lo
	}

	letter := byte(random.Between(src, int(lo), int(hi)))
	pos := LetterPosition(letter)
	ch := string(letter)

	q := &Question{Domain: DomainAlphabet}
	switch cfg.Mode {
	case "", ModeLetterToPosition:
		q.Prompt = ch
		q.Answer = strconv.Itoa(pos)
		q.Kind = KindNumericExact
		q.Hint = "Position in the alphabet"
		q.Explanation = fmt.Sprintf("%s is letter %d of the alphabet", ch, pos)
	case ModePositionToLetter:
		q.Prompt = strconv.Itoa(pos)
		q.Answer = ch
		q.Kind = KindStringExact
		q.Hint = "Letter at this position"
		q.Explanation = fmt.Sprintf("Letter %d of the alphabet is %s", pos, ch)
	case ModeReverseLetter:
		mirror := MirrorSum - pos
		m := string(LetterAt(mirror))
		q.Prompt = ch
		q.Answer = m
		q.Kind = KindStringExact
		q.Hint = "Mirror letter (A ↔ Z)"
		q.Explanation = fmt.Sprintf("%s is letter %d, its mirror is %d − %d = %d: %s", ch, pos, MirrorSum, pos, mirror, m)
	default:
		return nil, generationFailure(DomainAlphabet, "unknown mode %q", cfg.Mode)
	}
	return q, nil
}
