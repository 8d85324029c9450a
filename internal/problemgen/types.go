package problemgen

// Domain identifies a practice category.
type Domain string

const (
	DomainTables    Domain = "tables"
	DomainPractice  Domain = "practice"
	DomainPowers    Domain = "powers"
	DomainFractions Domain = "fractions"
	DomainAlphabet  Domain = "alphabet"
)

// AllDomains lists the domains in menu order.
var AllDomains = []Domain{
	DomainTables,
	DomainPractice,
	DomainPowers,
	DomainFractions,
	DomainAlphabet,
}

// DisplayName returns the human-readable domain name.
func (d Domain) DisplayName() string {
	switch d {
	case DomainTables:
		return "Multiplication Tables"
	case DomainPractice:
		return "Multi-digit Practice"
	case DomainPowers:
		return "Powers & Roots"
	case DomainFractions:
		return "Fractions & Percent"
	case DomainAlphabet:
		return "Alphabet Positions"
	default:
		return string(d)
	}
}

// ParseDomain resolves a domain name as typed on the command line.
func ParseDomain(s string) (Domain, bool) {
	for _, d := range AllDomains {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// AnswerKind selects the comparison rule applied to a learner's answer.
type AnswerKind string

const (
	// KindNumericExact compares the parsed input with Answer for equality.
	KindNumericExact AnswerKind = "numeric-exact"

	// KindNumericTolerant accepts inputs within Tolerance of Unrounded.
	KindNumericTolerant AnswerKind = "numeric-tolerant"

	// KindStringExact compares text case-insensitively.
	KindStringExact AnswerKind = "string-exact"
)

// DefaultTolerance is the absolute error accepted for tolerant answers.
const DefaultTolerance = 0.01

// Question is a single generated drill item. Questions are values; the
// session re-serves them verbatim from the retry pool.
type Question struct {
	// Domain is the practice category that produced the question.
	Domain Domain

	// Prompt is the display text, e.g. "7 × 3", "√144" or "33 1/3 %".
	Prompt string

	// Answer is the canonical answer as display text: "21", "37.50", "3/8", "C".
	Answer string

	// Kind is the comparison rule for this question.
	Kind AnswerKind

	// Unrounded is the exact reference value for KindNumericTolerant.
	Unrounded float64

	// Tolerance is the accepted absolute error for KindNumericTolerant.
	Tolerance float64

	// Hint is shown alongside the prompt. Optional.
	Hint string

	// Explanation is a one-line worked solution shown after a miss.
	Explanation string

	// PercentInput marks questions whose answer is typed as a percentage,
	// so the input can show a "%" adornment.
	PercentInput bool
}
