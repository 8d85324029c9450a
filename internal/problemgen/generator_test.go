package problemgen

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/abhisek/mathdrill/internal/random"
)

func TestGenerateTables_AnswerMatchesOperands(t *testing.T) {
	cfg := TablesConfig{Selected: []int{3, 7, 12}}
	src := random.NewSeeded(1)

	for range 500 {
		q, err := GenerateTables(cfg, src)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		parts := strings.Split(q.Prompt, " × ")
		if len(parts) != 2 {
			t.Fatalf("unexpected prompt %q", q.Prompt)
		}
		table, _ := strconv.Atoi(parts[0])
		mult, _ := strconv.Atoi(parts[1])
		if table != 3 && table != 7 && table != 12 {
			t.Errorf("table %d not in selection", table)
		}
		if mult < 1 || mult > 10 {
			t.Errorf("multiplier %d outside 1..10", mult)
		}
		if q.Answer != strconv.Itoa(table*mult) {
			t.Errorf("%s: answer %s, want %d", q.Prompt, q.Answer, table*mult)
		}
		if q.Kind != KindNumericExact {
			t.Errorf("kind = %s, want numeric-exact", q.Kind)
		}
	}
}

func TestGenerateTables_Scenario(t *testing.T) {
	// Draws: table index 0, multiplier slot 2 of 10 -> k = 3.
	src := random.NewSequence(0.0, 0.25)
	q, err := GenerateTables(TablesConfig{Selected: []int{7}}, src)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Prompt != "7 × 3" {
		t.Errorf("prompt = %q, want %q", q.Prompt, "7 × 3")
	}
	if !Evaluate(q, "21") {
		t.Error("21 should be correct for 7 × 3")
	}
}

func TestGeneratePractice_DigitCounts(t *testing.T) {
	src := random.NewSeeded(2)
	for d1 := 2; d1 <= 5; d1++ {
		for d2 := 2; d2 <= 5; d2++ {
			cfg := PracticeConfig{Digits1: []int{d1}, Digits2: []int{d2}}
			for range 50 {
				q, err := GeneratePractice(cfg, src)
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
				parts := strings.Split(q.Prompt, " × ")
				if len(parts) != 2 {
					t.Fatalf("unexpected prompt %q", q.Prompt)
				}
				if len(parts[0]) != d1 || len(parts[1]) != d2 {
					t.Errorf("%q: want %d and %d digits", q.Prompt, d1, d2)
				}
				if parts[0][0] == '0' || parts[1][0] == '0' {
					t.Errorf("%q has a leading zero", q.Prompt)
				}
				a, _ := strconv.ParseInt(parts[0], 10, 64)
				b, _ := strconv.ParseInt(parts[1], 10, 64)
				if q.Answer != strconv.FormatInt(a*b, 10) {
					t.Errorf("%s: answer %s", q.Prompt, q.Answer)
				}
			}
		}
	}
}

func TestGeneratePractice_Extremes(t *testing.T) {
	cfg := PracticeConfig{Digits1: []int{3}, Digits2: []int{1}}

	q, _ := GeneratePractice(cfg, random.NewSequence(0, 0, 0, 0))
	if q.Prompt != "100 × 1" {
		t.Errorf("low extreme = %q, want 100 × 1", q.Prompt)
	}

	q, _ = GeneratePractice(cfg, random.NewSequence(0, 0, 0.9999999, 0.9999999))
	if q.Prompt != "999 × 9" {
		t.Errorf("high extreme = %q, want 999 × 9", q.Prompt)
	}
}

func TestGeneratePowers_CubeCap(t *testing.T) {
	src := random.NewSeeded(3)
	cfg := PowersConfig{Selected: []PowerOp{OpCube, OpCubeRoot}, RangeMax: 30}

	for range 500 {
		q, err := GeneratePowers(cfg, src)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		var n int
		if strings.HasPrefix(q.Prompt, "∛") {
			n, _ = strconv.Atoi(q.Answer)
		} else {
			n, _ = strconv.Atoi(strings.TrimSuffix(q.Prompt, "³"))
		}
		if n < 2 || n > CubeRangeCap {
			t.Errorf("%s: n = %d outside 2..%d", q.Prompt, n, CubeRangeCap)
		}
	}
}

func TestGeneratePowers_SquaresUseFullRange(t *testing.T) {
	cfg := PowersConfig{Selected: []PowerOp{OpSquare}, RangeMax: 30}
	q, err := GeneratePowers(cfg, random.NewSequence(0, 0.9999999))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Prompt != "30²" || q.Answer != "900" {
		t.Errorf("got %q = %q, want 30² = 900", q.Prompt, q.Answer)
	}
}

func TestGeneratePowers_Prompts(t *testing.T) {
	tests := []struct {
		op         PowerOp
		wantPrompt string
		wantAnswer string
	}{
		{OpSquare, "12²", "144"},
		{OpCube, "12³", "1728"},
		{OpSquareRoot, "√144", "12"},
		{OpCubeRoot, "∛1,728", "12"},
	}

	for _, tc := range tests {
		cfg := PowersConfig{Selected: []PowerOp{tc.op}, RangeMax: 20}
		// n = 2 + floor(0.55 * 19) = 12
		q, err := GeneratePowers(cfg, random.NewSequence(0, 0.55))
		if err != nil {
			t.Fatalf("%s: %v", tc.op, err)
		}
		if q.Prompt != tc.wantPrompt || q.Answer != tc.wantAnswer {
			t.Errorf("%s: got %q = %q, want %q = %q", tc.op, q.Prompt, q.Answer, tc.wantPrompt, tc.wantAnswer)
		}
		if verr := (&MathCheckValidator{}).Validate(q); verr != nil {
			t.Errorf("%s: math-check rejected: %v", tc.op, verr)
		}
	}
}

func TestGeneratePowers_CollapsedRange(t *testing.T) {
	for _, rangeMax := range []int{0, 1} {
		cfg := PowersConfig{Selected: []PowerOp{OpSquare}, RangeMax: rangeMax}
		_, err := GeneratePowers(cfg, random.NewSequence(0))
		if !errors.Is(err, ErrGenerationFailure) {
			t.Errorf("rangeMax %d: err = %v, want ErrGenerationFailure", rangeMax, err)
		}
	}
}

func TestGenerateFractions_RoundTrip(t *testing.T) {
	src := random.NewSeeded(4)
	cfg := FractionsConfig{Selected: []FractionFormat{FormatFraction, FormatDecimal}}

	for range 1000 {
		q, err := GenerateFractions(cfg, src)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !Evaluate(q, q.Answer) {
			t.Errorf("%s: own answer %q rejected", q.Prompt, q.Answer)
		}
	}
}

func TestGenerateFractions_Formats(t *testing.T) {
	// 3/8 is at index 13 of NiceFractions.
	idx := 13
	if NiceFractions[idx] != (Fraction{3, 8}) {
		t.Fatalf("fixture drift: NiceFractions[%d] = %v", idx, NiceFractions[idx])
	}
	draw := (float64(idx) + 0.5) / float64(len(NiceFractions))

	q, err := GenerateFractions(FractionsConfig{Selected: []FractionFormat{FormatFraction}}, random.NewSequence(0, draw))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Prompt != "37 1/2 %" || q.Answer != "3/8" || q.Kind != KindStringExact {
		t.Errorf("fraction format: got %+v", q)
	}
	if q.Hint != hintFraction {
		t.Errorf("hint = %q", q.Hint)
	}

	q, err = GenerateFractions(FractionsConfig{Selected: []FractionFormat{FormatDecimal}}, random.NewSequence(0, draw))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Prompt != "3/8" || q.Answer != "37.50" || q.Kind != KindNumericTolerant {
		t.Errorf("decimal format: got %+v", q)
	}
	if q.Unrounded != 37.5 || q.Tolerance != DefaultTolerance || !q.PercentInput {
		t.Errorf("decimal format: unrounded %v tolerance %v percent %v", q.Unrounded, q.Tolerance, q.PercentInput)
	}
}

func TestGenerateAlphabet_LetterToPosition(t *testing.T) {
	src := random.NewSeeded(5)
	cfg := AlphabetConfig{Start: "A", End: "Z", Mode: ModeLetterToPosition}

	for range 500 {
		q, err := GenerateAlphabet(cfg, src)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		pos, err := strconv.Atoi(q.Answer)
		if err != nil {
			t.Fatalf("answer %q not numeric", q.Answer)
		}
		if pos < 1 || pos > 26 {
			t.Errorf("position %d outside 1..26", pos)
		}
		if len(q.Prompt) != 1 || int(q.Prompt[0])-64 != pos {
			t.Errorf("%q -> %d, want charCode-64", q.Prompt, pos)
		}
	}
}

func TestGenerateAlphabet_Modes(t *testing.T) {
	// Range c..e, reversed and lower case; middle draw picks D.
	base := AlphabetConfig{Start: "e", End: "c"}

	tests := []struct {
		mode       AlphabetMode
		wantPrompt string
		wantAnswer string
		wantKind   AnswerKind
	}{
		{"", "D", "4", KindNumericExact},
		{ModeLetterToPosition, "D", "4", KindNumericExact},
		{ModePositionToLetter, "4", "D", KindStringExact},
		{ModeReverseLetter, "D", "W", KindStringExact},
	}

	for _, tc := range tests {
		cfg := base
		cfg.Mode = tc.mode
		q, err := GenerateAlphabet(cfg, random.NewSequence(0.5))
		if err != nil {
			t.Fatalf("%s: %v", tc.mode, err)
		}
		if q.Prompt != tc.wantPrompt || q.Answer != tc.wantAnswer || q.Kind != tc.wantKind {
			t.Errorf("%q: got %q/%q/%s, want %q/%q/%s", tc.mode,
				q.Prompt, q.Answer, q.Kind, tc.wantPrompt, tc.wantAnswer, tc.wantKind)
		}
		if !Evaluate(q, strings.ToLower(q.Answer)) {
			t.Errorf("%q: lower-case answer rejected", tc.mode)
		}
	}
}

func TestGenerate_EmptySelectionsFail(t *testing.T) {
	src := random.NewSequence(0.3)
	cases := map[string]func() error{
		"tables":    func() error { _, err := GenerateTables(TablesConfig{}, src); return err },
		"practice":  func() error { _, err := GeneratePractice(PracticeConfig{Digits1: []int{2}}, src); return err },
		"powers":    func() error { _, err := GeneratePowers(PowersConfig{RangeMax: 10}, src); return err },
		"fractions": func() error { _, err := GenerateFractions(FractionsConfig{}, src); return err },
		"alphabet":  func() error { _, err := GenerateAlphabet(AlphabetConfig{Start: "A"}, src); return err },
	}
	for name, gen := range cases {
		if err := gen(); !errors.Is(err, ErrGenerationFailure) {
			t.Errorf("%s: err = %v, want ErrGenerationFailure", name, err)
		}
	}
}

func TestNew_ValidatesConfig(t *testing.T) {
	_, err := New(TablesConfig{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "selected" {
		t.Errorf("expected ConfigError on field selected, got %v", err)
	}

	if _, err := New(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil config: err = %v", err)
	}
}

func TestNew_AllDomainDefaultsGenerate(t *testing.T) {
	src := random.NewSeeded(6)
	for _, d := range AllDomains {
		gen, err := New(DefaultConfig(d))
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		if gen.Config().Domain() != d {
			t.Errorf("%s: generator config domain %s", d, gen.Config().Domain())
		}
		for range 200 {
			q, err := gen.Generate(src)
			if err != nil {
				t.Fatalf("%s: %v", d, err)
			}
			if q.Domain != d {
				t.Errorf("question domain %s, want %s", q.Domain, d)
			}
			if !Evaluate(q, q.Answer) {
				t.Errorf("%s: %q rejects its own answer %q", d, q.Prompt, q.Answer)
			}
		}
	}
}

type rejectAll struct{}

func (rejectAll) Name() string { return "reject-all" }
func (rejectAll) Validate(*Question) *ValidationError {
	return &ValidationError{Validator: "reject-all", Message: "no"}
}

func TestGenerate_ValidatorFailureIsGenerationFailure(t *testing.T) {
	gen, err := NewWithOptions(DefaultConfig(DomainTables), Options{Validators: []Validator{rejectAll{}}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err = gen.Generate(random.NewSequence(0.1))
	if !errors.Is(err, ErrGenerationFailure) {
		t.Fatalf("err = %v, want ErrGenerationFailure", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Validator != "reject-all" {
		t.Errorf("expected wrapped ValidationError, got %v", err)
	}
}
