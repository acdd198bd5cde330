package axis

import (
	"encoding/csv"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Range token patterns. `a-b(s)` is an arithmetic range with an optionally
// signed step, `a-b[n]` is n evenly spaced samples from a to b inclusive.
var (
	reRange = regexp.MustCompile(
		`^\s*([+-]?\s*\d+)\s*-\s*([+-]?\s*\d+)(?:\s*\(([+-]?\d+)\s*\))?\s*$`)
	reRangeFloat = regexp.MustCompile(
		`^\s*([+-]?\s*\d+(?:\.\d*)?)\s*-\s*([+-]?\s*\d+(?:\.\d*)?)(?:\s*\(([+-]?\d+(?:\.\d*)?)\s*\))?\s*$`)
	reRangeCount = regexp.MustCompile(
		`^\s*([+-]?\s*\d+)\s*-\s*([+-]?\s*\d+)(?:\s*\[(\d+)\s*\])?\s*$`)
	reRangeCountFloat = regexp.MustCompile(
		`^\s*([+-]?\s*\d+(?:\.\d*)?)\s*-\s*([+-]?\s*\d+(?:\.\d*)?)(?:\s*\[(\d+(?:\.\d*)?)\s*\])?\s*$`)
)

// SplitCSV splits a raw value specification on commas, quote-aware, with
// whitespace trimmed from every token. Quoted tokens may contain commas.
// This is a pure function with no side effects.
func SplitCSV(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	r := csv.NewReader(strings.NewReader(s))
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
	}

	var tokens []string
	for _, record := range records {
		for _, field := range record {
			tokens = append(tokens, strings.TrimSpace(field))
		}
	}
	return tokens, nil
}

// Parse turns a raw specification into the ordered concrete value list for
// an option.
//
// In selection mode with an enumerated option, the selected list is taken
// as-is. Otherwise the raw text is CSV-split and each token is expanded:
// arithmetic range first, then count range, then literal scalar. The
// permutation kind replaces the parsed list with every ordering of its
// tokens. An empty specification yields a single nil placeholder so the
// cartesian product stays well-defined; the Nothing axis always yields
// exactly one placeholder.
//
// If the option declares a validator it runs once on the full expanded
// list; a failure aborts before any rendering (fail fast, not per cell).
func Parse(opt *Option, raw string, selected []string, selection bool) ([]Value, error) {
	if opt.Label == LabelNothing {
		return []Value{nil}, nil
	}

	var tokens []string
	var err error
	if selection && opt.Choices != nil {
		tokens = selected
	} else {
		tokens, err = SplitCSV(raw)
		if err != nil {
			return nil, fmt.Errorf("%s axis: %w", opt.Label, err)
		}
	}

	var vals []Value
	switch opt.Kind {
	case KindInt:
		vals, err = expandInt(tokens)
	case KindFloat:
		vals, err = expandFloat(tokens)
	case KindString:
		vals = expandString(tokens)
	case KindPermutation:
		vals = expandPermutations(tokens)
	default:
		err = fmt.Errorf("%w: kind %v", ErrBadValue, opt.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s axis: %w", opt.Label, err)
	}

	if len(vals) == 0 {
		vals = []Value{nil}
	}

	if opt.Confirm != nil {
		if err := opt.Confirm(vals); err != nil {
			return nil, fmt.Errorf("%s axis: %w", opt.Label, err)
		}
	}
	return vals, nil
}

// expandInt expands integer tokens. Range ends are inclusive:
// "1-5(2)" yields [1 3 5], "0-10[5]" yields linspace samples truncated
// toward zero.
func expandInt(tokens []string) ([]Value, error) {
	var vals []Value
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		if m := reRange.FindStringSubmatch(tok); m != nil {
			start, err := atoiLoose(m[1])
			if err != nil {
				return nil, err
			}
			end, err := atoiLoose(m[2])
			if err != nil {
				return nil, err
			}
			step := 1
			if m[3] != "" {
				step, err = atoiLoose(m[3])
				if err != nil {
					return nil, err
				}
			}
			if step == 0 {
				return nil, fmt.Errorf("%w: %q", ErrZeroStep, tok)
			}
			for v := start; (step > 0 && v < end+1) || (step < 0 && v > end+1); v += step {
				vals = append(vals, v)
			}
		} else if m := reRangeCount.FindStringSubmatch(tok); m != nil {
			start, err := atoiLoose(m[1])
			if err != nil {
				return nil, err
			}
			end, err := atoiLoose(m[2])
			if err != nil {
				return nil, err
			}
			num := 1
			if m[3] != "" {
				num, err = strconv.Atoi(m[3])
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrBadValue, tok)
				}
			}
			for _, f := range linspace(float64(start), float64(end), num) {
				vals = append(vals, int(f))
			}
		} else {
			n, err := atoiLoose(tok)
			if err != nil {
				return nil, err
			}
			vals = append(vals, n)
		}
	}
	return vals, nil
}

// expandFloat expands float tokens. "1-2(0.5)" yields [1 1.5 2] (end bound
// inclusive within the generated range per the step), "0-10[5]" yields 5
// evenly spaced samples.
func expandFloat(tokens []string) ([]Value, error) {
	var vals []Value
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		if m := reRangeFloat.FindStringSubmatch(tok); m != nil {
			start, err := atofLoose(m[1])
			if err != nil {
				return nil, err
			}
			end, err := atofLoose(m[2])
			if err != nil {
				return nil, err
			}
			step := 1.0
			if m[3] != "" {
				step, err = atofLoose(m[3])
				if err != nil {
					return nil, err
				}
			}
			if step == 0 {
				return nil, fmt.Errorf("%w: %q", ErrZeroStep, tok)
			}
			for _, f := range arange(start, end+step, step) {
				vals = append(vals, f)
			}
		} else if m := reRangeCountFloat.FindStringSubmatch(tok); m != nil {
			start, err := atofLoose(m[1])
			if err != nil {
				return nil, err
			}
			end, err := atofLoose(m[2])
			if err != nil {
				return nil, err
			}
			num := 1
			if m[3] != "" {
				nf, err := atofLoose(m[3])
				if err != nil {
					return nil, err
				}
				num = int(nf)
			}
			for _, f := range linspace(start, end, num) {
				vals = append(vals, f)
			}
		} else {
			f, err := atofLoose(tok)
			if err != nil {
				return nil, err
			}
			vals = append(vals, f)
		}
	}
	return vals, nil
}

// expandString keeps tokens as literals; empty tokens are preserved since a
// string axis may legitimately sweep over the empty value.
func expandString(tokens []string) []Value {
	vals := make([]Value, 0, len(tokens))
	for _, tok := range tokens {
		vals = append(vals, tok)
	}
	return vals
}

// expandPermutations replaces the token list with every ordering of it.
// The result has n! entries; order matters, no repeats.
func expandPermutations(tokens []string) []Value {
	if len(tokens) == 0 {
		return nil
	}
	var vals []Value
	permute(tokens, nil, &vals)
	return vals
}

// permute emits permutations with the first element varying slowest,
// matching the conventional lexicographic-by-index ordering.
func permute(rest []string, prefix []string, out *[]Value) {
	if len(rest) == 0 {
		tuple := make([]string, len(prefix))
		copy(tuple, prefix)
		*out = append(*out, tuple)
		return
	}
	for i := range rest {
		next := make([]string, 0, len(rest)-1)
		next = append(next, rest[:i]...)
		next = append(next, rest[i+1:]...)
		permute(next, append(prefix, rest[i]), out)
	}
}

// linspace returns num evenly spaced samples from start to end inclusive.
func linspace(start, end float64, num int) []float64 {
	if num <= 1 {
		return []float64{start}
	}
	dst := make([]float64, num)
	return floats.Span(dst, start, end)
}

// arange returns start, start+step, ... strictly below stop, with a small
// relative epsilon so an endpoint that lands on stop-step is not dropped to
// floating point error.
func arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop-start)/step - 1e-9))
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// atoiLoose parses an int token, tolerating interior whitespace after a
// sign ("+ 5").
func atoiLoose(s string) (int, error) {
	n, err := strconv.Atoi(stripSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, s)
	}
	return n, nil
}

// atofLoose parses a float token, tolerating interior whitespace after a
// sign.
func atofLoose(s string) (float64, error) {
	f, err := strconv.ParseFloat(stripSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, s)
	}
	return f, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
