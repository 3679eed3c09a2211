package slicechain

import (
	"regexp"
	"strconv"
)

var (
	indexRe = regexp.MustCompile(`^[+-]?\d+$`)
	sliceRe = regexp.MustCompile(
		`^(?P<start>[+-]?\d+)?:(?P<stop>[+-]?\d+)?(?::(?P<step>[+-]?\d+)?)?$`)
)

// Parse converts a slice expression into an Op. The grammar is
// [start][:stop[:step]] with each field an optional signed integer. A
// bare integer denotes a scalar index rather than a slice; an empty
// string denotes the full slice. An explicit zero step fails here with
// ErrZeroStep; any other mismatch fails with *ParseError.
func Parse(text string) (Op, error) {
	if text == "" {
		return SliceOp(Full()), nil
	}
	if indexRe.MatchString(text) {
		i, err := strconv.Atoi(text)
		if err != nil {
			return Op{}, &ParseError{Input: text}
		}
		return IndexOp(i), nil
	}
	m := sliceRe.FindStringSubmatch(text)
	if m == nil {
		return Op{}, &ParseError{Input: text}
	}
	var s Slice
	fields := []struct {
		name string
		dst  **int
	}{
		{"start", &s.Start},
		{"stop", &s.Stop},
		{"step", &s.Step},
	}
	for _, f := range fields {
		g := m[sliceRe.SubexpIndex(f.name)]
		if g == "" {
			continue
		}
		v, err := strconv.Atoi(g)
		if err != nil {
			return Op{}, &ParseError{Input: text}
		}
		*f.dst = &v
	}
	if err := s.validate(); err != nil {
		return Op{}, err
	}
	return SliceOp(s), nil
}

// MustParse is Parse for expressions known to be valid. It panics on
// error and is intended for literals in tests and setup code.
func MustParse(text string) Op {
	op, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return op
}
