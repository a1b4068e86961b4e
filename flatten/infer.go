package flatten

import (
	"math"
	"strconv"
	"strings"

	"github.com/ehsanranjbar/flatdoc/value"
)

// InferType is a Transform that reinterprets string scalars as a 64-bit
// integer, a float or a boolean, in that order, and keeps the string when
// none of them parse. Floats that would not be finite are kept as strings,
// and so are the Go only forms with digit separators or hex mantissas.
func InferType(_ string, v value.Value) (value.Value, error) {
	s, ok := v.AsString()
	if !ok {
		return v, nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.Int(i), nil
	}
	if isDecimalFloat(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return value.Float(f), nil
		}
	}
	switch s {
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}
	return v, nil
}

func isDecimalFloat(s string) bool {
	if strings.Contains(s, "_") {
		return false
	}
	s = strings.TrimLeft(s, "+-")
	return !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X")
}
