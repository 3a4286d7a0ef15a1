// Package query builds URL query strings for Link GET requests.
package query

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// Encode returns "" for empty inputs, otherwise "?k1=v1&k2=v2" with keys in
// sorted order and every key and value escaped by EscapeComponent.
func Encode(inputs map[string]any) string {
	if len(inputs) == 0 {
		return ""
	}

	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, EscapeComponent(k)+"="+EscapeComponent(stringify(inputs[k])))
	}
	return "?" + strings.Join(pairs, "&")
}

// EscapeComponent percent-encodes s leaving only A-Z a-z 0-9 and -_.!~*'()
// unescaped. Spaces become %20, not '+'.
func EscapeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// stringify coerces v the way JavaScript's String() would: slices join
// their elements with commas, objects become "[object Object]", and floats
// switch to exponent form outside [1e-6, 1e21).
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case float32:
		return formatNumber(float64(t))
	case json.Number:
		return t.String()
	case []any:
		parts := make([]string, len(t))
		for i, elem := range t {
			if elem != nil {
				parts[i] = stringify(elem)
			}
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(t, ",")
	case map[string]any:
		return "[object Object]"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Go pads the exponent to two digits ("1e-07"); JS does not ("1e-7").
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
