package dumpy

import (
	"math"
	"strconv"
	"strings"
)

// newlineReplacer escapes every line-break sequence.
var newlineReplacer = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\n`)

func (d *Dumper) renderBool(b bool) string {
	out := "false"
	if b {
		out = "true"
	}
	if d.config.boolOption(OptBoolLowercase) {
		return out
	}
	return strings.ToUpper(out)
}

func (d *Dumper) renderNull() string {
	if d.config.boolOption(OptNullLowercase) {
		return "null"
	}
	return "NULL"
}

func (d *Dumper) renderFloat(f float64) string {
	if places, ok := d.config.roundPlaces(); ok {
		f = roundHalfUp(f, places)
	}
	return formatFloat(f)
}

// renderString truncates first and escapes newlines second, so the ellipsis
// never lands inside an escape sequence.
func (d *Dumper) renderString(s string) string {
	max := d.config.intOption(OptStrMaxLength)
	if max < 0 {
		max = 0
	}
	if len(s) > max {
		s = s[:max] + Ellipsis
	}
	if d.config.boolOption(OptReplaceNewline) {
		s = newlineReplacer.Replace(s)
	}
	return `"` + s + `"`
}

// formatFloat prints the shortest round-trip digits of f. Decimal exponents
// outside [-4, 15) switch to mantissa/exponent form, e.g. 7.0E-10.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expStr, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expStr)
	if exp >= -4 && exp < 15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	sign := "+"
	if exp < 0 {
		sign = "-"
		exp = -exp
	}
	return mant + "E" + sign + strconv.Itoa(exp)
}

// roundHalfUp rounds f to the given number of fractional digits, halves away
// from zero. The decision is made on the shortest decimal form of f so values
// like 1.005 round the way they read.
func roundHalfUp(f float64, places int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	if places < 0 {
		p := math.Pow10(-places)
		return math.Round(f/p) * p
	}

	s := strconv.FormatFloat(math.Abs(f), 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	if len(frac) <= places {
		return f
	}

	digits := []byte(intPart + frac[:places])
	if frac[places] >= '5' {
		i := len(digits) - 1
		for ; i >= 0; i-- {
			if digits[i] < '9' {
				digits[i]++
				break
			}
			digits[i] = '0'
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits...)
		}
	}

	split := len(digits) - places
	out := string(digits[:split])
	if places > 0 {
		out += "." + string(digits[split:])
	}
	r, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return f
	}
	if f < 0 {
		return -r
	}
	return r
}
