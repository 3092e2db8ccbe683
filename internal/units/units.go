// Package units defines the display and rounding rules for context units.
// The synthesizer, composer and answer engine all format numbers through
// these rules so a question and its answer never disagree on precision.
package units

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Rule is the precision and placement policy for one unit.
type Rule struct {
	Unit string

	// Decimals is the precision of individual data values.
	Decimals int

	// MeanDecimals is the precision of means and other derived values.
	// Always >= Decimals.
	MeanDecimals int

	// Prefix and Suffix wrap formatted numbers, e.g. "$" or " bpm".
	Prefix string
	Suffix string
}

var currency = map[string]bool{"$": true, "€": true, "£": true}

var attached = map[string]bool{"%": true, "°C": true, "°F": true}

var measured = map[string]bool{
	"kg": true, "km": true, "mi": true, "L": true,
	"h": true, "hours": true, "m": true, "cm": true,
}

// For returns the rule for unit. Unknown units are treated as counts.
func For(unit string) Rule {
	unit = strings.TrimSpace(unit)
	switch {
	case currency[unit]:
		return Rule{Unit: unit, Decimals: 2, MeanDecimals: 2, Prefix: unit}
	case attached[unit]:
		return Rule{Unit: unit, Decimals: 0, MeanDecimals: 1, Suffix: unit}
	case measured[unit]:
		return Rule{Unit: unit, Decimals: 1, MeanDecimals: 2, Suffix: " " + unit}
	case unit == "":
		return Rule{Decimals: 0, MeanDecimals: 1}
	default:
		return Rule{Unit: unit, Decimals: 0, MeanDecimals: 1, Suffix: " " + unit}
	}
}

// IsCurrency reports whether the rule formats money.
func (r Rule) IsCurrency() bool {
	return currency[r.Unit]
}

// Step returns the smallest representable value difference.
func (r Rule) Step() float64 {
	return 1 / pow10(r.Decimals)
}

// Ticks converts v to an integer number of value-precision steps.
func (r Rule) Ticks(v float64) int64 {
	return int64(math.Round(v * pow10(r.Decimals)))
}

// FromTicks converts a step count back to a value.
func (r Rule) FromTicks(t int64) float64 {
	return float64(t) / pow10(r.Decimals)
}

// MeanScale is the number of value ticks per mean tick, i.e.
// 10^(MeanDecimals-Decimals).
func (r Rule) MeanScale() int64 {
	return int64(pow10(r.MeanDecimals - r.Decimals))
}

// Round rounds v to value precision.
func (r Rule) Round(v float64) float64 {
	return Round(v, r.Decimals)
}

// RoundMean rounds v to mean precision.
func (r Rule) RoundMean(v float64) float64 {
	return Round(v, r.MeanDecimals)
}

// FormatValue formats a data value with its unit.
func (r Rule) FormatValue(v float64) string {
	return r.Wrap(Number(v, r.Decimals))
}

// FormatMean formats a mean or other derived value with its unit.
func (r Rule) FormatMean(v float64) string {
	return r.Wrap(Number(v, r.MeanDecimals))
}

// FormatPlain formats a data value without the unit.
func (r Rule) FormatPlain(v float64) string {
	return Number(v, r.Decimals)
}

// FormatPlainMean formats a derived value without the unit.
func (r Rule) FormatPlainMean(v float64) string {
	return Number(v, r.MeanDecimals)
}

// Wrap attaches the unit to an already formatted number. A leading minus
// sign stays in front of a prefix: "-$5.00".
func (r Rule) Wrap(num string) string {
	if r.Prefix != "" {
		if rest, ok := strings.CutPrefix(num, "-"); ok {
			return "-" + r.Prefix + rest + r.Suffix
		}
	}
	return r.Prefix + num + r.Suffix
}

// Round rounds v to the given decimals, half away from zero.
func Round(v float64, decimals int) float64 {
	p := pow10(decimals)
	return math.Round(v*p) / p
}

// Number formats v with exactly decimals fraction digits and thousands
// grouping, e.g. Number(1234.5, 2) == "1,234.50".
func Number(v float64, decimals int) string {
	p := pow10(decimals)
	t := int64(math.Round(v * p))
	neg := t < 0
	if neg {
		t = -t
	}
	scale := int64(p)
	out := humanize.Comma(t / scale)
	if decimals > 0 {
		frac := t % scale
		digits := make([]byte, decimals)
		for i := decimals - 1; i >= 0; i-- {
			digits[i] = byte('0' + frac%10)
			frac /= 10
		}
		out += "." + string(digits)
	}
	if neg && t != 0 {
		out = "-" + out
	}
	return out
}

// FormatCount formats a whole count with grouping.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

func pow10(n int) float64 {
	if n <= 0 {
		return 1
	}
	return math.Pow10(n)
}
