package printing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// French numeral tables
var (
	frenchUnits = []string{"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf"}
	frenchTeens = []string{"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize", "dix-sept", "dix-huit", "dix-neuf"}
	frenchTens  = []string{"", "", "vingt", "trente", "quarante", "cinquante", "soixante"}
)

// AmountToFrenchWords converts a decimal currency amount into the French
// legal wording used on the printed devis.
// Example: 1530.50 -> "mille cinq cent trente dinars algériens et cinquante centimes"
func AmountToFrenchWords(d decimal.Decimal) string {
	if d.IsNegative() {
		return "moins " + AmountToFrenchWords(d.Abs())
	}

	// Split into integer part and cents rounded to the nearest centime
	totalCents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	dinars := totalCents / 100
	centimes := totalCents % 100

	if dinars == 0 && centimes == 0 {
		return frenchUnits[0]
	}

	var parts []string
	if dinars > 0 {
		parts = append(parts, integerWords(dinars)+" "+dinarWords(dinars))
	}
	if centimes > 0 {
		parts = append(parts, integerWords(centimes)+" "+centimeWords(centimes))
	}
	return strings.Join(parts, " et ")
}

// dinarWords pluralizes the currency unit
func dinarWords(n int64) string {
	if n == 1 {
		return "dinar algérien"
	}
	return "dinars algériens"
}

// centimeWords pluralizes the fractional unit
func centimeWords(n int64) string {
	if n == 1 {
		return "centime"
	}
	return "centimes"
}

// integerWords renders any non-negative integer below 10^12 in French words
func integerWords(n int64) string {
	if n == 0 {
		return frenchUnits[0]
	}

	billions := n / 1_000_000_000
	millions := (n / 1_000_000) % 1000
	thousands := (n / 1000) % 1000
	remainder := n % 1000

	var parts []string
	if billions > 0 {
		parts = append(parts, magnitudeWords(billions, "milliard", "milliards"))
	}
	if millions > 0 {
		parts = append(parts, magnitudeWords(millions, "million", "millions"))
	}
	if thousands > 0 {
		parts = append(parts, thousandsWords(thousands))
	}
	if remainder > 0 {
		parts = append(parts, hundredsWords(remainder))
	}
	return strings.Join(parts, " ")
}

// magnitudeWords renders a million/milliard group. Only the magnitude word is
// pluralized; a multiplier of 1 keeps the singular "un million"/"un milliard".
func magnitudeWords(multiplier int64, singular, plural string) string {
	if multiplier == 1 {
		return "un " + singular
	}
	return hundredsWords(multiplier) + " " + plural
}

// thousandsWords renders the thousands group. "mille" never takes a "un"
// prefix: 1000 is "mille", not "un mille".
func thousandsWords(multiplier int64) string {
	if multiplier == 1 {
		return "mille"
	}
	return hundredsWords(multiplier) + " mille"
}

// hundredsWords renders 1..999. The hundred word is "cent" whether or not
// digits follow, and multiples of one hundred never take a final "s"
// ("deux cent", not "deux cents") - this mirrors the behavior of the
// billing system this engine replaces; see DESIGN.md.
func hundredsWords(n int64) string {
	hundreds := n / 100
	rest := n % 100

	if hundreds == 0 {
		return belowHundredWords(rest)
	}

	word := "cent"
	if hundreds > 1 {
		word = frenchUnits[hundreds] + " cent"
	}
	if rest == 0 {
		return word
	}
	return word + " " + belowHundredWords(rest)
}

// belowHundredWords renders 0..99, dispatching the irregular tens families
func belowHundredWords(n int64) string {
	switch {
	case n < 10:
		return frenchUnits[n]
	case n < 20:
		return frenchTeens[n-10]
	}

	tens := n / 10
	unit := n % 10
	switch tens {
	case 7:
		return seventiesWords(unit)
	case 8:
		return eightiesWords(unit)
	case 9:
		return ninetiesWords(unit)
	}
	return regularTensWords(tens, unit)
}

// regularTensWords handles 20..69: "et un" for a units digit of 1,
// hyphenation otherwise.
func regularTensWords(tens, unit int64) string {
	switch unit {
	case 0:
		return frenchTens[tens]
	case 1:
		return frenchTens[tens] + " et un"
	}
	return frenchTens[tens] + "-" + frenchUnits[unit]
}

// seventiesWords handles 70..79 on the "soixante" base: 71 is the only
// number taking "et" before a teen word ("soixante et onze").
func seventiesWords(unit int64) string {
	if unit == 1 {
		return "soixante et onze"
	}
	return "soixante-" + frenchTeens[unit]
}

// eightiesWords handles 80..89: exactly 80 is "quatre-vingts" with a plural
// "s" that is dropped as soon as a unit follows ("quatre-vingt-trois").
func eightiesWords(unit int64) string {
	if unit == 0 {
		return "quatre-vingts"
	}
	return "quatre-vingt-" + frenchUnits[unit]
}

// ninetiesWords handles 90..99 on the "quatre-vingt" base: unlike the 70
// family, 91 does not take "et" ("quatre-vingt-onze").
func ninetiesWords(unit int64) string {
	return "quatre-vingt-" + frenchTeens[unit]
}
