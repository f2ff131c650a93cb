package currency

import (
	"fmt"
	"math"
	"strings"
)

// Currencies priced in whole units.
var zeroDecimal = map[string]bool{
	"IDR": true,
	"JPY": true,
	"KRW": true,
	"VND": true,
	"ISK": true,
}

// Format renders amount with its ISO code, thousands separated by commas,
// e.g. "EUR 1,234.50" or "IDR 1,500,000". No conversion happens here.
func Format(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	decimals := 2
	if zeroDecimal[code] {
		decimals = 0
	}

	scale := math.Pow(10, float64(decimals))
	rounded := math.Round(amount*scale) / scale

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	str := fmt.Sprintf("%.*f", decimals, rounded)
	intPart, fracPart, _ := strings.Cut(str, ".")
	formatted := addThousandsSeparator(intPart, ",")
	if fracPart != "" {
		formatted += "." + fracPart
	}

	result := formatted
	if code != "" {
		result = code + " " + formatted
	}
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
