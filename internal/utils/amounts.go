package utils

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// FormatUnits converts a raw integer amount string (base units) into a human
// decimal string using the token's decimals. Trailing zeros are trimmed so
// "1000000" with 6 decimals renders as "1", not "1.000000".
func FormatUnits(raw string, decimals uint8) (string, error) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return "", fmt.Errorf("invalid raw amount: %s", raw)
	}

	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).SetPrec(256).SetInt(amount)
	value.Quo(value, divisor)

	formatted := value.Text('f', int(decimals))
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimSuffix(formatted, ".")
	}
	if formatted == "" || formatted == "-" {
		formatted = "0"
	}
	return formatted, nil
}

// ParseUnits converts a human decimal string into a raw base-unit integer.
// Excess fractional digits are an error rather than silently truncated.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}

	negative := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(value, "-")

	parts := strings.SplitN(value, ".", 2)
	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", value, decimals)
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))

	if whole == "" {
		whole = "0"
	}
	raw, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", value)
	}
	if negative {
		raw.Neg(raw)
	}
	return raw, nil
}

// ApplySlippage reduces amount by slippagePercent and returns the floor.
// A 0.5% tolerance on 1000 yields 995. The tolerance is converted to basis
// points so the arithmetic stays exact.
func ApplySlippage(amount *big.Int, slippagePercent float64) *big.Int {
	bps := int64(math.Round(slippagePercent * 100))
	if bps <= 0 {
		return new(big.Int).Set(amount)
	}
	if bps >= 10000 {
		return big.NewInt(0)
	}
	result := new(big.Int).Mul(amount, big.NewInt(10000-bps))
	return result.Div(result, big.NewInt(10000))
}
