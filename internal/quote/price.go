package quote

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrBadPrice is returned when a price field cannot be read as a finite number.
var ErrBadPrice = errors.New("bad price")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared schema validator with the "price" tag registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("price", func(fl validator.FieldLevel) bool {
			_, err := ParsePrice(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// priceGrammar accepts plain decimals with optional comma thousands grouping. Exponents, hex and underscores
// are rejected.
var priceGrammar = regexp.MustCompile(`^[+-]?(?:(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?|\.\d+)$`)

// ParsePrice reads a closing price such as "187.44", "$187.44", "1,024.50" or "USD 187.44".
// Only a leading currency symbol or a three-letter uppercase currency code may precede the number.
func ParsePrice(raw string) (float64, error) {
	s := stripCurrency(strings.TrimSpace(raw))
	if !priceGrammar.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrBadPrice, raw)
	}
	s = strings.TrimPrefix(strings.ReplaceAll(s, ",", ""), "+")
	if strings.HasPrefix(s, ".") || strings.HasPrefix(s, "-.") {
		s = strings.Replace(s, ".", "0.", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadPrice, raw)
	}
	v, _ := d.Float64()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrBadPrice, raw)
	}
	return v, nil
}

func stripCurrency(s string) string {
	if r, size := utf8.DecodeRuneInString(s); unicode.Is(unicode.Sc, r) {
		return strings.TrimLeftFunc(s[size:], unicode.IsSpace)
	}
	if len(s) > 3 && isUpperCode(s[:3]) && !isLetter(s[3]) {
		return strings.TrimLeftFunc(s[3:], unicode.IsSpace)
	}
	return s
}

func isUpperCode(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
