// Package guard holds the shared validation rules for admin mutations.
// Services call these before touching storage so every write path rejects
// bad pricing inputs the same way.
package guard

import (
	"regexp"
	"strings"

	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateCaratWeight requires a strictly positive weight.
func ValidateCaratWeight(weight decimal.Decimal) error {
	if weight.Sign() <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "carat weight must be positive").
			WithDetails(map[string]any{"carat_weight": weight.String()})
	}
	return nil
}

// ValidateMultiplier requires a strictly positive multiplier.
func ValidateMultiplier(multiplier decimal.Decimal) error {
	if multiplier.Sign() <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "multiplier must be positive").
			WithDetails(map[string]any{"multiplier": multiplier.String()})
	}
	return nil
}

// ValidateBasePrice rejects negative prices. Zero is allowed for drafts.
func ValidateBasePrice(price decimal.Decimal) error {
	if price.Sign() < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "base price must not be negative").
			WithDetails(map[string]any{"base_price": price.String()})
	}
	return nil
}

// ValidateDiscountPercent requires a percentage in [0, 100].
func ValidateDiscountPercent(discount decimal.Decimal) error {
	if discount.Sign() < 0 || discount.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100").
			WithDetails(map[string]any{"discount_percentage": discount.String()})
	}
	return nil
}

// ValidateColorCode requires a #RGB or #RRGGBB hex code.
func ValidateColorCode(code string) error {
	if !hexColorRe.MatchString(strings.TrimSpace(code)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "color code must be a hex value").
			WithDetails(map[string]any{"color_code": code})
	}
	return nil
}

// ValidateColorName requires a non-empty name.
func ValidateColorName(name string) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "color name is required")
	}
	return nil
}

// ValidateImageURL requires a non-empty URL or path.
func ValidateImageURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "image url is required")
	}
	return nil
}
