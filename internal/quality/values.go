package quality

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"textile-backend/internal/apperr"
	"textile-backend/internal/models"
)

// ParseValues converts a request's quality map into validated quantities.
// Numbers and numeric strings are accepted; anything else counts as 0.
// Keys must be grades declared by the product.
func ParseValues(raw map[string]any, product *models.Product) (models.QualityValues, error) {
	values := make(models.QualityValues, len(raw))

	var unknown []string
	for name, v := range raw {
		if product != nil && !product.HasQuality(name) {
			unknown = append(unknown, name)
			continue
		}
		n := toNumber(v)
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, apperr.Validation(fmt.Sprintf("Quality %q must be a finite number", name))
		}
		if n < 0 {
			return nil, apperr.Validation(fmt.Sprintf("Quality %q must not be negative", name))
		}
		values[name] = n
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, apperr.Validation("Unknown quality grades for product: " + strings.Join(unknown, ", "))
	}
	return values, nil
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Subtotal sums every quantity in values.
func Subtotal(values models.QualityValues) float64 {
	return values.Sum()
}
