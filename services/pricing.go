package services

import (
	"math"

	"orderhub/models"
)

// PricingService evaluates option selections and computes line-item prices.
// All results are rounded to currency precision (2 decimal places).
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// EvaluateGroup checks a candidate selection against the group's cardinality
// rule and returns its price contribution. Every selected id must belong to
// the group and be available.
func (s *PricingService) EvaluateGroup(group models.OptionGroup, selectedIDs []int) (float64, error) {
	count := len(selectedIDs)

	if count < group.MinSelection {
		return 0, &models.ValidationError{Group: group.Name, Reason: "too few options selected"}
	}
	if group.MaxSelection > 0 && count > group.MaxSelection {
		return 0, &models.ValidationError{Group: group.Name, Reason: "too many options selected"}
	}
	if group.SelectionType == models.SelectionSingle && group.MinSelection >= 1 && count != 1 {
		return 0, &models.ValidationError{Group: group.Name, Reason: "exactly one option must be selected"}
	}

	byID := make(map[int]models.Option, len(group.Options))
	for _, opt := range group.Options {
		byID[opt.ID] = opt
	}

	prices := make([]float64, 0, count)
	for _, id := range selectedIDs {
		opt, ok := byID[id]
		if !ok {
			return 0, &models.ValidationError{Group: group.Name, Reason: "option does not belong to this group"}
		}
		if !opt.IsAvailable {
			return 0, &models.ValidationError{Group: group.Name, Reason: "option is not available"}
		}
		prices = append(prices, opt.Price)
	}

	return s.applyPriceRule(group.PriceRule, prices), nil
}

func (s *PricingService) applyPriceRule(rule models.PriceRule, prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	switch rule {
	case models.PriceRuleHighest:
		highest := prices[0]
		for _, p := range prices[1:] {
			if p > highest {
				highest = p
			}
		}
		return highest
	case models.PriceRuleAverage:
		var sum float64
		for _, p := range prices {
			sum += p
		}
		return round2(sum / float64(len(prices)))
	default:
		var sum float64
		for _, p := range prices {
			sum += p
		}
		return sum
	}
}

// MinimumPrice is the catalog-level "starting from" estimate: base price plus
// the cheapest available option of every required group. Not tied to any
// concrete selection.
func (s *PricingService) MinimumPrice(product models.Product) float64 {
	price := product.Price

	for _, group := range product.OptionGroups {
		if group.MinSelection <= 0 {
			continue
		}

		cheapest := math.Inf(1)
		for _, opt := range group.Options {
			if opt.IsAvailable && opt.Price < cheapest {
				cheapest = opt.Price
			}
		}
		if !math.IsInf(cheapest, 1) {
			price += cheapest
		}
	}

	return round2(price)
}

// HasVariablePrice reports whether any option carries a strictly positive
// modifier. It drives the "starting from" label, not price computation.
func (s *PricingService) HasVariablePrice(product models.Product) bool {
	for _, group := range product.OptionGroups {
		for _, opt := range group.Options {
			if opt.Price > 0 {
				return true
			}
		}
	}
	return false
}

// UnitPrice validates a concrete selection against every group of the
// product and returns the per-unit price plus the denormalized selected
// options to snapshot into the cart.
func (s *PricingService) UnitPrice(product models.Product, selections []models.GroupSelection) (float64, []models.SelectedOption, error) {
	if !product.IsActive {
		return 0, nil, models.ErrProductUnavailable
	}

	selectedByGroup := make(map[int][]int, len(selections))
	for _, sel := range selections {
		selectedByGroup[sel.GroupID] = sel.OptionIDs
	}

	price := product.Price
	snapshot := []models.SelectedOption{}

	for _, group := range product.OptionGroups {
		ids := selectedByGroup[group.ID]

		contribution, err := s.EvaluateGroup(group, ids)
		if err != nil {
			return 0, nil, err
		}
		price += contribution

		byID := make(map[int]models.Option, len(group.Options))
		for _, opt := range group.Options {
			byID[opt.ID] = opt
		}
		for _, id := range ids {
			opt := byID[id]
			snapshot = append(snapshot, models.SelectedOption{
				GroupName:  group.Name,
				OptionName: opt.Name,
				Price:      opt.Price,
			})
		}
	}

	return round2(price), snapshot, nil
}

// HalfAndHalfUnitPrice prices a 50/50 blend of two products. The combined
// base is the higher of the two base prices; each half contributes its own
// selected options at full per-unit value.
func (s *PricingService) HalfAndHalfUnitPrice(first, second models.Product, firstSel, secondSel []models.GroupSelection) (float64, []models.SelectedOption, error) {
	if !first.IsActive || !second.IsActive {
		return 0, nil, models.ErrProductUnavailable
	}

	firstPrice, firstOptions, err := s.UnitPrice(first, firstSel)
	if err != nil {
		return 0, nil, err
	}
	secondPrice, secondOptions, err := s.UnitPrice(second, secondSel)
	if err != nil {
		return 0, nil, err
	}

	firstOptionsTotal := firstPrice - first.Price
	secondOptionsTotal := secondPrice - second.Price

	base := first.Price
	if second.Price > base {
		base = second.Price
	}

	options := append(firstOptions, secondOptions...)
	return round2(base + firstOptionsTotal + secondOptionsTotal), options, nil
}

// LineTotal is the final price for a priced configuration.
func (s *PricingService) LineTotal(unitPrice float64, quantity int) float64 {
	return round2(unitPrice * float64(quantity))
}
