package services

import (
	"testing"

	"orderhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizeGroup() models.OptionGroup {
	return models.OptionGroup{
		ID:            1,
		Name:          "Size",
		SelectionType: models.SelectionSingle,
		MinSelection:  1,
		MaxSelection:  1,
		PriceRule:     models.PriceRuleSum,
		Options: []models.Option{
			{ID: 10, GroupID: 1, Name: "Small", Price: 5.00, IsAvailable: true},
			{ID: 11, GroupID: 1, Name: "Large", Price: 8.00, IsAvailable: true},
		},
	}
}

func extrasGroup() models.OptionGroup {
	return models.OptionGroup{
		ID:            2,
		Name:          "Extras",
		SelectionType: models.SelectionMultiple,
		MinSelection:  0,
		MaxSelection:  3,
		PriceRule:     models.PriceRuleSum,
		Options: []models.Option{
			{ID: 20, GroupID: 2, Name: "Bacon", Price: 2.00, IsAvailable: true},
			{ID: 21, GroupID: 2, Name: "Cheese", Price: 3.50, IsAvailable: true},
			{ID: 22, GroupID: 2, Name: "Truffle", Price: 9.00, IsAvailable: false},
		},
	}
}

func TestEvaluateGroupCardinality(t *testing.T) {
	pricing := NewPricingService()
	group := sizeGroup()

	_, err := pricing.EvaluateGroup(group, nil)
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Size", validationErr.Group)

	_, err = pricing.EvaluateGroup(group, []int{10, 11})
	require.ErrorAs(t, err, &validationErr)

	contribution, err := pricing.EvaluateGroup(group, []int{11})
	require.NoError(t, err)
	assert.Equal(t, 8.00, contribution)
}

func TestEvaluateGroupRejectsForeignAndUnavailableOptions(t *testing.T) {
	pricing := NewPricingService()
	group := extrasGroup()

	_, err := pricing.EvaluateGroup(group, []int{999})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Extras", validationErr.Group)

	_, err = pricing.EvaluateGroup(group, []int{22})
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Reason, "not available")
}

func TestEvaluateGroupSumRule(t *testing.T) {
	pricing := NewPricingService()

	contribution, err := pricing.EvaluateGroup(extrasGroup(), []int{20, 21})
	require.NoError(t, err)
	assert.Equal(t, 5.50, contribution)
}

func TestEvaluateGroupHighestAndAverageRules(t *testing.T) {
	pricing := NewPricingService()

	group := extrasGroup()
	group.PriceRule = models.PriceRuleHighest
	contribution, err := pricing.EvaluateGroup(group, []int{20, 21})
	require.NoError(t, err)
	assert.Equal(t, 3.50, contribution)

	group.PriceRule = models.PriceRuleAverage
	contribution, err = pricing.EvaluateGroup(group, []int{20, 21})
	require.NoError(t, err)
	assert.Equal(t, 2.75, contribution)
}

func TestMinimumPriceWithZeroBase(t *testing.T) {
	pricing := NewPricingService()

	product := models.Product{
		ID:       1,
		Price:    0,
		IsActive: true,
		OptionGroups: []models.OptionGroup{
			{
				Name:          "Size",
				SelectionType: models.SelectionSingle,
				MinSelection:  1,
				MaxSelection:  1,
				PriceRule:     models.PriceRuleSum,
				Options: []models.Option{
					{ID: 1, Name: "Regular", Price: 5.00, IsAvailable: true},
					{ID: 2, Name: "Family", Price: 8.00, IsAvailable: true},
				},
			},
			{
				Name:          "Extras",
				SelectionType: models.SelectionMultiple,
				MinSelection:  0,
				MaxSelection:  2,
				PriceRule:     models.PriceRuleSum,
				Options: []models.Option{
					{ID: 3, Name: "Bacon", Price: 2.00, IsAvailable: true},
				},
			},
		},
	}

	// Optional groups never enter the catalog minimum.
	assert.Equal(t, 5.00, pricing.MinimumPrice(product))
	assert.True(t, pricing.HasVariablePrice(product))
}

func TestMinimumPriceSkipsRequiredGroupWithNoAvailableOptions(t *testing.T) {
	pricing := NewPricingService()

	product := models.Product{
		Price:    10.00,
		IsActive: true,
		OptionGroups: []models.OptionGroup{
			{
				Name:         "Sold out",
				MinSelection: 1,
				MaxSelection: 1,
				Options: []models.Option{
					{ID: 1, Name: "Gone", Price: 4.00, IsAvailable: false},
				},
			},
		},
	}

	assert.Equal(t, 10.00, pricing.MinimumPrice(product))
}

func TestHasVariablePriceFalseWhenAllModifiersZero(t *testing.T) {
	pricing := NewPricingService()

	product := models.Product{
		Price: 12.00,
		OptionGroups: []models.OptionGroup{
			{
				Name: "Temperature",
				Options: []models.Option{
					{ID: 1, Name: "Hot", Price: 0, IsAvailable: true},
					{ID: 2, Name: "Iced", Price: 0, IsAvailable: true},
				},
			},
		},
	}

	assert.False(t, pricing.HasVariablePrice(product))
}

func TestUnitPriceSnapshotsSelectedOptions(t *testing.T) {
	pricing := NewPricingService()

	product := models.Product{
		ID:           1,
		Name:         "Burger",
		Price:        20.00,
		IsActive:     true,
		OptionGroups: []models.OptionGroup{sizeGroup(), extrasGroup()},
	}

	unitPrice, selected, err := pricing.UnitPrice(product, []models.GroupSelection{
		{GroupID: 1, OptionIDs: []int{10}},
		{GroupID: 2, OptionIDs: []int{21}},
	})
	require.NoError(t, err)
	assert.Equal(t, 28.50, unitPrice)
	require.Len(t, selected, 2)
	assert.Equal(t, models.SelectedOption{GroupName: "Size", OptionName: "Small", Price: 5.00}, selected[0])
	assert.Equal(t, models.SelectedOption{GroupName: "Extras", OptionName: "Cheese", Price: 3.50}, selected[1])
}

func TestUnitPriceRejectsInactiveProduct(t *testing.T) {
	pricing := NewPricingService()

	product := models.Product{ID: 1, Price: 10.00, IsActive: false}
	_, _, err := pricing.UnitPrice(product, nil)
	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}

func TestHalfAndHalfUsesHigherBasePrice(t *testing.T) {
	pricing := NewPricingService()

	first := models.Product{ID: 1, Name: "Margherita", Price: 30.00, IsActive: true}
	second := models.Product{ID: 2, Name: "Pepperoni", Price: 35.00, IsActive: true}

	unitPrice, _, err := pricing.HalfAndHalfUnitPrice(first, second, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 35.00, unitPrice)
}

func TestHalfAndHalfAddsEachHalfsOptionContributions(t *testing.T) {
	pricing := NewPricingService()

	crust := models.OptionGroup{
		ID:            5,
		Name:          "Crust",
		SelectionType: models.SelectionMultiple,
		MinSelection:  0,
		MaxSelection:  1,
		PriceRule:     models.PriceRuleSum,
		Options: []models.Option{
			{ID: 50, GroupID: 5, Name: "Stuffed", Price: 6.00, IsAvailable: true},
		},
	}

	first := models.Product{ID: 1, Price: 30.00, IsActive: true, OptionGroups: []models.OptionGroup{crust}}
	second := models.Product{ID: 2, Price: 35.00, IsActive: true}

	unitPrice, selected, err := pricing.HalfAndHalfUnitPrice(first, second,
		[]models.GroupSelection{{GroupID: 5, OptionIDs: []int{50}}}, nil)
	require.NoError(t, err)
	// Higher base plus the first half's option, no extra halving.
	assert.Equal(t, 41.00, unitPrice)
	require.Len(t, selected, 1)
	assert.Equal(t, "Stuffed", selected[0].OptionName)
}

func TestHalfAndHalfRejectsInactiveHalf(t *testing.T) {
	pricing := NewPricingService()

	first := models.Product{ID: 1, Price: 30.00, IsActive: true}
	second := models.Product{ID: 2, Price: 35.00, IsActive: false}

	_, _, err := pricing.HalfAndHalfUnitPrice(first, second, nil, nil)
	assert.ErrorIs(t, err, models.ErrProductUnavailable)

	_, _, err = pricing.HalfAndHalfUnitPrice(second, first, nil, nil)
	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}

func TestLineTotalRoundsToCurrencyPrecision(t *testing.T) {
	pricing := NewPricingService()

	assert.Equal(t, 21.01, pricing.LineTotal(10.505, 2))
	assert.Equal(t, 57.00, pricing.LineTotal(28.50, 2))
}
