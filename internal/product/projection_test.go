package product

import (
	"testing"

	"maison-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectionFixture() *Product {
	return &Product{
		ID:    1,
		Name:  "Linen Shirt",
		Price: 250000,
		Stock: 10,
		Variants: []Variant{
			{ID: 11, ProductID: 1, Color: utils.StrPtr("White"), Size: "M", Quantity: 4},
			{ID: 12, ProductID: 1, Color: utils.StrPtr("White"), Size: "L", Quantity: 0},
		},
	}
}

func TestStrategyForRole(t *testing.T) {
	assert.IsType(t, AdminView{}, StrategyForRole(utils.RoleAdmin))
	assert.IsType(t, CustomerView{}, StrategyForRole(utils.RoleCustomer))
	assert.IsType(t, CustomerView{}, StrategyForRole(utils.RoleAnonymous))
	assert.IsType(t, CustomerView{}, StrategyForRole(""))
}

func TestAdminView_Project(t *testing.T) {
	view := AdminView{}.Project(projectionFixture(), 3)

	assert.Equal(t, 3, view.AvailableStock)
	assert.True(t, view.InStock)

	require.Len(t, view.Variants, 2)
	// Raw stored quantities survive for admin screens.
	assert.Equal(t, 4, view.Variants[0].Quantity)
	assert.True(t, view.Variants[0].Available)
	assert.Equal(t, 0, view.Variants[1].Quantity)
	assert.False(t, view.Variants[1].Available)
}

func TestCustomerView_Project(t *testing.T) {
	t.Run("BroadcastsSharedPool", func(t *testing.T) {
		view := CustomerView{}.Project(projectionFixture(), 3)

		require.Len(t, view.Variants, 2)
		for _, v := range view.Variants {
			assert.Equal(t, 3, v.Quantity)
			assert.True(t, v.Available)
		}
	})

	t.Run("ExhaustedPool", func(t *testing.T) {
		view := CustomerView{}.Project(projectionFixture(), 0)

		assert.False(t, view.InStock)
		assert.Equal(t, 0, view.AvailableStock)
		for _, v := range view.Variants {
			assert.Equal(t, 0, v.Quantity)
			assert.False(t, v.Available)
		}
	})
}

func TestBaseView_EffectivePrice(t *testing.T) {
	p := projectionFixture()
	p.Discount = discountOf(DiscountPercentage, 10)

	view := CustomerView{}.Project(p, 5)

	assert.Equal(t, 250000.0, view.Price)
	assert.Equal(t, 225000.0, view.EffectivePrice)
}
