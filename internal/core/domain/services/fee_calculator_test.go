package services_test

import (
	"math"
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/outlet"
	"laundry/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOutlet(t *testing.T, radiusKm int64, scale int32) *outlet.Outlet {
	t.Helper()
	loc, err := kernel.NewGeoPoint(-7.7645, 110.3827)
	require.NoError(t, err)
	o, err := outlet.NewOutlet(kernel.NewUUID(), "Gejayan", loc, decimal.NewFromInt(radiusKm),
		outlet.FeeSchedule{BaseFee: decimal.NewFromInt(5000), PerKm: decimal.NewFromInt(2000)}, scale)
	require.NoError(t, err)
	return o
}

func pointKmNorth(t *testing.T, km float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(-7.7645+km/kernel.EarthRadiusKm*180/math.Pi, 110.3827)
	require.NoError(t, err)
	return p
}

func TestFeeCalculator_Quote(t *testing.T) {
	calc := services.NewFeeCalculator()

	t.Run("three kilometres costs base plus three per-km units", func(t *testing.T) {
		quote, err := calc.Quote(newOutlet(t, 10, 0), pointKmNorth(t, 3))

		require.NoError(t, err)
		assert.Equal(t, "3.00", quote.DistanceKm.StringFixed(2))
		assert.True(t, decimal.NewFromInt(11000).Equal(quote.Fee), quote.Fee.String())
		assert.True(t, quote.WithinServiceRadius)
	})

	t.Run("same inputs give identical output", func(t *testing.T) {
		o := newOutlet(t, 10, 2)
		dest, err := kernel.NewGeoPoint(-7.8012, 110.3647)
		require.NoError(t, err)

		first, err := calc.Quote(o, dest)
		require.NoError(t, err)
		second, err := calc.Quote(o, dest)
		require.NoError(t, err)

		assert.Equal(t, first.Fee.String(), second.Fee.String())
		assert.Equal(t, first.DistanceKm.String(), second.DistanceKm.String())
		assert.LessOrEqual(t, -first.Fee.Exponent(), int32(2))
	})

	t.Run("zero distance costs the base fee", func(t *testing.T) {
		o := newOutlet(t, 10, 0)

		quote, err := calc.Quote(o, o.Location())

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(5000).Equal(quote.Fee))
	})

	t.Run("out of radius is flagged but priced", func(t *testing.T) {
		quote, err := calc.Quote(newOutlet(t, 2, 0), pointKmNorth(t, 3))

		require.NoError(t, err)
		assert.False(t, quote.WithinServiceRadius)
		assert.True(t, decimal.NewFromInt(11000).Equal(quote.Fee))
	})

	t.Run("rejects an unconstructed destination", func(t *testing.T) {
		_, err := calc.Quote(newOutlet(t, 10, 0), kernel.GeoPoint{})

		require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
	})
}

func TestFeeCalculator_Pricing(t *testing.T) {
	o := newOutlet(t, 10, 0)
	addr, err := order.NewAddress("Jl. Affandi 5", "", "Sleman", "DIY", "", pointKmNorth(t, 3))
	require.NoError(t, err)
	ord, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), o.ID(), addr, nil, order.Schedule{}, time.Now())
	require.NoError(t, err)

	pricing, err := services.NewFeeCalculator().Pricing(o, ord)

	require.NoError(t, err)
	assert.Equal(t, int32(0), pricing.CurrencyScale)
	assert.True(t, decimal.NewFromInt(11000).Equal(pricing.Quote.Fee))
}
