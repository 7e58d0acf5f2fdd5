package queries_test

import (
	"testing"

	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckDeliveryQuery(t *testing.T) {
	t.Run("pincode only", func(t *testing.T) {
		pincode, err := kernel.NewPincode("208007")
		require.NoError(t, err)

		query, err := queries.NewCheckDeliveryQuery(&pincode, nil)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		require.NotNil(t, query.Pincode())
		assert.Nil(t, query.Point())
	})

	t.Run("coordinates only", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(26.4499, 80.3319)
		require.NoError(t, err)

		query, err := queries.NewCheckDeliveryQuery(nil, &point)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Nil(t, query.Pincode())
		require.NotNil(t, query.Point())
	})

	t.Run("both inputs", func(t *testing.T) {
		pincode, err := kernel.NewPincode("208007")
		require.NoError(t, err)
		point, err := kernel.NewGeoPoint(26.4499, 80.3319)
		require.NoError(t, err)

		query, err := queries.NewCheckDeliveryQuery(&pincode, &point)
		require.NoError(t, err)
		require.NotNil(t, query.Pincode())
		require.NotNil(t, query.Point())
	})

	t.Run("no input", func(t *testing.T) {
		_, err := queries.NewCheckDeliveryQuery(nil, nil)
		require.Error(t, err)
	})

	t.Run("unconstructed pincode", func(t *testing.T) {
		var pincode kernel.Pincode
		_, err := queries.NewCheckDeliveryQuery(&pincode, nil)
		require.Error(t, err)
	})
}

func TestCheckDeliveryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.CheckDeliveryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrCheckDeliveryQueryIsNotConstructed)
}
