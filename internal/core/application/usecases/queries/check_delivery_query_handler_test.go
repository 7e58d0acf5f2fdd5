package queries_test

import (
	"context"
	"testing"

	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/services"
	"grocery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPincodeDirectory is a mock implementation of ports.PincodeDirectory.
type MockPincodeDirectory struct {
	mock.Mock
}

func (m *MockPincodeDirectory) Lookup(ctx context.Context, pincode kernel.Pincode) (kernel.GeoPoint, error) {
	args := m.Called(ctx, pincode)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

func (m *MockPincodeDirectory) Add(ctx context.Context, pincode kernel.Pincode, point kernel.GeoPoint) error {
	args := m.Called(ctx, pincode, point)
	return args.Error(0)
}

func newTestGeofence(t *testing.T) services.Geofence {
	t.Helper()

	base, err := kernel.NewGeoPoint(26.4499, 80.3319)
	require.NoError(t, err)

	fence, err := services.NewGeofence(base, 5)
	require.NoError(t, err)
	return fence
}

func TestCheckDeliveryQueryHandler_Handle(t *testing.T) {
	t.Run("coordinates_inside_fence", func(t *testing.T) {
		directory := new(MockPincodeDirectory)
		handler := queries.NewCheckDeliveryQueryHandler(directory, newTestGeofence(t))

		point, err := kernel.NewGeoPoint(26.4599, 80.3419)
		require.NoError(t, err)
		query, err := queries.NewCheckDeliveryQuery(nil, &point)
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)

		assert.True(t, result.Eligible)
		assert.Greater(t, result.DistanceKm, 0.0)
		assert.Less(t, result.DistanceKm, 5.0)
		directory.AssertExpectations(t)
	})

	t.Run("known_pincode_resolved_through_directory", func(t *testing.T) {
		directory := new(MockPincodeDirectory)
		handler := queries.NewCheckDeliveryQueryHandler(directory, newTestGeofence(t))

		pincode, err := kernel.NewPincode("208007")
		require.NoError(t, err)
		base, err := kernel.NewGeoPoint(26.4499, 80.3319)
		require.NoError(t, err)
		directory.On("Lookup", mock.Anything, pincode).Return(base, nil).Once()

		query, err := queries.NewCheckDeliveryQuery(&pincode, nil)
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)

		assert.True(t, result.Eligible)
		assert.InDelta(t, 0.0, result.DistanceKm, 0.001)
		directory.AssertExpectations(t)
	})

	t.Run("unknown_pincode_is_ineligible_without_distance", func(t *testing.T) {
		directory := new(MockPincodeDirectory)
		handler := queries.NewCheckDeliveryQueryHandler(directory, newTestGeofence(t))

		pincode, err := kernel.NewPincode("999999")
		require.NoError(t, err)
		directory.On("Lookup", mock.Anything, pincode).
			Return(kernel.GeoPoint{}, errs.NewObjectNotFoundError("pincode", pincode.String())).Once()

		query, err := queries.NewCheckDeliveryQuery(&pincode, nil)
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)

		assert.False(t, result.Eligible)
		assert.InDelta(t, services.UnknownDistanceKm, result.DistanceKm, 0.001)
		directory.AssertExpectations(t)
	})

	t.Run("coordinates_win_over_pincode", func(t *testing.T) {
		directory := new(MockPincodeDirectory)
		handler := queries.NewCheckDeliveryQueryHandler(directory, newTestGeofence(t))

		pincode, err := kernel.NewPincode("400001")
		require.NoError(t, err)
		// Mumbai: far outside the fence even though a pincode was supplied.
		point, err := kernel.NewGeoPoint(18.9388, 72.8354)
		require.NoError(t, err)

		query, err := queries.NewCheckDeliveryQuery(&pincode, &point)
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)

		assert.False(t, result.Eligible)
		assert.Greater(t, result.DistanceKm, 1000.0)
		// The directory is never consulted when coordinates are present.
		directory.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("unconstructed_query", func(t *testing.T) {
		directory := new(MockPincodeDirectory)
		handler := queries.NewCheckDeliveryQueryHandler(directory, newTestGeofence(t))

		_, err := handler.Handle(t.Context(), queries.CheckDeliveryQuery{})
		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrCheckDeliveryQueryIsNotConstructed)
	})
}
