package address_test

import (
	"testing"

	"grocery/internal/core/domain/model/address"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPincode(t *testing.T) kernel.Pincode {
	t.Helper()
	pin, err := kernel.NewPincode("208007")
	require.NoError(t, err)
	return pin
}

func TestNewAddress(t *testing.T) {
	t.Run("valid_address_without_coordinates", func(t *testing.T) {
		addr, err := address.NewAddress("12 Mall Road", "Kanpur", "Uttar Pradesh", validPincode(t), "near clock tower", nil)

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.Equal(t, "12 Mall Road", addr.Street())
		assert.Equal(t, "Kanpur", addr.City())
		assert.Equal(t, "Uttar Pradesh", addr.State())
		assert.Equal(t, "208007", addr.Pincode().String())
		assert.Equal(t, "near clock tower", addr.Landmark())
		assert.Nil(t, addr.Coordinates())
	})

	t.Run("valid_address_with_coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(26.4499, 80.3319)
		require.NoError(t, err)

		addr, err := address.NewAddress("12 Mall Road", "Kanpur", "", validPincode(t), "", &point)

		require.NoError(t, err)
		require.NotNil(t, addr.Coordinates())
		assert.InEpsilon(t, 26.4499, addr.Coordinates().Latitude(), 1e-9)
	})

	t.Run("street_is_required", func(t *testing.T) {
		_, err := address.NewAddress("", "Kanpur", "", validPincode(t), "", nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("city_is_required", func(t *testing.T) {
		_, err := address.NewAddress("12 Mall Road", "", "", validPincode(t), "", nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unconstructed_pincode_is_rejected", func(t *testing.T) {
		var pin kernel.Pincode

		_, err := address.NewAddress("12 Mall Road", "Kanpur", "", pin, "", nil)

		require.Error(t, err)
	})

	t.Run("unconstructed_coordinates_are_rejected", func(t *testing.T) {
		var point kernel.GeoPoint

		_, err := address.NewAddress("12 Mall Road", "Kanpur", "", validPincode(t), "", &point)

		require.Error(t, err)
	})
}

func TestAddress_Validate(t *testing.T) {
	var addr address.Address

	err := addr.Validate()

	require.Error(t, err)
	assert.Equal(t, address.ErrAddressIsNotConstructed, err)
}

func TestAddress_FullAddress(t *testing.T) {
	t.Run("with_state", func(t *testing.T) {
		addr, err := address.NewAddress("12 Mall Road", "Kanpur", "Uttar Pradesh", validPincode(t), "", nil)
		require.NoError(t, err)

		assert.Equal(t, "12 Mall Road, Kanpur, Uttar Pradesh - 208007", addr.FullAddress())
	})

	t.Run("without_state", func(t *testing.T) {
		addr, err := address.NewAddress("12 Mall Road", "Kanpur", "", validPincode(t), "", nil)
		require.NoError(t, err)

		assert.Equal(t, "12 Mall Road, Kanpur - 208007", addr.FullAddress())
	})
}

func TestAddress_CoordinatesAreCopied(t *testing.T) {
	point, err := kernel.NewGeoPoint(26.4499, 80.3319)
	require.NoError(t, err)

	addr, err := address.NewAddress("12 Mall Road", "Kanpur", "", validPincode(t), "", &point)
	require.NoError(t, err)

	first := addr.Coordinates()
	second := addr.Coordinates()
	assert.NotSame(t, first, second)
}
