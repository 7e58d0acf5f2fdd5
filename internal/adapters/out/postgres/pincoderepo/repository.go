package pincoderepo

import (
	"context"
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPincodeDirectory implements PincodeDirectory using GORM. The directory
// is reference data, not an aggregate; it lives outside the unit of work.
type GormPincodeDirectory struct {
	db *gorm.DB
}

// NewGormPincodeDirectory creates a new GORM pincode directory.
func NewGormPincodeDirectory(db *gorm.DB) *GormPincodeDirectory {
	return &GormPincodeDirectory{db: db}
}

// Lookup resolves a pincode to its representative coordinates.
func (r *GormPincodeDirectory) Lookup(ctx context.Context, pincode kernel.Pincode) (kernel.GeoPoint, error) {
	if err := pincode.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	var dto PincodeDTO
	if err := r.db.WithContext(ctx).First(&dto, "pincode = ?", pincode.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.GeoPoint{}, errs.NewObjectNotFoundError("pincode", pincode.String())
		}
		return kernel.GeoPoint{}, err
	}

	return kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
}

// Add records or replaces the coordinates for a pincode.
func (r *GormPincodeDirectory) Add(ctx context.Context, pincode kernel.Pincode, point kernel.GeoPoint) error {
	if err := errors.Join(pincode.Validate(), point.Validate()); err != nil {
		return err
	}

	dto := PincodeDTO{
		Pincode:   pincode.String(),
		Latitude:  point.Latitude(),
		Longitude: point.Longitude(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pincode"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
