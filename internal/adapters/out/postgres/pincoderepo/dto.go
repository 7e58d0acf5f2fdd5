// Package pincoderepo persists the pincode directory: representative
// coordinates per postal pincode, used when a candidate address carries no
// device coordinates of its own.
package pincoderepo

// PincodeDTO represents one directory row.
type PincodeDTO struct {
	Pincode   string `gorm:"primaryKey;size:6"`
	Latitude  float64
	Longitude float64
}

// TableName specifies the database table name for the directory.
func (PincodeDTO) TableName() string {
	return "pincodes"
}
