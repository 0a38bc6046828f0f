package persistence

import (
	"context"

	"github.com/gestor/backend/internal/domain/geo"
	"gorm.io/gorm"
)

// customerAddressRow is a narrow projection of the customers table. The region
// engine only reads neighborhood names from it; the full customer record is
// owned elsewhere.
type customerAddressRow struct {
	Neighborhood string `gorm:"type:varchar(120)"`
}

// TableName returns the table name for the projection
func (customerAddressRow) TableName() string {
	return "customers"
}

// CustomerAddressSource implements geo.CustomerAddressSource over the
// customers table
type CustomerAddressSource struct {
	db *gorm.DB
}

// NewCustomerAddressSource creates a new customer address source
func NewCustomerAddressSource(db *gorm.DB) *CustomerAddressSource {
	return &CustomerAddressSource{db: db}
}

// ListNeighborhoodNames returns the distinct, non-empty neighborhood names
// present on customer addresses
func (s *CustomerAddressSource) ListNeighborhoodNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&customerAddressRow{}).
		Distinct("neighborhood").
		Where("neighborhood IS NOT NULL AND neighborhood <> ''").
		Order("neighborhood ASC").
		Pluck("neighborhood", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Ensure CustomerAddressSource implements the interface
var _ geo.CustomerAddressSource = (*CustomerAddressSource)(nil)
