package catalog

import (
	"strings"
	"time"

	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable product in the storefront catalog.
// Quantity is denormalized stock (sum of batch remainders) and is written
// only by the inventory stock service; order logic touches Sold only.
type Product struct {
	shared.BaseEntity
	CategoryID  *uuid.UUID
	Name        string
	Description string
	Unit        string // selling unit, e.g. "kg", "bundle", "crate"
	Origin      string // growing region, displayed on the storefront
	Price       decimal.Decimal
	Quantity    decimal.Decimal // denormalized: sum of batch remaining quantities
	Sold        decimal.Decimal // cumulative units in completed orders
	Active      bool
}

// NewProduct creates a new product
func NewProduct(name, unit string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Unit:       unit,
		Price:      price,
		Quantity:   decimal.Zero,
		Sold:       decimal.Zero,
		Active:     true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, origin string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Origin = origin
	p.UpdatedAt = time.Now()

	return nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
}

// SetQuantity overwrites the denormalized stock quantity.
// Only the inventory stock service may call this.
func (p *Product) SetQuantity(quantity decimal.Decimal) {
	if quantity.IsNegative() {
		quantity = decimal.Zero
	}
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
}

// AddSold increments the cumulative sold counter
func (p *Product) AddSold(quantity decimal.Decimal) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return
	}
	p.Sold = p.Sold.Add(quantity)
	p.UpdatedAt = time.Now()
}

// Activate makes the product visible on the storefront
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// InStock returns true if the denormalized quantity is positive
func (p *Product) InStock() bool {
	return p.Quantity.GreaterThan(decimal.Zero)
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
