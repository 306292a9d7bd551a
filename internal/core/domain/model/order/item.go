package order

import (
	"errors"
	"fmt"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/errs"
	"oshxona/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line: a product reference with quantity, unit price and the
// kitchen preparation time used by the delivery estimator. The line total is
// derived, never stored independently.
type Item struct { //nolint:recvcheck //using for validation
	productID          kernel.UUID
	name               string
	quantity           int
	unitPrice          int64
	preparationMinutes int

	guard guard.ConstructorGuard
}

// NewItem creates an order line. Quantity must be positive, unit price and
// preparation time non-negative.
func NewItem(productID kernel.UUID, name string, quantity int, unitPrice int64, preparationMinutes int) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setPreparationMinutes(preparationMinutes),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate checks if the Item was properly constructed via NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the referenced product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name captured at order time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit in the smallest currency unit.
func (i Item) UnitPrice() int64 {
	return i.unitPrice
}

// PreparationMinutes returns the kitchen preparation time for one line.
func (i Item) PreparationMinutes() int {
	return i.preparationMinutes
}

// LineTotal returns the derived line total: unit price times quantity.
func (i Item) LineTotal() int64 {
	return i.unitPrice * int64(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setPreparationMinutes(preparationMinutes int) error {
	if preparationMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("preparationMinutes",
			fmt.Errorf("%d is negative", preparationMinutes))
	}
	i.preparationMinutes = preparationMinutes
	return nil
}
