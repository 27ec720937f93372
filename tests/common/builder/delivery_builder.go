//go:build unit || e2e

package builder

import (
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/user"

	"github.com/google/uuid"
)

type DeliveryBuilder struct {
	OrderID  uuid.UUID
	Quantity int
	Address  string
	Email    string
	Now      time.Time
	Schedule delivery.Schedule
}

func NewDeliveryBuilder() *DeliveryBuilder {
	return &DeliveryBuilder{
		OrderID:  uuid.New(),
		Quantity: 100,
		Address:  "1 George St, Sydney",
		Email:    "customer@example.com",
		Now:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Schedule: DefaultSchedule(),
	}
}

// DefaultSchedule is the 20/5/5 unit schedule with one second units.
func DefaultSchedule() delivery.Schedule {
	return delivery.Schedule{
		Pickup:     20 * time.Second,
		Delivering: 5 * time.Second,
		Complete:   5 * time.Second,
	}
}

func (d *DeliveryBuilder) With(mutate func(*DeliveryBuilder)) *DeliveryBuilder {
	mutate(d)
	return d
}

func (d *DeliveryBuilder) BuildDomain() (*delivery.Delivery, error) {
	email, err := user.NewEmail(d.Email)
	if err != nil {
		return nil, err
	}
	return delivery.NewDelivery(d.OrderID, d.Quantity, d.Address, email, d.Now, d.Schedule)
}

func (d *DeliveryBuilder) WithOrderID(id uuid.UUID) *DeliveryBuilder {
	d.OrderID = id
	return d
}

func (d *DeliveryBuilder) WithQuantity(q int) *DeliveryBuilder {
	d.Quantity = q
	return d
}

func (d *DeliveryBuilder) WithAddress(address string) *DeliveryBuilder {
	d.Address = address
	return d
}

func (d *DeliveryBuilder) WithEmail(email string) *DeliveryBuilder {
	d.Email = email
	return d
}

func (d *DeliveryBuilder) WithNow(now time.Time) *DeliveryBuilder {
	d.Now = now
	return d
}
