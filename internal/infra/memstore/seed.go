package memstore

import (
	"store-fulfillment/internal/domain/inventory"
	"store-fulfillment/internal/domain/user"

	"github.com/google/uuid"
)

// Catalog data is owned elsewhere; these helpers stand in for it.

func (s *Store) AddProduct(name string, unitPriceCents int64) uuid.UUID {
	id := uuid.New()
	s.write(func(st *state) {
		st.products[id] = productRow{id: id, name: name, price: unitPriceCents}
	})
	return id
}

func (s *Store) AddUser(email user.Email, role user.Role) uuid.UUID {
	id := uuid.New()
	s.write(func(st *state) {
		st.users[id] = userRow{id: id, email: email.Value(), role: role.String()}
	})
	return id
}

func (s *Store) AddLot(l *inventory.Lot) {
	s.write(func(st *state) {
		st.lots[l.ID()] = lotRow{
			id:          l.ID(),
			productID:   l.ProductID(),
			warehouseID: l.WarehouseID(),
			quantity:    l.Quantity(),
			version:     l.Version(),
		}
	})
}

// LotQuantity reports the committed quantity of a lot, or -1 when it does not exist.
func (s *Store) LotQuantity(id uuid.UUID) int {
	q := -1
	s.read(func(st *state) {
		if row, ok := st.lots[id]; ok {
			q = row.quantity
		}
	})
	return q
}

// ProductStock sums the committed quantity over every lot of a product.
func (s *Store) ProductStock(productID uuid.UUID) int {
	total := 0
	s.read(func(st *state) {
		for _, row := range st.lots {
			if row.productID == productID {
				total += row.quantity
			}
		}
	})
	return total
}
