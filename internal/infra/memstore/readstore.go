package memstore

import (
	"context"
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

// OrderReadStore serves order views straight from the committed state.
type OrderReadStore struct {
	store *Store
}

func NewOrderReadStore(s *Store) *OrderReadStore {
	return &OrderReadStore{store: s}
}

func (r *OrderReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var (
		ov  *queries.OrderView
		err error
	)
	r.store.read(func(st *state) {
		row, ok := st.orders[id]
		if !ok {
			err = notFound("order not found", order.ErrNotFound)
			return
		}
		ov = st.orderView(row)
	})
	return ov, err
}

func (r *OrderReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	return r.page(userID, func(orderRow) bool { return true }, limit), nil
}

func (r *OrderReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	after := func(row orderRow) bool {
		// Cursors carry microseconds, as the database does.
		created := row.createdAt.Truncate(time.Microsecond)
		if c := created.Compare(lastCreatedAt); c != 0 {
			return c < 0
		}
		return compareIDs(row.id, lastID) < 0
	}
	return r.page(userID, after, limit), nil
}

func (r *OrderReadStore) page(userID uuid.UUID, keep func(orderRow) bool, limit int32) []*queries.OrderView {
	var out []*queries.OrderView
	r.store.read(func(st *state) {
		var rows []orderRow
		for _, row := range st.orders {
			if row.userID == userID && keep(row) {
				rows = append(rows, row)
			}
		}
		sortOrdersNewestFirst(rows)
		if limit > 0 && len(rows) > int(limit) {
			rows = rows[:limit]
		}
		out = make([]*queries.OrderView, 0, len(rows))
		for _, row := range rows {
			out = append(out, st.orderView(row))
		}
	})
	return out
}

func (r *OrderReadStore) ListReservations(_ context.Context, orderID uuid.UUID) ([]*queries.ReservationRecordView, error) {
	var out []*queries.ReservationRecordView
	r.store.read(func(st *state) {
		for _, row := range (recordRepo{st}).byOrder(orderID) {
			out = append(out, &queries.ReservationRecordView{
				ID:          row.id,
				OrderID:     row.orderID,
				LotID:       row.lotID,
				WarehouseID: st.lots[row.lotID].warehouseID,
				Quantity:    row.quantity,
				Status:      row.status,
				CreatedAt:   row.createdAt,
				UpdatedAt:   row.updatedAt,
			})
		}
	})
	return out, nil
}

func (r *OrderReadStore) FindPaymentByOrderID(_ context.Context, orderID uuid.UUID) (*queries.PaymentView, error) {
	var (
		pv  *queries.PaymentView
		err error
	)
	r.store.read(func(st *state) {
		row, ok := st.paymentByOrder(orderID)
		if !ok {
			err = notFound("payment not found", payment.ErrNotFound)
			return
		}
		pv = &queries.PaymentView{
			ID:             row.id,
			OrderID:        row.orderID,
			UserID:         st.orders[row.orderID].userID,
			AmountCents:    row.amount,
			Status:         row.status,
			TransferID:     row.transferID,
			FromCustomerID: row.customerID,
			FromAccountID:  row.accountID,
			CreatedAt:      row.createdAt,
		}
		if ref, ok := st.refundByOrder(orderID); ok {
			pv.Refund = &queries.RefundView{
				ID:          ref.id,
				AmountCents: ref.amount,
				TransferID:  ref.transferID,
				CreatedAt:   ref.createdAt,
			}
		}
	})
	return pv, err
}

func (s *state) orderView(row orderRow) *queries.OrderView {
	ds := delivery.Status(row.deliveryStatus)
	return &queries.OrderView{
		ID:                 row.id,
		UserID:             row.userID,
		ProductID:          row.productID,
		ProductName:        s.products[row.productID].name,
		Quantity:           row.quantity,
		AmountCents:        row.amount,
		Status:             row.status,
		DeliveryStatus:     ds.String(),
		DeliveryStatusCode: ds.Code(),
		CreatedAt:          row.createdAt,
		UpdatedAt:          row.updatedAt,
	}
}

type DeliveryReadStore struct {
	store *Store
}

func NewDeliveryReadStore(s *Store) *DeliveryReadStore {
	return &DeliveryReadStore{store: s}
}

func (r *DeliveryReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.DeliveryView, error) {
	var (
		dv  *queries.DeliveryView
		err error
	)
	r.store.read(func(st *state) {
		row, ok := st.deliveries[id]
		if !ok {
			err = notFound("delivery not found", delivery.ErrNotFound)
			return
		}
		d := row.toDomain()
		dv = &queries.DeliveryView{
			ID:         d.ID(),
			OrderID:    d.OrderID(),
			Quantity:   d.Quantity(),
			Address:    d.Address(),
			Email:      row.email,
			Status:     d.Status().String(),
			StatusCode: d.Status().Code(),
			NextFireAt: d.NextFireAt(),
			CreatedAt:  d.CreatedAt(),
			UpdatedAt:  d.UpdatedAt(),
		}
	})
	return dv, err
}
