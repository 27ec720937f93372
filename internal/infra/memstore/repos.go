package memstore

import (
	"context"
	"slices"
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/inventory"
	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type orderRepo struct{ st *state }

func (r orderRepo) Create(_ context.Context, o *order.Order) error {
	if _, ok := r.st.orders[o.ID()]; ok {
		return duplicate("order already exists")
	}
	r.st.orders[o.ID()] = orderRow{
		id:             o.ID(),
		userID:         o.UserID(),
		productID:      o.ProductID(),
		quantity:       o.Quantity(),
		amount:         o.Amount(),
		status:         o.Status().String(),
		deliveryStatus: o.DeliveryStatus().Code(),
		createdAt:      o.CreatedAt(),
		updatedAt:      o.UpdatedAt(),
		version:        o.Version(),
	}
	return nil
}

func (r orderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	row, ok := r.st.orders[id]
	if !ok {
		return nil, notFound("order not found", order.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r orderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*order.Order, error) {
	var rows []orderRow
	for _, row := range r.st.orders {
		if row.userID == userID {
			rows = append(rows, row)
		}
	}
	sortOrdersNewestFirst(rows)
	out := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r orderRepo) Update(_ context.Context, o *order.Order) error {
	row, ok := r.st.orders[o.ID()]
	if !ok || row.version != o.Version() {
		return conflict("failed to update order")
	}
	row.status = o.Status().String()
	row.deliveryStatus = o.DeliveryStatus().Code()
	row.updatedAt = o.UpdatedAt()
	row.version++
	r.st.orders[o.ID()] = row
	return nil
}

func (row orderRow) toDomain() *order.Order {
	return order.ReconstructOrder(row.id, row.userID, row.productID, row.quantity, row.amount,
		order.Status(row.status), delivery.Status(row.deliveryStatus),
		row.createdAt, row.updatedAt, row.version)
}

func sortOrdersNewestFirst(rows []orderRow) {
	slices.SortFunc(rows, func(a, b orderRow) int {
		if c := b.createdAt.Compare(a.createdAt); c != 0 {
			return c
		}
		return compareIDs(b.id, a.id)
	})
}

func compareIDs(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}

type lotRepo struct{ st *state }

func (r lotRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]*inventory.Lot, error) {
	var out []*inventory.Lot
	for _, row := range r.sorted() {
		if row.productID == productID {
			out = append(out, row.toDomain())
		}
	}
	return out, nil
}

func (r lotRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*inventory.Lot, error) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*inventory.Lot
	for _, row := range r.sorted() {
		if _, ok := want[row.id]; ok {
			out = append(out, row.toDomain())
		}
	}
	return out, nil
}

func (r lotRepo) Update(_ context.Context, l *inventory.Lot) error {
	row, ok := r.st.lots[l.ID()]
	if !ok || row.version != l.Version() {
		return conflict("failed to update inventory lot")
	}
	row.quantity = l.Quantity()
	row.version++
	r.st.lots[l.ID()] = row
	return nil
}

func (r lotRepo) sorted() []lotRow {
	rows := make([]lotRow, 0, len(r.st.lots))
	for _, row := range r.st.lots {
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b lotRow) int { return compareIDs(a.id, b.id) })
	return rows
}

func (row lotRow) toDomain() *inventory.Lot {
	return inventory.ReconstructLot(row.id, row.productID, row.warehouseID, row.quantity, row.version)
}

type recordRepo struct{ st *state }

func (r recordRepo) CreateBatch(_ context.Context, records []*inventory.ReservationRecord) error {
	for _, rec := range records {
		if _, ok := r.st.records[rec.ID()]; ok {
			return duplicate("reservation record already exists")
		}
		r.st.seq++
		r.st.records[rec.ID()] = recordRow{
			id:        rec.ID(),
			lotID:     rec.LotID(),
			orderID:   rec.OrderID(),
			quantity:  rec.Quantity(),
			status:    rec.Status().String(),
			createdAt: rec.CreatedAt(),
			updatedAt: rec.UpdatedAt(),
			seq:       r.st.seq,
		}
	}
	return nil
}

func (r recordRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]*inventory.ReservationRecord, error) {
	rows := r.byOrder(orderID)
	out := make([]*inventory.ReservationRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, inventory.ReconstructReservationRecord(row.id, row.lotID, row.orderID,
			row.quantity, inventory.RecordStatus(row.status), row.createdAt, row.updatedAt))
	}
	return out, nil
}

func (r recordRepo) MarkReceived(_ context.Context, rec *inventory.ReservationRecord) error {
	row, ok := r.st.records[rec.ID()]
	if !ok || row.status != inventory.RecordDispatched.String() {
		return conflict("failed to mark reservation record received")
	}
	row.status = inventory.RecordReceived.String()
	row.updatedAt = rec.UpdatedAt()
	r.st.records[rec.ID()] = row
	return nil
}

// byOrder keeps insertion order, which is the allocation order.
func (r recordRepo) byOrder(orderID uuid.UUID) []recordRow {
	var rows []recordRow
	for _, row := range r.st.records {
		if row.orderID == orderID {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b recordRow) int { return a.seq - b.seq })
	return rows
}

type paymentRepo struct{ st *state }

func (r paymentRepo) Create(_ context.Context, p *payment.Payment) error {
	for _, row := range r.st.payments {
		if row.orderID == p.OrderID() {
			return duplicate("order already has a payment")
		}
	}
	r.st.payments[p.ID()] = paymentRow{
		id:         p.ID(),
		orderID:    p.OrderID(),
		amount:     p.Amount(),
		transferID: p.TransferID(),
		status:     p.Status().String(),
		customerID: p.From().CustomerID,
		accountID:  p.From().AccountID,
		createdAt:  p.CreatedAt(),
		updatedAt:  p.UpdatedAt(),
		version:    p.Version(),
	}
	return nil
}

func (r paymentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	row, ok := r.st.paymentByOrder(orderID)
	if !ok {
		return nil, notFound("payment not found", payment.ErrNotFound)
	}
	return payment.ReconstructPayment(row.id, row.orderID, row.amount, payment.Status(row.status),
		row.transferID, payment.Account{CustomerID: row.customerID, AccountID: row.accountID},
		row.createdAt, row.updatedAt, row.version), nil
}

func (r paymentRepo) Update(_ context.Context, p *payment.Payment) error {
	row, ok := r.st.payments[p.ID()]
	if !ok || row.version != p.Version() {
		return conflict("failed to update payment")
	}
	row.status = p.Status().String()
	row.updatedAt = p.UpdatedAt()
	row.version++
	r.st.payments[p.ID()] = row
	return nil
}

func (r paymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.st.payments[id]; !ok {
		return notFound("payment not found", payment.ErrNotFound)
	}
	delete(r.st.payments, id)
	return nil
}

func (s *state) paymentByOrder(orderID uuid.UUID) (paymentRow, bool) {
	for _, row := range s.payments {
		if row.orderID == orderID {
			return row, true
		}
	}
	return paymentRow{}, false
}

func (s *state) refundByOrder(orderID uuid.UUID) (refundRow, bool) {
	for _, row := range s.refunds {
		if row.orderID == orderID {
			return row, true
		}
	}
	return refundRow{}, false
}

type refundRepo struct{ st *state }

func (r refundRepo) Create(_ context.Context, ref *payment.Refund) error {
	if _, ok := r.st.refundByOrder(ref.OrderID()); ok {
		return duplicate("order already has a refund")
	}
	r.st.refunds[ref.ID()] = refundRow{
		id:         ref.ID(),
		orderID:    ref.OrderID(),
		amount:     ref.Amount(),
		transferID: ref.TransferID(),
		createdAt:  ref.CreatedAt(),
	}
	return nil
}

func (r refundRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*payment.Refund, error) {
	row, ok := r.st.refundByOrder(orderID)
	if !ok {
		return nil, notFound("refund not found", payment.ErrRefundNotFound)
	}
	return payment.ReconstructRefund(row.id, row.orderID, row.amount, row.transferID, row.createdAt), nil
}

type deliveryRepo struct{ st *state }

func (r deliveryRepo) Create(_ context.Context, d *delivery.Delivery) error {
	if _, ok := r.st.deliveryByOrder(d.OrderID()); ok {
		return duplicate("order already has a delivery")
	}
	row := deliveryRow{
		id:        d.ID(),
		orderID:   d.OrderID(),
		quantity:  d.Quantity(),
		address:   d.Address(),
		email:     d.Email().Value(),
		status:    d.Status().Code(),
		createdAt: d.CreatedAt(),
		updatedAt: d.UpdatedAt(),
		version:   d.Version(),
	}
	row.setNextFire(d.NextFireAt())
	r.st.deliveries[d.ID()] = row
	return nil
}

func (r deliveryRepo) FindByID(_ context.Context, id uuid.UUID) (*delivery.Delivery, error) {
	row, ok := r.st.deliveries[id]
	if !ok {
		return nil, notFound("delivery not found", delivery.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r deliveryRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*delivery.Delivery, error) {
	row, ok := r.st.deliveryByOrder(orderID)
	if !ok {
		return nil, notFound("delivery not found", delivery.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r deliveryRepo) Update(_ context.Context, d *delivery.Delivery) error {
	row, ok := r.st.deliveries[d.ID()]
	if !ok || row.version != d.Version() {
		return conflict("failed to update delivery")
	}
	row.quantity = d.Quantity()
	row.status = d.Status().Code()
	row.setNextFire(d.NextFireAt())
	row.updatedAt = d.UpdatedAt()
	row.version++
	r.st.deliveries[d.ID()] = row
	return nil
}

func (r deliveryRepo) ListDue(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	var due []deliveryRow
	for _, row := range r.st.deliveries {
		if row.armed && !row.nextFireAt.After(now) {
			due = append(due, row)
		}
	}
	slices.SortFunc(due, func(a, b deliveryRow) int {
		if c := a.nextFireAt.Compare(b.nextFireAt); c != 0 {
			return c
		}
		return compareIDs(a.id, b.id)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	ids := make([]uuid.UUID, 0, len(due))
	for _, row := range due {
		ids = append(ids, row.id)
	}
	return ids, nil
}

func (s *state) deliveryByOrder(orderID uuid.UUID) (deliveryRow, bool) {
	for _, row := range s.deliveries {
		if row.orderID == orderID {
			return row, true
		}
	}
	return deliveryRow{}, false
}

func (row *deliveryRow) setNextFire(t *time.Time) {
	if t == nil {
		row.nextFireAt, row.armed = time.Time{}, false
		return
	}
	row.nextFireAt, row.armed = *t, true
}

func (row deliveryRow) toDomain() *delivery.Delivery {
	var next *time.Time
	if row.armed {
		t := row.nextFireAt
		next = &t
	}
	// Emails are validated on the way in.
	email, _ := user.NewEmail(row.email)
	return delivery.ReconstructDelivery(row.id, row.orderID, row.quantity, row.address, email,
		delivery.Status(row.status), next, row.createdAt, row.updatedAt, row.version)
}

type catalogReads struct{ st *state }

func (r catalogReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	row, ok := r.st.products[id]
	if !ok {
		return nil, notFound("product not found", shared.ErrProductNotFound)
	}
	return &shared.ProductSnapshot{ID: row.id, Name: row.name, UnitPriceCents: row.price}, nil
}

func (r catalogReads) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	row, ok := r.st.users[id]
	if !ok {
		return nil, notFound("user not found", user.ErrNotFound)
	}
	email, _ := user.NewEmail(row.email)
	return user.ReconstructUser(row.id, email, user.Role(row.role)), nil
}
