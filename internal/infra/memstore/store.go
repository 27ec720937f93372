// Package memstore keeps the fulfillment tables in process memory. Transactions run one at a
// time against a private copy of the state and swap it in on commit.
package memstore

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"store-fulfillment/internal/infra"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type productRow struct {
	id    uuid.UUID
	name  string
	price int64
}

type userRow struct {
	id    uuid.UUID
	email string
	role  string
}

type orderRow struct {
	id, userID, productID uuid.UUID
	quantity              int
	amount                int64
	status                string
	deliveryStatus        int
	createdAt, updatedAt  time.Time
	version               int64
}

type lotRow struct {
	id, productID, warehouseID uuid.UUID
	quantity                   int
	version                    int64
}

type recordRow struct {
	id, lotID, orderID   uuid.UUID
	quantity             int
	status               string
	createdAt, updatedAt time.Time
	seq                  int
}

type paymentRow struct {
	id, orderID           uuid.UUID
	amount, transferID    int64
	status                string
	customerID, accountID int64
	createdAt, updatedAt  time.Time
	version               int64
}

type refundRow struct {
	id, orderID        uuid.UUID
	amount, transferID int64
	createdAt          time.Time
}

type deliveryRow struct {
	id, orderID          uuid.UUID
	quantity             int
	address, email       string
	status               int
	nextFireAt           time.Time
	armed                bool
	createdAt, updatedAt time.Time
	version              int64
}

type state struct {
	products   map[uuid.UUID]productRow
	users      map[uuid.UUID]userRow
	orders     map[uuid.UUID]orderRow
	lots       map[uuid.UUID]lotRow
	records    map[uuid.UUID]recordRow
	payments   map[uuid.UUID]paymentRow
	refunds    map[uuid.UUID]refundRow
	deliveries map[uuid.UUID]deliveryRow
	seq        int
}

func newState() *state {
	return &state{
		products:   map[uuid.UUID]productRow{},
		users:      map[uuid.UUID]userRow{},
		orders:     map[uuid.UUID]orderRow{},
		lots:       map[uuid.UUID]lotRow{},
		records:    map[uuid.UUID]recordRow{},
		payments:   map[uuid.UUID]paymentRow{},
		refunds:    map[uuid.UUID]refundRow{},
		deliveries: map[uuid.UUID]deliveryRow{},
	}
}

// Rows are plain values, so a shallow map copy is a full snapshot.
func (s *state) clone() *state {
	return &state{
		products:   maps.Clone(s.products),
		users:      maps.Clone(s.users),
		orders:     maps.Clone(s.orders),
		lots:       maps.Clone(s.lots),
		records:    maps.Clone(s.records),
		payments:   maps.Clone(s.payments),
		refunds:    maps.Clone(s.refunds),
		deliveries: maps.Clone(s.deliveries),
		seq:        s.seq,
	}
}

type Store struct {
	mu    sync.RWMutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

// UnitOfWork returns a shared.UnitOfWork over the store.
func (s *Store) UnitOfWork() shared.UnitOfWork {
	return &memUoW{store: s}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

func (s *Store) write(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

type memUoW struct {
	store *Store
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	work := u.store.state.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		slog.DebugContext(ctx, "in-memory transaction rolled back", "error", err)
		return err
	}
	u.store.state = work
	return nil
}

func (u *memUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.RLock()
	work := u.store.state.clone()
	u.store.mu.RUnlock()
	return fn(ctx, &memTx{st: work})
}

type memTx struct {
	st *state
}

func (t *memTx) Orders() shared.OrderRepository                         { return orderRepo{t.st} }
func (t *memTx) Lots() shared.LotRepository                             { return lotRepo{t.st} }
func (t *memTx) ReservationRecords() shared.ReservationRecordRepository { return recordRepo{t.st} }
func (t *memTx) Payments() shared.PaymentRepository                     { return paymentRepo{t.st} }
func (t *memTx) Refunds() shared.RefundRepository                       { return refundRepo{t.st} }
func (t *memTx) Deliveries() shared.DeliveryRepository                  { return deliveryRepo{t.st} }
func (t *memTx) Reads() shared.CommandReads                             { return catalogReads{t.st} }

func notFound(msg string, sentinel error) error {
	return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, msg, sentinel)
}

func conflict(msg string) error {
	return infra.WrapRepoErr(slog.Default(), infra.KindConflict, msg+": stale version", nil)
}

func duplicate(msg string) error {
	return infra.WrapRepoErr(slog.Default(), infra.KindDuplicateKey, msg, nil)
}
