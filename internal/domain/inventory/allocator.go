package inventory

import (
	"bytes"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Allocation is the quantity one reservation takes from one lot.
type Allocation struct {
	Lot      *Lot
	Quantity int
}

func TotalQuantity(lots []*Lot) int {
	total := 0
	for _, l := range lots {
		total += l.quantity
	}
	return total
}

// Plan walks lots largest first and takes min(lot, remaining) from each until the requirement
// is met. Ties are broken by lot id so the same stock always yields the same plan. Lots are
// not mutated.
func Plan(lots []*Lot, required int) ([]Allocation, error) {
	if required <= 0 {
		return nil, ErrInvalidQuantity
	}
	if TotalQuantity(lots) < required {
		return nil, ErrInsufficientStock
	}

	ordered := slices.Clone(lots)
	slices.SortStableFunc(ordered, func(a, b *Lot) int {
		if a.quantity != b.quantity {
			return b.quantity - a.quantity
		}
		return bytes.Compare(a.id[:], b.id[:])
	})

	remaining := required
	plan := make([]Allocation, 0, len(ordered))
	for _, l := range ordered {
		if remaining == 0 {
			break
		}
		if l.quantity == 0 {
			continue
		}
		take := min(l.quantity, remaining)
		plan = append(plan, Allocation{Lot: l, Quantity: take})
		remaining -= take
	}
	return plan, nil
}

// Reserve plans the allocation, decrements the touched lots and returns one DISPATCHED record
// per lot. Nothing is mutated when stock is insufficient.
func Reserve(lots []*Lot, required int, orderID uuid.UUID, now time.Time) ([]*ReservationRecord, error) {
	plan, err := Plan(lots, required)
	if err != nil {
		return nil, err
	}

	records := make([]*ReservationRecord, 0, len(plan))
	for _, a := range plan {
		if err := a.Lot.take(a.Quantity); err != nil {
			return nil, err
		}
		records = append(records, &ReservationRecord{
			id:        uuid.New(),
			lotID:     a.Lot.id,
			orderID:   orderID,
			quantity:  a.Quantity,
			status:    RecordDispatched,
			createdAt: now,
			updatedAt: now,
		})
	}
	return records, nil
}

// Restore credits every still-DISPATCHED record back to its lot and marks it RECEIVED.
// Records already RECEIVED are skipped. It returns the records it flipped.
func Restore(records []*ReservationRecord, lots map[uuid.UUID]*Lot, now time.Time) ([]*ReservationRecord, error) {
	restored := make([]*ReservationRecord, 0, len(records))
	for _, r := range records {
		if r.IsReceived() {
			continue
		}
		lot, ok := lots[r.lotID]
		if !ok {
			return nil, ErrLotNotFound
		}
		if err := lot.Credit(r.quantity); err != nil {
			return nil, err
		}
		if err := r.Receive(now); err != nil {
			return nil, err
		}
		restored = append(restored, r)
	}
	return restored, nil
}
