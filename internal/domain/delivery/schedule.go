package delivery

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	AccidentNone = "none"
	AccidentLoss = "Lost 5% of the products"
)

// Schedule holds the delay before each firing, measured from the previous firing's due time.
type Schedule struct {
	Pickup     time.Duration
	Delivering time.Duration
	Complete   time.Duration
}

func (s Schedule) delayBefore(target Status) time.Duration {
	switch target {
	case StatusPickup:
		return s.Pickup
	case StatusDelivering:
		return s.Delivering
	case StatusCompleted:
		return s.Complete
	default:
		return 0
	}
}

type AccidentRoller interface {
	Roll() bool
}

type RandomRoller struct {
	mu   sync.Mutex
	rate float64
	rng  *rand.Rand
}

func NewRandomRoller(rate float64, seed uint64) *RandomRoller {
	return &RandomRoller{
		rate: rate,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (r *RandomRoller) Roll() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < r.rate
}

// FixedRoller returns a fixed sequence of draws, then false forever.
type FixedRoller struct {
	mu    sync.Mutex
	draws []bool
}

func NewFixedRoller(draws ...bool) *FixedRoller {
	return &FixedRoller{draws: draws}
}

func (r *FixedRoller) Roll() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.draws) == 0 {
		return false
	}
	d := r.draws[0]
	r.draws = r.draws[1:]
	return d
}

// lose applies the accident loss with integer truncation.
func lose(quantity int) int {
	return quantity * 95 / 100
}
