package storage

import (
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/booking"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/outbox"
)

// Store is what the service needs from a backend: holds, appointments and the
// event outbox they write to.
type Store interface {
	booking.Store
	outbox.Store
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*BookingRepository)(nil)
)
