package utils

type Metric struct {
	DatabaseRead   chan float64
	DatabaseWrite  chan float64
	EventCreated   chan struct{}
	BookingCreated chan struct{}
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:   make(chan float64),
		DatabaseWrite:  make(chan float64),
		EventCreated:   make(chan struct{}),
		BookingCreated: make(chan struct{}),
	}
}

// Senders drop the sample when no collector is listening, so handlers never
// block on an unstarted metric loop.

func (m *Metric) ObserveDatabaseRead(micros float64) {
	select {
	case m.DatabaseRead <- micros:
	default:
	}
}

func (m *Metric) ObserveDatabaseWrite(micros float64) {
	select {
	case m.DatabaseWrite <- micros:
	default:
	}
}

func (m *Metric) CountEventCreated() {
	select {
	case m.EventCreated <- struct{}{}:
	default:
	}
}

func (m *Metric) CountBookingCreated() {
	select {
	case m.BookingCreated <- struct{}{}:
	default:
	}
}
