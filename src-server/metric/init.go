package metric

import (
	"log/slog"
	"time"

	"devents/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	databaseEmptyRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "devents_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseEmptyRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register devents_database_empty_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("devents_database_empty_read_microsec metric registered")
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseEmptyRead) {
				case true:
					slog.Debug("devents_database_empty_read_microsec metric unregistered")
				case false:
					slog.Warn("devents_database_empty_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func databaseRead(as *utils.AppState, clearTickerInterval *time.Duration) {
	databaseRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "devents_database_read_microsec",
		Help: "The latency of a database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register devents_database_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("devents_database_read_microsec metric registered")
		databaseRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseRead) {
				case true:
					slog.Debug("devents_database_read_microsec metric unregistered")
				case false:
					slog.Warn("devents_database_read_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.DatabaseRead:
				databaseRead.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				databaseRead.Set(0)
			}
		}
	}()
}

func databaseWrite(as *utils.AppState, clearTickerInterval *time.Duration) {
	databaseWrite := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "devents_database_write_microsec",
		Help: "The latency of a database write in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseWrite); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register devents_database_write_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("devents_database_write_microsec metric registered")
		databaseWrite.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseWrite) {
				case true:
					slog.Debug("devents_database_write_microsec metric unregistered")
				case false:
					slog.Warn("devents_database_write_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.DatabaseWrite:
				databaseWrite.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				databaseWrite.Set(0)
			}
		}
	}()
}

func recordsCreated(as *utils.AppState) {
	eventsCreated := promauto.NewCounter(prometheus.CounterOpts{
		Name: "devents_events_created_total",
		Help: "The number of events created since the app started",
	})
	bookingsCreated := promauto.NewCounter(prometheus.CounterOpts{
		Name: "devents_bookings_created_total",
		Help: "The number of bookings created since the app started",
	})
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				prometheus.Unregister(eventsCreated)
				prometheus.Unregister(bookingsCreated)
				return
			case <-as.MetricChans.EventCreated:
				eventsCreated.Inc()
			case <-as.MetricChans.BookingCreated:
				bookingsCreated.Inc()
			}
		}
	}()
}

func Init(as *utils.AppState) {
	emptyReadInterval := 5 * time.Minute
	clearInterval := 15 * time.Second

	databaseEmptyRead(as, &emptyReadInterval)
	databaseRead(as, &clearInterval)
	databaseWrite(as, &clearInterval)
	recordsCreated(as)
}
