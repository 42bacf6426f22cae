package brewery

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes a run's tallies as Prometheus metrics. Each Collector owns
// its registry, so concurrent simulations never share series. A nil
// *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	// taproom
	unitsSold prometheus.Counter
	sales     prometheus.Counter
	lostSales prometheus.Counter
	profit    prometheus.Gauge

	// production
	batches      *prometheus.CounterVec // by outcome: started, packaged, abandoned
	tankMisses   prometheus.Counter
	cycleDays    prometheus.Histogram
	resourceWait *prometheus.CounterVec // by resource
	restocks     prometheus.Counter

	// state
	storeLevel *prometheus.GaugeVec // by store
	clock      prometheus.Gauge
}

// NewCollector creates a collector with a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		unitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "brewsim_units_sold_total",
			Help: "Pints sold in the taproom",
		}),
		sales: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "brewsim_sales_total",
			Help: "Taproom days with a fulfilled order",
		}),
		lostSales: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "brewsim_lost_sales_total",
			Help: "Taproom orders lost to insufficient stock",
		}),
		profit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "brewsim_profit",
			Help: "Cumulative taproom revenue",
		}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "brewsim_batches_total",
			Help: "Batches by outcome",
		}, []string{"outcome"}),
		tankMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "brewsim_tank_misses_total",
			Help: "Tank scans that found no free fermentation tank",
		}),
		cycleDays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "brewsim_cycle_days",
			Help:    "Days from kettle request to packaging",
			Buckets: []float64{5, 10, 15, 20, 25, 30, 40, 60, 90},
		}),
		resourceWait: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "brewsim_resource_waits_total",
			Help: "Arrivals that found a resource or store unable to serve them",
		}, []string{"resource"}),
		restocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "brewsim_grain_restocks_total",
			Help: "Grain purchases placed by the inventory manager",
		}),
		storeLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "brewsim_store_level",
			Help: "Current level of each store",
		}, []string{"store"}),
		clock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "brewsim_clock_days",
			Help: "Virtual time of the last update",
		}),
	}
	c.registry.MustRegister(
		c.unitsSold, c.sales, c.lostSales, c.profit,
		c.batches, c.tankMisses, c.cycleDays, c.resourceWait, c.restocks,
		c.storeLevel, c.clock,
	)
	return c
}

// Registry returns the collector's registry for scraping or export.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes the current metrics in Prometheus text format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

func (c *Collector) observeSale(units int, profit float64) {
	if c == nil {
		return
	}
	c.sales.Inc()
	c.unitsSold.Add(float64(units))
	c.profit.Set(profit)
}

func (c *Collector) observeLostSale() {
	if c == nil {
		return
	}
	c.lostSales.Inc()
}

func (c *Collector) observeBatch(outcome string) {
	if c == nil {
		return
	}
	c.batches.WithLabelValues(outcome).Inc()
}

func (c *Collector) observeCycle(days float64) {
	if c == nil {
		return
	}
	c.cycleDays.Observe(days)
}

func (c *Collector) observeTankMiss() {
	if c == nil {
		return
	}
	c.tankMisses.Inc()
}

func (c *Collector) observeWait(resource string) {
	if c == nil {
		return
	}
	c.resourceWait.WithLabelValues(resource).Inc()
}

func (c *Collector) observeRestock() {
	if c == nil {
		return
	}
	c.restocks.Inc()
}

func (c *Collector) observeLevel(store string, level, now float64) {
	if c == nil {
		return
	}
	c.storeLevel.WithLabelValues(store).Set(level)
	c.clock.Set(now)
}
