package diagnostics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Kind classifies a data-quality event observed during a calculation.
type Kind string

const (
	// KindUnknownUnit is emitted when a unit symbol is not in the conversion
	// table and the identity fallback was used.
	KindUnknownUnit Kind = "unknown_unit"
	// KindCrossCategory is emitted when a conversion crosses unit categories
	// (e.g. weight to volume) and proceeded anyway.
	KindCrossCategory Kind = "cross_category_conversion"
	// KindUnitMismatchSplit is emitted when the aggregator refused to merge
	// two quantities of the same ingredient recorded in incompatible units.
	KindUnitMismatchSplit Kind = "unit_mismatch_split"
)

// Event is one observable data-quality condition. Events never abort a
// calculation; they exist so callers can alert on bad upstream data.
type Event struct {
	Kind       Kind
	Unit       string
	OtherUnit  string
	Ingredient string
	Detail     string
}

// Recorder receives events from the engine packages.
type Recorder interface {
	Record(Event)
}

// Prometheus collectors for process-wide visibility. The surrounding
// application mounts these on its metrics endpoint.
var (
	unknownUnitLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kitchen_unknown_unit_lookups_total",
			Help: "Unit symbols looked up but missing from the conversion table",
		},
		[]string{"unit"},
	)

	unitMismatchSplits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kitchen_unit_mismatch_splits_total",
			Help: "Aggregation rows split because units were incompatible",
		},
	)

	crossCategoryConversions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kitchen_cross_category_conversions_total",
			Help: "Conversions performed across unit categories",
		},
	)

	aggregationRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kitchen_aggregation_runs_total",
			Help: "Completed ingredient aggregation runs",
		},
	)
)

// Register attaches the diagnostics collectors to a Prometheus registry.
func Register(registry *prometheus.Registry) error {
	for _, c := range []prometheus.Collector{
		unknownUnitLookups,
		unitMismatchSplits,
		crossCategoryConversions,
		aggregationRuns,
	} {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// CountAggregationRun increments the run counter.
func CountAggregationRun() {
	aggregationRuns.Inc()
}

// Collector is the default Recorder: it keeps an audit list of events for
// the current run, logs each at warning level, and feeds the Prometheus
// counters above.
type Collector struct {
	mu     sync.Mutex
	events []Event
	logger *zap.Logger
}

// NewCollector creates a Collector. A nil logger disables logging but still
// collects and counts events.
func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{logger: logger}
}

// Record implements Recorder.
func (c *Collector) Record(ev Event) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()

	switch ev.Kind {
	case KindUnknownUnit:
		unknownUnitLookups.WithLabelValues(ev.Unit).Inc()
	case KindCrossCategory:
		crossCategoryConversions.Inc()
	case KindUnitMismatchSplit:
		unitMismatchSplits.Inc()
	}

	c.logger.Warn("data quality event",
		zap.String("kind", string(ev.Kind)),
		zap.String("unit", ev.Unit),
		zap.String("other_unit", ev.OtherUnit),
		zap.String("ingredient", ev.Ingredient),
		zap.String("detail", ev.Detail),
	)
}

// Events returns a copy of the events recorded so far.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Reset clears the audit list. Counters are cumulative and are not reset.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

type nopRecorder struct{}

func (nopRecorder) Record(Event) {}

// Nop returns a Recorder that discards everything.
func Nop() Recorder {
	return nopRecorder{}
}
