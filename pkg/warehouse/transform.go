package warehouse

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alitto/pond/v2"
	"github.com/jonboulle/clockwork"

	"github.com/sousselabs/storelake/pkg/source"
)

// RunSummary aggregates per-order outcomes of a transformation run.
type RunSummary struct {
	OrdersTotal             int
	OrdersEmitted           int
	OrdersSkippedNoCustomer int
	OrdersSkippedNoItems    int
	ItemsEmitted            int
	ItemsSkippedNoProduct   int
	LocationFallbacks       int
}

type Config struct {
	Logger *slog.Logger
	Clock  clockwork.Clock

	// MaxConcurrency bounds how many dimension builders run at once.
	// Values below 2 keep the reference sequential flow. Fact building is
	// always sequential so sale ids stay dense and order-stable.
	MaxConcurrency int
}

func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Clock == nil {
		return errors.New("clock is required")
	}
	return nil
}

// Transformer turns raw source records into the star-schema table set. It is
// a pure function of its input: all surrogate counters live inside a single
// run and no state survives between runs.
type Transformer struct {
	log *slog.Logger
	cfg Config
}

func New(cfg Config) (*Transformer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Transformer{
		log: cfg.Logger,
		cfg: cfg,
	}, nil
}

// Run executes the full transformation: dimension builders first, then lookup
// assembly, then fact construction. The lookup index must be complete before
// facts are built; a customer appearing later in iteration order than an
// order referencing it still has to resolve.
func (t *Transformer) Run(ctx context.Context, users []source.UserRecord, products []source.ProductRecord, orders []source.OrderRecord) (*TableSet, RunSummary, error) {
	start := t.cfg.Clock.Now()

	tables := &TableSet{}
	if t.cfg.MaxConcurrency > 1 {
		pool := pond.NewPool(t.cfg.MaxConcurrency)
		defer pool.StopAndWait()
		group := pool.NewGroupContext(ctx)
		group.Submit(func() { tables.Customers = BuildCustomerDim(users) })
		group.Submit(func() { tables.Products = BuildProductDim(products) })
		group.Submit(func() { tables.Times = BuildTimeDim(orders) })
		group.Submit(func() { tables.Locations = BuildLocationDim(orders) })
		if err := group.Wait(); err != nil {
			return nil, RunSummary{}, err
		}
	} else {
		tables.Customers = BuildCustomerDim(users)
		tables.Products = BuildProductDim(products)
		tables.Times = BuildTimeDim(orders)
		tables.Locations = BuildLocationDim(orders)
	}

	// When no order carried a usable address the dimension comes back empty
	// and the first-row fallback would have nothing to point at; seed it
	// with the sentinel row so every fact location id resolves.
	if len(tables.Locations) == 0 && len(orders) > 0 {
		tables.Locations = []LocationRow{unknownLocationRow()}
	}

	ix := NewLookupIndex(tables.Customers, tables.Products, tables.Times, tables.Locations)

	facts, results := BuildSaleFacts(orders, ix)
	tables.Sales = facts

	summary := summarize(results)
	t.log.Info("transformation completed",
		"customers", len(tables.Customers),
		"products", len(tables.Products),
		"dates", len(tables.Times),
		"locations", len(tables.Locations),
		"facts", len(tables.Sales),
		"orders_skipped", summary.OrdersSkippedNoCustomer+summary.OrdersSkippedNoItems,
		"items_skipped", summary.ItemsSkippedNoProduct,
		"location_fallbacks", summary.LocationFallbacks,
		"duration", t.cfg.Clock.Now().Sub(start).String())

	return tables, summary, nil
}

func summarize(results []OrderResult) RunSummary {
	var s RunSummary
	s.OrdersTotal = len(results)
	for _, r := range results {
		if r.Skipped {
			switch r.SkipReason {
			case SkipUnknownCustomer:
				s.OrdersSkippedNoCustomer++
			case SkipNoItems:
				s.OrdersSkippedNoItems++
			}
			continue
		}
		if r.ItemsEmitted > 0 {
			s.OrdersEmitted++
		}
		s.ItemsEmitted += r.ItemsEmitted
		s.ItemsSkippedNoProduct += r.ItemsSkipped
		if r.LocationFallback {
			s.LocationFallbacks++
		}
	}
	return s
}
