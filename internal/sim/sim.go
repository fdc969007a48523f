// Package sim runs the per-tick settlement cycle: advance the reference
// price, collect orders from every trader, match the book, settle the
// resulting trades, sample the tracked trader's portfolio value, and clear
// the book for the next tick.
package sim

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"auctionsim/internal/engine"
	"auctionsim/internal/pricing"
	"auctionsim/internal/trader"
)

// Sample is one portfolio-value observation for the tracked trader.
type Sample struct {
	Tick  int
	Value float64
}

// Result is the output of a run: the ordered portfolio series plus the
// termination state. Bankruptcy is a terminal condition, not an error.
type Result struct {
	Samples      []Sample
	Bankrupt     bool
	BankruptTick int
	FinalPrice   float64
}

// TickEvent describes one completed tick for observers (TUI, stream).
type TickEvent struct {
	Tick      int            `json:"tick"`
	TruePrice float64        `json:"truePrice"`
	Bids      []engine.Quote `json:"bids"`
	Asks      []engine.Quote `json:"asks"`
	Trades    []engine.Trade `json:"trades"`
	Portfolio float64        `json:"portfolio"`
	Bankrupt  bool           `json:"bankrupt"`
}

// Simulation owns the book, the price process, and the traders of one
// replica. It is single-threaded: one logical thread of control mutates the
// book per tick. Independent replicas must each own their own Simulation.
type Simulation struct {
	cfg  Config
	book *engine.Book
	walk *pricing.Walk

	// fixed iteration order for reproducibility: market maker first,
	// then the noise traders in creation order
	traders  []trader.Trader
	accounts map[uuid.UUID]*trader.Account
	tracked  *trader.Account

	samples      []Sample
	tick         int
	bankrupt     bool
	bankruptTick int

	events chan TickEvent
	log    *zap.Logger
}

// New wires up a simulation from the config. Each stochastic component gets
// an independent generator derived from cfg.Seed.
func New(cfg Config, logger *zap.Logger) *Simulation {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.NoiseTraders < 1 {
		cfg.NoiseTraders = 1
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultConfig().EventBuffer
	}

	walkRng := rand.New(rand.NewSource(cfg.Seed))
	walk := pricing.NewWalk(cfg.BasePrice, cfg.Drift, cfg.Volatility, walkRng)

	mm := trader.NewMarketMaker(cfg.Maker.Markup, cfg.Maker.Size, cfg.Maker.Cash, cfg.Maker.Lots)
	traders := []trader.Trader{mm}
	for i := 0; i < cfg.NoiseTraders; i++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(i) + 1))
		traders = append(traders, trader.NewNoiseTrader(cfg.Noise.Size, cfg.Noise.Vol, cfg.Noise.Cash, cfg.Noise.Lots, rng))
	}

	accounts := make(map[uuid.UUID]*trader.Account, len(traders))
	for _, t := range traders {
		accounts[t.Account().ID] = t.Account()
	}

	return &Simulation{
		cfg:      cfg,
		book:     engine.NewBook(),
		walk:     walk,
		traders:  traders,
		accounts: accounts,
		tracked:  traders[1].Account(), // first noise trader
		events:   make(chan TickEvent, cfg.EventBuffer),
		log:      logger,
	}
}

// Events returns the tick events channel. Closed when the run finishes.
func (s *Simulation) Events() <-chan TickEvent {
	return s.events
}

// Tracked returns the account whose portfolio series is sampled.
func (s *Simulation) Tracked() *trader.Account {
	return s.tracked
}

// Run executes up to cfg.Ticks ticks, stopping early on bankruptcy or
// context cancellation, and returns the portfolio series.
func (s *Simulation) Run(ctx context.Context) Result {
	s.log.Info("simulation starting",
		zap.Int("ticks", s.cfg.Ticks),
		zap.Float64("base_price", s.cfg.BasePrice),
		zap.Int64("seed", s.cfg.Seed),
	)

	defer close(s.events)

	for s.tick < s.cfg.Ticks {
		select {
		case <-ctx.Done():
			s.log.Info("simulation cancelled", zap.Int("tick", s.tick))
			return s.result()
		default:
		}

		s.Step()
		if s.bankrupt {
			s.log.Warn("tracked trader went bankrupt", zap.Int("tick", s.bankruptTick))
			break
		}

		if s.cfg.TickDelay > 0 {
			select {
			case <-ctx.Done():
				return s.result()
			case <-time.After(s.cfg.TickDelay):
			}
		}
	}

	r := s.result()
	s.log.Info("simulation finished",
		zap.Int("ticks_run", s.tick),
		zap.Float64("final_price", r.FinalPrice),
		zap.Float64("final_portfolio", s.tracked.PortfolioValue(r.FinalPrice)),
	)
	return r
}

// Step runs a single tick. Safe to call directly in tests.
func (s *Simulation) Step() {
	s.tick++
	price := s.walk.Next()
	state := engine.MarketState{Book: s.book, TruePrice: price}

	for _, t := range s.traders {
		for _, o := range t.GenerateOrders(state) {
			if err := s.book.Insert(o); err != nil {
				// a strategy produced a malformed order; construction bug
				s.log.Fatal("order rejected by book", zap.Error(err))
			}
		}
	}

	trades := engine.Match(s.book)
	s.settle(trades)

	portfolio := s.tracked.PortfolioValue(price)
	s.samples = append(s.samples, Sample{Tick: s.tick, Value: portfolio})
	if portfolio < 0 {
		s.bankrupt = true
		s.bankruptTick = s.tick
	}

	s.publish(TickEvent{
		Tick:      s.tick,
		TruePrice: price,
		Bids:      s.book.Bids(),
		Asks:      s.book.Asks(),
		Trades:    trades,
		Portfolio: portfolio,
		Bankrupt:  s.bankrupt,
	})

	s.book.Clear()
}

// settle applies each trade to both counterparties. Cash moves by the
// per-unit trade price and position by the traded size.
func (s *Simulation) settle(trades []engine.Trade) {
	for _, t := range trades {
		buyer, ok := s.accounts[t.Buyer]
		if !ok {
			s.log.Fatal("trade references unknown buyer", zap.String("id", t.Buyer.String()))
		}
		seller, ok := s.accounts[t.Seller]
		if !ok {
			s.log.Fatal("trade references unknown seller", zap.String("id", t.Seller.String()))
		}

		buyer.Cash -= t.Price
		buyer.Lots += t.Size
		seller.Cash += t.Price
		seller.Lots -= t.Size
	}
}

func (s *Simulation) publish(ev TickEvent) {
	if s.cfg.DropEvents {
		select {
		case s.events <- ev:
		default:
		}
		return
	}
	s.events <- ev
}

func (s *Simulation) result() Result {
	return Result{
		Samples:      s.samples,
		Bankrupt:     s.bankrupt,
		BankruptTick: s.bankruptTick,
		FinalPrice:   s.walk.Price(),
	}
}
