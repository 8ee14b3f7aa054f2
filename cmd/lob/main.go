package main

import (
	"fmt"
	"os"

	"lob/book"
	"lob/config"
	"lob/event"
	"lob/feed"
	"lob/feed/replay"
	"lob/infra/log"
	"lob/infra/metrics"
)

func bookType(s string) (book.BookType, error) {
	switch s {
	case "L1_MBP":
		return book.L1MBP, nil
	case "L2_MBP":
		return book.L2MBP, nil
	case "L3_MBO":
		return book.L3MBO, nil
	default:
		return 0, fmt.Errorf("unknown book type %q", s)
	}
}

func main() {
	cfg := config.Load()
	logger := log.New(cfg.Logging.Level, cfg.Logging.Pretty)
	metrics.Init(logger)

	bt, err := bookType(cfg.Book.Type)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad configuration")
	}
	if cfg.Feed.Path == "" {
		logger.Fatal().Msg("no feed file configured (set LOB_FEED or feed.path)")
	}

	b := book.New(cfg.Book.Instrument, bt)
	var events uint64
	eng := feed.NewEngine(b, func(event.BookEvent) { events++ }, logger)

	f, err := os.Open(cfg.Feed.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Feed.Path).Msg("open feed")
	}
	defer f.Close()

	prec := replay.Precisions{Price: cfg.Book.PricePrecision, Size: cfg.Book.SizePrecision}
	n, err := replay.Stream(f, eng, prec)
	if err != nil {
		logger.Warn().Err(err).Msg("some records were rejected")
	}
	logger.Info().
		Int("records", n).
		Uint64("events", events).
		Uint64("updates", b.UpdateCount()).
		Uint64("sequence", b.Sequence()).
		Msg("replay complete")

	if err := eng.CheckIntegrity(); err != nil {
		logger.Error().Err(err).Msg("integrity check failed")
	} else {
		logger.Info().Msg("integrity check passed")
	}

	fmt.Print(b.Pprint(cfg.Display.Levels))
	if ratio, ok := b.ImbalanceRatio(); ok {
		fmt.Printf("imbalance %.3f\n", ratio)
	}
	if spread, ok := b.Spread(); ok {
		fmt.Printf("spread %.4f\n", spread)
	}
}
