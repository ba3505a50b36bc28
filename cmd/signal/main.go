// Command signal evaluates one ticker and prints the result as JSON.
//
//	signal -ticker AAPL
//	signal -ticker RELIANCE -mode dma
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"SignalDesk/internal/chart"
	"SignalDesk/internal/collector"
	"SignalDesk/internal/config"
	"SignalDesk/internal/logger"
	"SignalDesk/internal/model"
	"SignalDesk/internal/recorder"
	"SignalDesk/internal/strategy"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to config file")
	ticker := flag.String("ticker", "", "ticker symbol")
	mode := flag.String("mode", "signal", "output: signal, price, volume, dma or candle")
	record := flag.Bool("record", false, "store the signal in the configured database")
	flag.Parse()

	if *ticker == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Setup("info", true)
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.App.LogLevel, true)

	fetcher := collector.NewSourceFetcher(collector.SourceOptions{
		BaseURL:       cfg.DataSource.BaseURL,
		APIKey:        cfg.DataSource.APIKey,
		Proxy:         cfg.Proxy,
		SymbolMap:     cfg.DataSource.SymbolMap,
		DefaultSuffix: cfg.DataSource.DefaultSuffix,
	})
	col := collector.NewCollector(fetcher, cfg.DataSource.HistoryDays)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	payload, err := run(ctx, cfg, col, *ticker, *mode, *record)
	if err != nil {
		log.Fatal().Err(err).Str("ticker", *ticker).Str("mode", *mode).Msg("signal failed")
	}
	out, err := chart.Marshal(payload)
	if err != nil {
		log.Fatal().Err(err).Msg("encode output")
	}
	fmt.Println(string(out))
}

func run(ctx context.Context, cfg *config.Config, col *collector.Collector, ticker, mode string, record bool) (any, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if mode == "signal" {
		series, err := col.Series(ctx, ticker)
		if err != nil {
			return nil, err
		}
		res, err := strategy.NewEngine(cfg.Signal.RSIPeriod, cfg.Signal.OBVLookback).Evaluate(series)
		if err != nil {
			return nil, err
		}
		if record && cfg.Database.Driver != "none" {
			rec, err := recorder.NewSQLRecorder(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return nil, err
			}
			defer rec.Close()
			if err := rec.RecordSignal(ctx, recorder.NewSignalRecord(uuid.NewString(), model.TriggerManual, res, time.Now())); err != nil {
				return nil, fmt.Errorf("record signal: %w", err)
			}
		}
		return res, nil
	}

	bars, err := col.Bars(ctx, ticker, cfg.DataSource.HistoryDays)
	if err != nil {
		return nil, err
	}
	switch mode {
	case "price":
		return chart.Price(ticker, bars), nil
	case "volume":
		return chart.Volume(ticker, bars), nil
	case "dma":
		return chart.DMA(ticker, bars), nil
	case "candle":
		return chart.Candles(ticker, bars, time.Now()), nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
