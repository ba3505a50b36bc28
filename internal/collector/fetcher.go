package collector

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SignalDesk/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	Name() string
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// SourceOptions selects and configures the market data source.
type SourceOptions struct {
	BaseURL       string
	APIKey        string
	Proxy         string
	SymbolMap     map[string]string
	DefaultSuffix string
}

// NewSourceFetcher returns the REST vendor fetcher when BaseURL is set,
// Yahoo Finance otherwise.
func NewSourceFetcher(opts SourceOptions) Fetcher {
	if opts.BaseURL != "" {
		return NewRESTFetcher(opts.BaseURL, opts.APIKey, opts.Proxy)
	}
	yf := NewYahooFetcher(opts.Proxy)
	for k, v := range opts.SymbolMap {
		yf.SymbolMap[strings.ToUpper(k)] = v
	}
	yf.DefaultSuffix = opts.DefaultSuffix
	return yf
}
