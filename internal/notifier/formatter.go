package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"SignalDesk/internal/model"
	"SignalDesk/internal/recorder"
)

// ScanFailure is a ticker that could not be evaluated during a scan.
type ScanFailure struct {
	Ticker string
	Err    error
}

func signalIcon(s model.Signal) string {
	switch {
	case s.Bullish():
		return "🟢"
	case s.Bearish():
		return "🔴"
	default:
		return "⚪"
	}
}

// FormatSignalReport formats a single evaluation into a Telegram message.
func FormatSignalReport(res *model.SignalResult, at time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(res.Ticker), at.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Price: %.2f\n", res.CurrentPrice))
	b.WriteString(fmt.Sprintf("RSI: %.2f | OBV change: %+.0f\n\n", res.RSI, res.OBVChange))
	b.WriteString(fmt.Sprintf("%s <b>%s</b>\n", signalIcon(res.Signal), res.Signal))
	b.WriteString(fmt.Sprintf("💡 %s\n\n", html.EscapeString(res.SuggestedAction)))
	b.WriteString(fmt.Sprintf("<i>%s</i>", html.EscapeString(res.Commentary)))
	return b.String()
}

// FormatDigest formats the result of one watchlist scan.
func FormatDigest(runID string, results []*model.SignalResult, failures []ScanFailure, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Watchlist scan</b> | %s\n\n", at.Format("2006-01-02 15:04")))

	if len(results) == 0 {
		b.WriteString("No signals computed.\n")
	}
	for _, r := range results {
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %.2f | RSI %.1f | %s\n",
			signalIcon(r.Signal), html.EscapeString(r.Ticker), r.CurrentPrice, r.RSI, r.Signal))
	}

	if len(failures) > 0 {
		b.WriteString("\n⚠️ <b>Failed:</b>\n")
		for _, f := range failures {
			b.WriteString(fmt.Sprintf("  %s: %s\n", html.EscapeString(f.Ticker), html.EscapeString(f.Err.Error())))
		}
	}

	if runID != "" {
		b.WriteString(fmt.Sprintf("\nrun %s", runID))
	}
	return b.String()
}

// FormatHistory lists recorded signals for a ticker, newest first.
func FormatHistory(ticker string, recs []recorder.SignalRecord) string {
	ticker = html.EscapeString(strings.ToUpper(ticker))
	if len(recs) == 0 {
		return fmt.Sprintf("No recorded signals for %s.", ticker)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🕘 <b>%s history</b>\n\n", ticker))
	for _, r := range recs {
		b.WriteString(fmt.Sprintf("%s %s  %.2f  RSI %.1f  %s (%s)\n",
			signalIcon(r.ParsedSignal()), r.Time().Format("2006-01-02"), r.Price, r.RSI, r.Signal, strings.ToLower(r.TriggerType)))
	}
	return b.String()
}

// FormatWatchlist lists the configured tickers.
func FormatWatchlist(tickers []string) string {
	if len(tickers) == 0 {
		return "Watchlist is empty."
	}
	return "👀 <b>Watchlist</b>\n" + html.EscapeString(strings.Join(tickers, ", "))
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "Available commands:\n" +
		"• /signal &lt;TICKER&gt; - evaluate one ticker\n" +
		"• /scan - evaluate the whole watchlist\n" +
		"• /history &lt;TICKER&gt; - recent recorded signals\n" +
		"• /watchlist - show the watchlist"
}

// FormatError formats a failure reply for a command.
func FormatError(ticker string, err error) string {
	return fmt.Sprintf("❌ %s: %s", html.EscapeString(ticker), html.EscapeString(err.Error()))
}
