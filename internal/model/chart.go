package model

// Dataset is one series of a chart payload. Nil entries in Data are gaps.
type Dataset struct {
	Label           string     `json:"label"`
	Data            []*float64 `json:"data"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	BorderColor     string     `json:"borderColor,omitempty"`
	BorderWidth     float64    `json:"borderWidth,omitempty"`
	Fill            *bool      `json:"fill,omitempty"`
	Tension         float64    `json:"tension,omitempty"`
	PointRadius     *int       `json:"pointRadius,omitempty"`
	Type            string     `json:"type,omitempty"`
}

// ChartData is a labelled multi-series chart.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// CandleRecord is one row of the candle chart.
type CandleRecord struct {
	Date   string   `json:"Date"`
	Open   float64  `json:"Open"`
	High   float64  `json:"High"`
	Low    float64  `json:"Low"`
	Close  float64  `json:"Close"`
	Volume float64  `json:"Volume"`
	SMA5   *float64 `json:"SMA5"`
	SMA20  *float64 `json:"SMA20"`
}

// CandleData is the candle chart payload for one symbol.
type CandleData struct {
	Symbol string         `json:"symbol"`
	Count  int            `json:"count"`
	Data   []CandleRecord `json:"data"`
}
