package dto

// MarketChartResponse mirrors the CoinGecko market_chart payload. Each entry
// is a [timestamp, value] pair; only the value component is consumed.
type MarketChartResponse struct {
	Prices       [][]float64 `json:"prices"`
	MarketCaps   [][]float64 `json:"market_caps"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

// ClosePrices extracts the price component of each pair, in response order
// (ascending by time).
func (m *MarketChartResponse) ClosePrices() []float64 {
	closes := make([]float64, 0, len(m.Prices))
	for _, pair := range m.Prices {
		if len(pair) < 2 {
			continue
		}
		closes = append(closes, pair[1])
	}
	return closes
}
