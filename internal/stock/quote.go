package stock

// Quote is a transient snapshot of one symbol, built fresh per request from
// provider data. Never persisted, never cached.
type Quote struct {
	Symbol        string   `json:"symbol"`
	CurrentPrice  float64  `json:"current_price"`
	Change        float64  `json:"change"`
	ChangePercent float64  `json:"change_percent"`
	Volume        int64    `json:"volume"`
	MarketCap     *float64 `json:"market_cap"`
	CompanyName   string   `json:"company_name"`
	Sector        string   `json:"sector"`
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield"`
}
