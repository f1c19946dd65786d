package finnhubApi

type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PrevClose     float64 `json:"pc"`
}

type profileResponse struct {
	Name                 string  `json:"name"`
	Ticker               string  `json:"ticker"`
	Currency             string  `json:"currency"`
	Exchange             string  `json:"exchange"`
	Country              string  `json:"country"`
	MarketCapitalization float64 `json:"marketCapitalization"`
}

type searchResponse struct {
	Count  int          `json:"count"`
	Result []searchItem `json:"result"`
}

type searchItem struct {
	Description   string `json:"description"`
	DisplaySymbol string `json:"displaySymbol"`
	Symbol        string `json:"symbol"`
	Type          string `json:"type"`
}

type dividendItem struct {
	Symbol   string  `json:"symbol"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	PayDate  string  `json:"payDate"`
	Currency string  `json:"currency"`
}
