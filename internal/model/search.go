package model

type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Exchange string `json:"exchange,omitempty"`
	ISIN     string `json:"isin,omitempty"`
	Country  string `json:"country,omitempty"`
}
