package domain

// Quote represents a price quote for a ticker symbol
type Quote struct {
	Symbol        string   `json:"symbol" yaml:"symbol"`
	Name          string   `json:"name,omitempty" yaml:"name"`
	Price         float64  `json:"price" yaml:"price"`
	Change        *float64 `json:"change,omitempty" yaml:"change"`
	ChangePercent float64  `json:"changePercent" yaml:"change_percent"`
}

// Event represents a scheduled economic calendar event
type Event struct {
	Time       string     `json:"time" yaml:"time"`
	Title      string     `json:"title" yaml:"title"`
	Currency   string     `json:"currency" yaml:"currency"`
	Importance Importance `json:"importance" yaml:"importance"`
	Forecast   string     `json:"forecast,omitempty" yaml:"forecast"`
	Previous   string     `json:"previous,omitempty" yaml:"previous"`
	Actual     string     `json:"actual,omitempty" yaml:"actual"`
}
