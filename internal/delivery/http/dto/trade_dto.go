package dto

// PlaceTradeRequest is the trade placement payload. Either Command or
// the structured Symbol/Direction fields must be present.
type PlaceTradeRequest struct {
	Command   string  `json:"command,omitempty"`
	Symbol    string  `json:"symbol,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Chain     string  `json:"chain,omitempty"`
}
