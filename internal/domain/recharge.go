package domain

// Recharge is a standalone prepaid top-up for a client, independent of
// any membership.
type Recharge struct {
	ID           int64   `json:"id"`
	ClientID     string  `json:"client_id"`
	ClientName   string  `json:"client_name,omitempty"` // join-provided upstream
	Amount       float64 `json:"amount"`
	RechargeDate string  `json:"recharge_date"`
	Note         string  `json:"note,omitempty"`
}

// RechargeInput is the payload for creating a recharge.
type RechargeInput struct {
	ClientID     string  `json:"client_id"`
	Amount       float64 `json:"amount"`
	RechargeDate string  `json:"recharge_date"`
	Note         string  `json:"note"`
}
