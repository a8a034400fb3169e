// Package domain holds the render-ready entities the panel works with.
// All of them are owned by the upstream membership API; the panel keeps
// only transient copies for rendering.
package domain

// Membership statuses as classified by the upstream API.
const (
	StatusActive   = "active"
	StatusExpiring = "expiring"
	StatusExpired  = "expired"
)

// Membership is a tracked subscription to a third-party service resold
// to a client, exactly as the upstream API returns it.
type Membership struct {
	ID             int64   `json:"id"`
	ClientID       string  `json:"client_id"`
	ClientName     string  `json:"client_name"`
	ServiceName    string  `json:"service_name"`
	Provider       string  `json:"provider"`
	Duration       int     `json:"duration"` // whole months
	PurchaseDate   string  `json:"purchase_date"`
	ExpirationDate string  `json:"expiration_date"`
	PurchasePrice  float64 `json:"purchase_price"`
	SalePrice      float64 `json:"sale_price"`
	Profit         float64 `json:"profit"` // sale - purchase, computed upstream
	AccessEmail    string  `json:"access_email"`
	AccessPassword string  `json:"access_password"`
	SecurityPIN    string  `json:"security_pin,omitempty"`
	ProfileName    string  `json:"profile_name,omitempty"`
	WhatsappNumber string  `json:"whatsapp_number"`
	Status         string  `json:"status"`
}

// MembershipInput is the payload for create and update calls. The upstream
// API derives profit and status itself, so neither is sent.
type MembershipInput struct {
	ClientID       string  `json:"client_id"`
	ClientName     string  `json:"client_name"`
	ServiceName    string  `json:"service_name"`
	Provider       string  `json:"provider"`
	Duration       int     `json:"duration"`
	PurchaseDate   string  `json:"purchase_date"`
	ExpirationDate string  `json:"expiration_date"`
	PurchasePrice  float64 `json:"purchase_price"`
	SalePrice      float64 `json:"sale_price"`
	AccessEmail    string  `json:"access_email"`
	AccessPassword string  `json:"access_password"`
	SecurityPIN    string  `json:"security_pin"`
	ProfileName    string  `json:"profile_name"`
	WhatsappNumber string  `json:"whatsapp_number"`
}

// MembershipFilter narrows the membership list. Zero value means "list all",
// which maps to the plain list endpoint instead of the search one.
type MembershipFilter struct {
	Status string
	Search string
}

// IsZero reports whether the filter selects everything.
func (f MembershipFilter) IsZero() bool {
	return f.Status == "" && f.Search == ""
}

// MembershipStats is the upstream per-status headcount.
type MembershipStats struct {
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}
