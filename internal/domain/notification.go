package domain

// NotificationCandidate is a membership inside the upstream expiry-warning
// window. DaysUntilExpiry is signed: negative means already expired.
type NotificationCandidate struct {
	ID              int64  `json:"id"`
	ClientName      string `json:"client_name"`
	ServiceName     string `json:"service_name"`
	ExpirationDate  string `json:"expiration_date"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
	WhatsappNumber  string `json:"whatsapp_number"`
}

// PreparedNotification is the upstream reply to a send request: a deep
// link the browser gets redirected to. The panel never composes the
// message text itself.
type PreparedNotification struct {
	WhatsappURL string `json:"whatsappUrl"`
}
