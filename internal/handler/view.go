package handler

import (
	"fmt"
	"html/template"

	"github.com/membresiasgt/panel-go/internal/domain"
)

// viewFuncs is the FuncMap shared by every page template.
var viewFuncs = template.FuncMap{
	"money":            domain.FormatMoney,
	"percent":          domain.FormatPercent,
	"date":             domain.FormatDate,
	"badgeLabel":       statusBadgeLabel,
	"badgeClass":       statusBadgeClass,
	"profitClass":      profitClass,
	"durationLabel":    durationLabel,
	"expiryBadgeLabel": expiryBadgeLabel,
	"expiryBadgeClass": expiryBadgeClass,
	"stateClass":       connStateClass,
}

// statusBadgeLabel maps a membership status to its badge text. Unknown or
// missing statuses render the neutral placeholder instead of leaking raw
// values into the UI.
func statusBadgeLabel(status string) string {
	switch status {
	case domain.StatusActive:
		return "Activo"
	case domain.StatusExpiring:
		return "Por Vencer"
	case domain.StatusExpired:
		return "Vencido"
	default:
		return "-"
	}
}

func statusBadgeClass(status string) string {
	switch status {
	case domain.StatusActive:
		return "badge badge-active"
	case domain.StatusExpiring:
		return "badge badge-expiring"
	case domain.StatusExpired:
		return "badge badge-expired"
	default:
		return "badge badge-neutral"
	}
}

// profitClass colors a monetary figure by sign: green at zero or above,
// red below.
func profitClass(v float64) string {
	if v >= 0 {
		return "profit-positive"
	}
	return "profit-negative"
}

// durationLabel pluralizes whole months: "1 Mes", "3 Meses".
func durationLabel(months int) string {
	if months == 1 {
		return "1 Mes"
	}
	return fmt.Sprintf("%d Meses", months)
}

// expiryBadgeLabel classifies a notification candidate: negative days
// mean the membership already expired.
func expiryBadgeLabel(daysUntilExpiry int) string {
	if daysUntilExpiry < 0 {
		return "Vencido"
	}
	return "Por Vencer"
}

func expiryBadgeClass(daysUntilExpiry int) string {
	if daysUntilExpiry < 0 {
		return "badge badge-expired"
	}
	return "badge badge-expiring"
}

func connStateClass(state domain.ConnectionState) string {
	switch state {
	case domain.StateConnected:
		return "status connected"
	case domain.StateConnecting:
		return "status connecting"
	default:
		return "status disconnected"
	}
}
