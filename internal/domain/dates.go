package domain

import "time"

// ISODate is the wire format for every date exchanged with the upstream API.
const ISODate = "2006-01-02"

// FormatDate converts an ISO date (or RFC3339 timestamp) to the DD/MM/YYYY
// display format. Unparseable input is returned as-is rather than rendered
// as a zero date.
func FormatDate(iso string) string {
	t, err := time.Parse(ISODate, iso)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, iso); err != nil {
			return iso
		}
	}
	return t.Format("02/01/2006")
}

// Today returns the current date in ISO format, used to seed form defaults.
func Today() string {
	return time.Now().Format(ISODate)
}

// DaysAgo returns the ISO date n days before today. The report range
// defaults to the last 30 days.
func DaysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(ISODate)
}

// AddMonthsClamp advances an ISO date by n calendar months, clamping to the
// last valid day when the target month is shorter (2024-01-31 + 1 month →
// 2024-02-29). This is the documented policy for the expiration auto-fill;
// time.AddDate would roll over into the following month instead.
func AddMonthsClamp(iso string, n int) (string, error) {
	t, err := time.Parse(ISODate, iso)
	if err != nil {
		return "", &ErrValidation{Field: "purchase_date", Message: "fecha inválida: " + iso}
	}
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC).Format(ISODate), nil
}
