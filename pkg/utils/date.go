package utils

import "time"

const (
	DateLayout        = "2006-01-02"
	CompactDateLayout = "20060102"
)

// CompactDate converte YYYY-MM-DD em YYYYMMDD
func CompactDate(dateStr string) (string, error) {
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return "", err
	}
	return date.Format(CompactDateLayout), nil
}

// WindowEndingYesterday devolve o intervalo inclusivo de days dias que termina ontem em loc
func WindowEndingYesterday(now time.Time, loc *time.Location, days int) (string, string) {
	local := now.In(loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(days - 1))
	return start.Format(DateLayout), end.Format(DateLayout)
}
