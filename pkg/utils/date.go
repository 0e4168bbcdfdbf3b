package utils

import (
	"fmt"
	"time"
)

var wib = loadWIB()

func loadWIB() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

// WIB returns the Asia/Jakarta location.
func WIB() *time.Location {
	return wib
}

func TimeNowWIB() time.Time {
	return time.Now().In(wib)
}

// PrettyDate formats t in WIB, e.g. "Senin, 19 Okt 2026 09:15 WIB".
func PrettyDate(t time.Time) string {
	days := [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	months := [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}
	t = t.In(wib)
	return fmt.Sprintf("%s, %02d %s %d %02d:%02d WIB", days[t.Weekday()], t.Day(), months[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// DaysUntil returns the whole days from now until t, never negative.
func DaysUntil(now, t time.Time) int {
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
