package scoring

import (
	"fmt"

	"golang-bandar-screener/pkg/utils"
)

func volumePoints(ratio float64) int {
	switch {
	case ratio > 3:
		return 35
	case ratio > 2:
		return 25
	case ratio > 1.2:
		return 15
	default:
		return 0
	}
}

func momentumPoints(change float64) int {
	switch {
	case change > 7:
		return 30
	case change > 3:
		return 20
	case change > 0:
		return 10
	case change >= -2:
		return 5
	default:
		return 0
	}
}

func (e *Engine) applyTechnical(st *state) {
	s := st.snap
	ratio := st.out.VolumeRatio

	if pts := volumePoints(ratio); pts > 0 {
		signal := "VOLUME NAIK"
		if ratio > 3 {
			signal = "VOLUME SPIKE 🔥"
		}
		st.add(pts, signal, fmt.Sprintf("Volume %.1fx rata-rata", ratio))
	}

	if pts := momentumPoints(s.ChangePercent); pts > 0 {
		signal := ""
		if s.ChangePercent > 3 {
			signal = "MOMENTUM KUAT 🚀"
		}
		st.add(pts, signal, fmt.Sprintf("Perubahan harga %+.2f%%", s.ChangePercent))
	}

	if s.DayHigh > 0 && s.DayLow > 0 && s.DayHigh > s.DayLow {
		position := (s.Price - s.DayLow) / (s.DayHigh - s.DayLow) * 100
		st.out.PositionInRange = utils.ToPointer(utils.Round(position, 2))
		breakout := s.Open > 0 && s.Price > s.Open && (s.Price-s.Open)/s.Open > 0.02
		switch {
		case breakout && position > 70:
			st.add(25, "BREAKOUT 💥", fmt.Sprintf("Breakout dari open, posisi %.0f%% range harian", position))
		case position > 60:
			st.add(15, "", fmt.Sprintf("Ditutup di area atas range harian (%.0f%%)", position))
		}
	}

	if s.FiftyTwoWeekHigh > 0 {
		distance := (s.FiftyTwoWeekHigh - s.Price) / s.FiftyTwoWeekHigh * 100
		st.out.DistanceFromHigh = utils.ToPointer(utils.Round(distance, 2))
		switch {
		case distance > 40:
			st.add(20, "DISKON BESAR", fmt.Sprintf("%.0f%% di bawah harga tertinggi 52 minggu", distance))
		case distance > 20:
			st.add(15, "", fmt.Sprintf("%.0f%% di bawah harga tertinggi 52 minggu", distance))
		}
	}

	if s.PERatio > 0 && s.PERatio < 20 {
		st.add(10, "", fmt.Sprintf("Valuasi menarik, PER %.2f", s.PERatio))
	}

	if s.DividendYield > 3 {
		st.add(10, "", fmt.Sprintf("Dividend yield %.2f%%", s.DividendYield))
	}
}
