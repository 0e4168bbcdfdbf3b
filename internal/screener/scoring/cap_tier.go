package scoring

import (
	"fmt"

	"golang-bandar-screener/internal/entity"
)

type capTier int

const (
	tierSmall capTier = iota
	tierMid
	tierLarge
)

func (e *Engine) tierOf(marketCap float64) capTier {
	switch {
	case marketCap >= e.cfg.LargeCapThreshold:
		return tierLarge
	case marketCap >= e.cfg.MidCapThreshold:
		return tierMid
	default:
		return tierSmall
	}
}

func (e *Engine) applyCapTier(st *state) {
	st.tier = e.tierOf(st.snap.MarketCap)
	change := st.snap.ChangePercent
	ratio := st.out.VolumeRatio

	switch st.tier {
	case tierLarge:
		st.out.Category = entity.CategoryBluechip
		st.out.RiskLevel = entity.RiskLow
		if ratio >= 1.5 && change >= -1 && change <= 3 {
			st.out.BandarType = entity.BandarInstitutional
			st.out.AccumulationScore += 30
			st.add(15, "INSTITUTIONAL ACCUMULATION 🏦", fmt.Sprintf("Bluechip diakumulasi institusi, volume %.1fx dengan harga stabil", ratio))
		}
	case tierMid:
		st.out.Category = entity.CategoryMidcap
		st.out.RiskLevel = entity.RiskMedium
		if ratio >= 2 && change > 0 && change <= 5 {
			st.out.BandarType = entity.BandarSmartMoney
			st.out.AccumulationScore += 35
			st.add(20, "SMART MONEY 🧠", fmt.Sprintf("Midcap dengan smart money masuk, volume %.1fx", ratio))
		}
	default:
		st.out.Category = entity.CategorySmallcap
		st.out.RiskLevel = entity.RiskMedium
		if ratio >= 3 && change > 0 && change <= 10 && st.snap.Price < 1000 {
			st.out.BandarType = entity.BandarSpeculative
			st.out.AccumulationScore += 25
			st.add(10, "BANDAR SPEKULATIF 🎲", fmt.Sprintf("Smallcap digerakkan bandar, volume %.1fx naik %.2f%%", ratio, change))
		}
	}
}
