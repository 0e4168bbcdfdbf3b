package scoring

import (
	"fmt"

	"golang-bandar-screener/pkg/utils"
)

func (e *Engine) applySubtleAccumulation(st *state) {
	ratio := st.out.VolumeRatio
	change := st.snap.ChangePercent
	if ratio < e.cfg.AccumulationMinRatio || ratio > e.cfg.AccumulationMaxRatio {
		return
	}
	if change <= 0 || change > e.cfg.AccumulationMaxChange {
		return
	}

	st.out.AccumulationScore += e.cfg.AccumulationBoost
	st.add(e.cfg.AccumulationBonus, "AKUMULASI SENYAP 🤫",
		fmt.Sprintf("Akumulasi senyap: volume %.1fx dengan kenaikan terbatas %.2f%%", ratio, change))

	if st.out.EarlyEntryPrice == nil {
		st.out.EarlyEntryPrice = utils.ToPointer(utils.Round(st.snap.Price*(1-e.cfg.EarlyEntryDiscount), 2))
	}
}

func (e *Engine) applyFlowBonus(st *state) {
	switch {
	case st.snap.ForeignNetBuy > 1e9:
		st.add(15, "FOREIGN INFLOW 🌏", fmt.Sprintf("Net buy asing Rp %.1f miliar", st.snap.ForeignNetBuy/1e9))
	case st.snap.ForeignNetBuy > 0:
		st.add(10, "FOREIGN BUY", "Asing tercatat net buy")
	}

	switch {
	case st.snap.InstitutionalOwnership >= 50:
		st.add(10, "", fmt.Sprintf("Kepemilikan institusi tinggi %.1f%%", st.snap.InstitutionalOwnership))
	case st.snap.InstitutionalOwnership >= 30:
		st.add(5, "", fmt.Sprintf("Kepemilikan institusi %.1f%%", st.snap.InstitutionalOwnership))
	}
}
