package service

import (
	"slices"
	"sort"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/internal/screener/config"
)

// RankShortlist keeps the qualifying snapshots, orders them and truncates to MaxShortlist.
// When nothing qualifies it returns the FallbackSize highest-volume snapshots instead and
// reports usedFallback. It never fails.
func RankShortlist(scored []entity.ScoredSnapshot, criteria config.Criteria) (shortlist []entity.ScoredSnapshot, usedFallback bool) {
	for _, s := range scored {
		if qualifies(s, criteria) {
			shortlist = append(shortlist, s)
		}
	}

	if len(shortlist) > 0 {
		sort.SliceStable(shortlist, func(i, j int) bool {
			return rankLess(&shortlist[i], &shortlist[j])
		})
		if criteria.MaxShortlist > 0 && len(shortlist) > criteria.MaxShortlist {
			shortlist = shortlist[:criteria.MaxShortlist]
		}
		return shortlist, false
	}

	return volumeLeaders(scored, criteria.FallbackSize), true
}

func qualifies(s entity.ScoredSnapshot, criteria config.Criteria) bool {
	if s.Filtered {
		return false
	}
	if s.Score < criteria.MinScore || s.VolumeRatio < criteria.MinVolumeRatio {
		return false
	}
	return !slices.Contains(criteria.ExcludedRiskLevels, string(s.RiskLevel))
}

// rankLess orders by accumulation, corporate impact, score, volume ratio and symbol.
func rankLess(a, b *entity.ScoredSnapshot) bool {
	if a.AccumulationScore != b.AccumulationScore {
		return a.AccumulationScore > b.AccumulationScore
	}
	if ai, bi := a.CorporateImpact(), b.CorporateImpact(); ai != bi {
		return ai > bi
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.VolumeRatio != b.VolumeRatio {
		return a.VolumeRatio > b.VolumeRatio
	}
	return a.Symbol < b.Symbol
}

func volumeLeaders(scored []entity.ScoredSnapshot, size int) []entity.ScoredSnapshot {
	candidates := make([]entity.ScoredSnapshot, 0, len(scored))
	for _, s := range scored {
		if !s.Filtered {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, scored...)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Volume != candidates[j].Volume {
			return candidates[i].Volume > candidates[j].Volume
		}
		return candidates[i].Symbol < candidates[j].Symbol
	})
	if size > 0 && len(candidates) > size {
		candidates = candidates[:size]
	}

	for i := range candidates {
		candidates[i].Score = int(candidates[i].Volume / 1_000_000)
		candidates[i].FallbackNominal = true
	}
	return candidates
}
