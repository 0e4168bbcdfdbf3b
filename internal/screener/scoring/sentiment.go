package scoring

import (
	"fmt"

	"golang-bandar-screener/internal/entity"
)

func sentimentScore(s entity.MarketSnapshot, ratio float64) int {
	score := 0
	if s.ChangePercent > 2 && ratio > 1.5 {
		score += 10
	}
	if s.ChangePercent < -2 && ratio > 1.5 {
		score -= 10
	}
	if s.ForeignNetBuy > 0 && s.ChangePercent > 0 {
		score += 5
	}
	if s.ForeignNetBuy < 0 && s.ChangePercent < 0 {
		score -= 5
	}
	return score
}

func (e *Engine) applySentiment(st *state) {
	score := sentimentScore(st.snap, st.out.VolumeRatio)
	st.out.SentimentScore = score
	switch {
	case score > 0:
		st.out.Sentiment = entity.SentimentBullish
		st.add(score, "SENTIMEN POSITIF 📈", fmt.Sprintf("Sentimen pasar bullish (%+d)", score))
	case score < 0:
		st.out.Sentiment = entity.SentimentBearish
		st.add(score, "SENTIMEN NEGATIF 📉", fmt.Sprintf("Sentimen pasar bearish (%+d)", score))
	default:
		st.out.Sentiment = entity.SentimentNeutral
	}
}
