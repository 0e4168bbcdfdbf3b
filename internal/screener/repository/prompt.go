package repository

import (
	"fmt"
	"strings"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/internal/screener/dto"
)

// BuildScreeningPrompt builds the recommendation prompt for the ranked shortlist.
func BuildScreeningPrompt(shortlist []entity.ScoredSnapshot, totalRetrieved int) string {
	var stockBuilder strings.Builder
	for i, s := range shortlist {
		stockBuilder.WriteString(fmt.Sprintf("\n%d. %s - %s\n", i+1, s.Symbol, s.Name))
		stockBuilder.WriteString(fmt.Sprintf("   💰 Price: Rp %.0f | 📈 Change: %.2f%% | 🎯 Entry: Rp %.2f\n", s.Price, s.ChangePercent, s.EntryPrice))
		stockBuilder.WriteString(fmt.Sprintf("   📊 Volume: %.1fM (%.2fx avg) | Kategori: %s | Bandar: %s\n", float64(s.Volume)/1e6, s.VolumeRatio, s.Category, s.BandarType))

		if len(s.CorporateActions) > 0 {
			actions := make([]string, 0, len(s.CorporateActions))
			for _, a := range s.CorporateActions {
				actions = append(actions, fmt.Sprintf("%s (%d hari, %.0f%%)", a.Kind, a.DaysToEvent, a.Confidence*100))
			}
			stockBuilder.WriteString(fmt.Sprintf("   🏢 Corporate Action: %s\n", strings.Join(actions, ", ")))
		}
		if len(s.Patterns) > 0 {
			patterns := make([]string, 0, len(s.Patterns))
			for _, p := range s.Patterns {
				patterns = append(patterns, p.Name)
			}
			stockBuilder.WriteString(fmt.Sprintf("   🔍 Pola: %s\n", strings.Join(patterns, ", ")))
		}

		stockBuilder.WriteString(fmt.Sprintf("   🧭 Sentimen: %s (%+d)\n", s.Sentiment, s.SentimentScore))
		stockBuilder.WriteString(fmt.Sprintf("   🎯 Target: Rp %.2f / Rp %.2f / Rp %.2f | 🛑 Stop Loss: Rp %.2f\n", s.PriceTargets[0], s.PriceTargets[1], s.PriceTargets[2], s.StopLoss))
		if s.RiskRewardRatio != nil {
			stockBuilder.WriteString(fmt.Sprintf("   ⚖️ Risk/Reward: %.2f\n", *s.RiskRewardRatio))
		}
		stockBuilder.WriteString(fmt.Sprintf("   🚪 Exit: %s\n", s.ExitSignal))

		signals := "No signals"
		if len(s.Signals) > 0 {
			signals = strings.Join(s.Signals, ", ")
		}
		stockBuilder.WriteString(fmt.Sprintf("   🎯 Signals: %s\n", signals))
		stockBuilder.WriteString(fmt.Sprintf("   💡 Reasons: %s\n", strings.Join(s.Reasons, "; ")))
		stockBuilder.WriteString(fmt.Sprintf("   ⭐ Score: %d\n", s.Score))
	}

	promptTemplate := `ANALISIS TRADING SAHAM - FOKUS BANDARMOLOGY & MOMENTUM ENTRY

DATA SAHAM POTENSIAL UNTUK TRADING (%d dari %d stocks):
%s

BERIKAN REKOMENDASI TRADING DENGAN FORMAT:
No | Symbol | Action (STRONG BUY/BUY/HOLD/AVOID) | Entry Price | Stop Loss | Target 1 | Target 2 | Timeframe | Confidence | Alasan Trading (momentum, bandar, teknikal)

KRITERIA PRIORITAS:
1. VOLUME SPIKES (indikasi bandar masuk)
2. AKUMULASI SENYAP (volume naik, harga tertahan)
3. CORPORATE ACTION (dividen, laporan keuangan, stock split)
4. BREAKOUT CONFIRMATION (price > resistance)
5. MOMENTUM STRONG (change > 3%%)

HINDARI:
- Saham sudah overbought (change > 15%%)
- Volume rendah (< 0.8x average)
- Trend masih downtrend
- Tidak ada catalyst`

	return fmt.Sprintf(promptTemplate, len(shortlist), totalRetrieved, stockBuilder.String())
}

// BuildStyledChatPrompt appends the speaking style and general rules to a user prompt.
func BuildStyledChatPrompt(prompt string, rules *dto.ChatRules) string {
	if rules == nil || rules.SpeakingStyle == nil {
		return prompt
	}
	return fmt.Sprintf("%s\n\nIMPORTANT: %s. Examples: %s. %s.",
		prompt,
		rules.SpeakingStyle.Description,
		strings.Join(rules.SpeakingStyle.Examples, ", "),
		strings.Join(rules.GeneralRules, ", "),
	)
}
