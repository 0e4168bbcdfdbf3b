package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/pkg/utils"
)

// MaxMessageLength keeps every part under Telegram's 4096 character limit.
const MaxMessageLength = 4090

// FormatScreeningResultForTelegram formats the shortlist of a screening run into Markdown parts,
// ensuring each part does not exceed MaxMessageLength.
func FormatScreeningResultForTelegram(result *dto.ScreeningResult) []string {
	if result == nil || len(result.Shortlist) == 0 {
		return []string{"Tidak ada saham yang lolos screening hari ini."}
	}

	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		var header string
		if part == 1 {
			header = fmt.Sprintf("🕵️ *Screening Bandarmology* 🕵️\n%s\n📊 %d dari %d saham\n\n",
				utils.PrettyDate(result.FinishedAt), len(result.Shortlist), result.TotalRetrieved)
			if result.UsedFallbackShortlist {
				header += "_Tidak ada saham yang memenuhi kriteria, menampilkan volume tertinggi._\n\n"
			}
		} else {
			header = fmt.Sprintf("---*Lanjutan Screening Bandarmology Part %d*---\n\n", part)
		}
		currentMessage.WriteString(header)
	}

	startNewPart()

	for _, s := range result.Shortlist {
		entry := formatShortlistEntry(s)
		if currentMessage.Len()+len(entry) > MaxMessageLength {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(entry)
	}

	if result.Recommendation.Source == dto.RecommendationSourceFallback {
		note := "ℹ️ _Rekomendasi dibuat otomatis tanpa AI._\n"
		if currentMessage.Len()+len(note) > MaxMessageLength {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(note)
	}

	messages = append(messages, currentMessage.String())
	return messages
}

func formatShortlistEntry(s entity.ScoredSnapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 *- - - - - %s - - - - -*\n", s.Symbol))
	b.WriteString(fmt.Sprintf("💰 *Harga:* %.0f (%+.2f%%)\n", s.Price, s.ChangePercent))
	b.WriteString(fmt.Sprintf("🎯 *Score:* %d | *Bandar:* %s | *Risk:* %s\n", s.Score, s.BandarType, riskIcon(s.RiskLevel)))
	if len(s.Signals) > 0 {
		b.WriteString(fmt.Sprintf("📡 *Sinyal:* %s\n", strings.Join(s.Signals, ", ")))
	}

	entry := s.EntryPrice
	if s.EarlyEntryPrice != nil {
		entry = *s.EarlyEntryPrice
	}
	b.WriteString(fmt.Sprintf("🟢 *Entry:* %.0f | *TP:* %.0f / %.0f / %.0f | *SL:* %.0f\n",
		entry, s.PriceTargets[0], s.PriceTargets[1], s.PriceTargets[2], s.StopLoss))
	if s.RiskRewardRatio != nil {
		b.WriteString(fmt.Sprintf("🔁 *R/R:* %.2f\n", *s.RiskRewardRatio))
	}
	if action := s.DominantAction(); action != nil {
		b.WriteString(fmt.Sprintf("🏢 *Aksi Korporasi:* %s (%d hari)\n", action.Detail, action.DaysToEvent))
	}
	b.WriteString("\n")
	return b.String()
}

func riskIcon(level entity.RiskLevel) string {
	switch level {
	case entity.RiskLow:
		return "🟢 LOW"
	case entity.RiskMedium:
		return "🟡 MEDIUM"
	case entity.RiskHigh:
		return "🔴 HIGH"
	case entity.RiskPumpDump:
		return "⚠️ PUMP_DUMP"
	default:
		return string(level)
	}
}

// FormatErrorAlertMessage formats a failed run for Telegram.
func FormatErrorAlertMessage(time time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(time), errType, errMsg, data)
}
