package render

import (
	"bytes"
	"fmt"
	"html/template"

	"golang-bandar-screener/internal/entity"
)

const (
	maxSummaryLeaders     = 5
	volumeLeaderMinRatio  = 2.0
	breakoutMinChangePerc = 3.0
)

var summaryTemplate = template.Must(template.New("summary").Parse(`<div class="trading-summary">
<h3>🎯 Trading Opportunities Summary</h3>
<div class="summary-grid">
<div class="summary-item">
<h4>📊 Screening Results</h4>
<p>Total Screened: <strong>{{.TotalScreened}}</strong></p>
<p>Potential Trades: <strong>{{.PotentialTrades}}</strong></p>
<p>Success Rate: <strong>{{.SuccessRate}}</strong></p>
</div>
<div class="summary-item">
<h4>🚀 Volume Leaders</h4>
{{range .VolumeLeaders}}<p class="volume-leader">{{.Symbol}}: {{printf "%.2f" .VolumeRatio}}x volume</p>
{{end}}</div>
<div class="summary-item">
<h4>💥 Breakout Stocks</h4>
{{range .BreakoutStocks}}<p class="breakout-stock">{{.Symbol}}: +{{printf "%.2f" .ChangePercent}}%</p>
{{end}}</div>
</div>
</div>`))

// SummaryItem is one stock listed in the summary block.
type SummaryItem struct {
	Symbol        string
	VolumeRatio   float64
	ChangePercent float64
}

// Summary is the data rendered by RenderSummary.
type Summary struct {
	TotalScreened   int
	PotentialTrades int
	SuccessRate     string
	VolumeLeaders   []SummaryItem
	BreakoutStocks  []SummaryItem
}

// NewSummary derives the summary block from the shortlist and the number of screened stocks.
func NewSummary(shortlist []entity.ScoredSnapshot, totalScreened int) Summary {
	rate := 0.0
	if totalScreened > 0 {
		rate = float64(len(shortlist)) / float64(totalScreened) * 100
	}

	summary := Summary{
		TotalScreened:   totalScreened,
		PotentialTrades: len(shortlist),
		SuccessRate:     fmt.Sprintf("%.1f%%", rate),
	}
	for _, s := range shortlist {
		item := SummaryItem{Symbol: s.Symbol, VolumeRatio: s.VolumeRatio, ChangePercent: s.ChangePercent}
		if s.VolumeRatio > volumeLeaderMinRatio && len(summary.VolumeLeaders) < maxSummaryLeaders {
			summary.VolumeLeaders = append(summary.VolumeLeaders, item)
		}
		if s.ChangePercent > breakoutMinChangePerc && len(summary.BreakoutStocks) < maxSummaryLeaders {
			summary.BreakoutStocks = append(summary.BreakoutStocks, item)
		}
	}
	return summary
}

// RenderSummary renders the trading summary block.
func RenderSummary(summary Summary) (string, error) {
	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, summary); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return buf.String(), nil
}

// RenderResult renders the summary block followed by the formatted recommendation.
func RenderResult(shortlist []entity.ScoredSnapshot, totalScreened int, analysis string) (string, error) {
	summary, err := RenderSummary(NewSummary(shortlist, totalScreened))
	if err != nil {
		return "", err
	}
	return summary +
		`<div class="analysis-title">🎯 Trading Recommendations (Bandarmology Focus)</div>` +
		`<div class="analysis-result">` + FormatAnalysis(analysis) + `</div>`, nil
}
