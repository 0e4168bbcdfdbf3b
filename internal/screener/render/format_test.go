package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

const sampleAnalysis = `Berikut rekomendasi hari ini:

| No | Symbol | Action | Entry Price | Stop Loss | Target 1 | Alasan Trading |
|----|:------:|--------|-------------|-----------|----------|----------------|
| 1 | BBCA | STRONG BUY | 9150 | 8600 | 9600 | Akumulasi institusi |
| 2 | TLKM | HOLD | 3500 | 3290 | 3780 | |

Tetap disiplin.`

func TestFormatAnalysis_TableRoundTrip(t *testing.T) {
	doc := parseHTML(t, FormatAnalysis(sampleAnalysis))

	require.Equal(t, 1, doc.Find("div.analysis-formatted").Length())
	require.Equal(t, 1, doc.Find("table.trading-table").Length())

	var headers []string
	doc.Find("thead th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, s.Text())
	})
	assert.Equal(t, []string{"No", "Symbol", "Action", "Entry Price", "Stop Loss", "Target 1"}, headers)

	var rows [][]string
	doc.Find("tbody tr").Not(".reason-row").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, td.Text())
		})
		rows = append(rows, cells)
	})
	assert.Equal(t, [][]string{
		{"1", "BBCA", "STRONG BUY", "9150", "8600", "9600"},
		{"2", "TLKM", "HOLD", "3500", "3290", "3780"},
	}, rows)

	reasons := doc.Find("tr.reason-row")
	require.Equal(t, 1, reasons.Length())
	assert.Contains(t, reasons.Text(), "Akumulasi institusi")
	colspan, _ := reasons.Find("td").Attr("colspan")
	assert.Equal(t, "6", colspan)

	assert.Contains(t, doc.Find("div.analysis-formatted").Text(), "Tetap disiplin.")
}

func TestFormatAnalysis_ActionSpans(t *testing.T) {
	doc := parseHTML(t, FormatAnalysis("STRONG BUY untuk BBCA, BUY untuk TLKM, AVOID untuk GOTO, SELL jika tembus"))

	assert.Equal(t, 1, doc.Find("span.trading-signal.strong-buy").Length())
	assert.Equal(t, 1, doc.Find("span.trading-signal.buy").Length())
	assert.Equal(t, 2, doc.Find("span.trading-signal.avoid").Length())
	assert.Equal(t, 0, doc.Find("span.trading-signal span").Length())
}

func TestFormatAnalysis_EscapesMarkup(t *testing.T) {
	input := "<script>alert('x')</script> **penting**\n| A | B |\n|---|---|\n| <img src=x onerror=alert(1)> | ok |"
	out := FormatAnalysis(input)
	doc := parseHTML(t, out)

	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, 0, doc.Find("img").Length())
	assert.Contains(t, doc.Text(), "<script>alert('x')</script>")
	assert.Equal(t, "penting", doc.Find("strong").First().Text())
}

func TestFormatAnalysis_StripsSpans(t *testing.T) {
	doc := parseHTML(t, FormatAnalysis(`<span style="color:red">HOLD</span> dulu`))

	assert.Equal(t, 1, doc.Find("span").Length())
	assert.Equal(t, 1, doc.Find("span.trading-signal.hold").Length())
}

func TestFormatAnalysis_Idempotent(t *testing.T) {
	once := FormatAnalysis(sampleAnalysis)
	assert.Equal(t, once, FormatAnalysis(once))

	prose := FormatAnalysis("hanya teks **tebal** dan *miring*")
	assert.Equal(t, prose, FormatAnalysis(prose))
}

func TestFormatAnalysis_EscapesRawHTML(t *testing.T) {
	out := FormatAnalysis("Berikut tabel <table><tr><td>BBCA</td></tr></table><script>alert(document.cookie)</script><img src=x onerror=alert(1)>")

	assert.True(t, strings.HasPrefix(out, wrapperOpen))
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "<table><tr>")
	assert.Contains(t, out, "&lt;script&gt;")

	doc := parseHTML(t, out)
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, 0, doc.Find("img").Length())
	assert.Equal(t, 0, doc.Find("table").Length())
}

func TestFormatAnalysis_SanitizesSpoofedWrapper(t *testing.T) {
	out := FormatAnalysis(wrapperOpen + `<strong>BUY</strong><script>alert(1)</script><img src=x onerror=alert(1)><span class="trading-signal buy" onclick="x()">BUY</span></div>`)

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onerror")
	assert.NotContains(t, out, "onclick")
	doc := parseHTML(t, out)
	assert.Equal(t, 1, doc.Find("strong").Length())
	assert.Equal(t, 1, doc.Find("span.trading-signal.buy").Length())
}

func TestFormatAnalysis_InlineMarkup(t *testing.T) {
	doc := parseHTML(t, FormatAnalysis("## Ringkasan\n**Target** tercapai, *cek* Stop Loss\nVOLUME SPIKES dan breakout"))

	assert.Equal(t, "Ringkasan", doc.Find("span.analysis-heading").Text())
	assert.Equal(t, 1, doc.Find("em").Length())
	assert.Equal(t, 1, doc.Find("strong.stop-loss").Length())
	assert.Equal(t, 1, doc.Find("span.volume-spike").Length())
	assert.Equal(t, "💥 breakout", doc.Find("span.breakout-signal").Text())
	assert.Equal(t, 2, doc.Find("br").Length())
}

func TestFormatAnalysis_WholeWordOnly(t *testing.T) {
	doc := parseHTML(t, FormatAnalysis("BUYBACK dan HOLDING bukan aksi"))
	assert.Equal(t, 0, doc.Find("span.trading-signal").Length())
}

func TestSplitCells(t *testing.T) {
	assert.Equal(t, []string{"a", "", "c"}, splitCells(" | a |  | c | "))
	assert.True(t, isSeparatorRow([]string{"---", ":---:", "--:"}))
	assert.False(t, isSeparatorRow([]string{"---", "x"}))
	assert.False(t, isTableLine("|"))
	assert.True(t, isTableLine("  | a |  "))
}
