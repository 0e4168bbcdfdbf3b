package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const wrapperOpen = `<div class="analysis-formatted">`

var (
	spanTagPattern   = regexp.MustCompile(`</?span[^>]*>`)
	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	separatorPattern = regexp.MustCompile(`^[-:]+$`)
	boldPattern      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern    = regexp.MustCompile(`\*([^*]+?)\*`)
	headingPattern   = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	actionPattern    = regexp.MustCompile(`\b(STRONG BUY|BUY|HOLD|AVOID|SELL)\b`)
	keywordPattern   = regexp.MustCompile(`(?i)\b(Entry Price|Stop Loss|Target|Timeframe|Confidence|VOLUME SPIKES|BREAKOUT|MOMENTUM)\b`)
)

// formattedPolicy allows exactly the markup FormatAnalysis produces.
var formattedPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "span", "strong", "em", "br", "table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-z0-9 -]+$`)).Globally()
	p.AllowAttrs("colspan").Matching(bluemonday.Integer).OnElements("td")
	return p
}()

var actionClasses = map[string]string{
	"STRONG BUY": "strong-buy",
	"BUY":        "buy",
	"HOLD":       "hold",
	"AVOID":      "avoid",
	"SELL":       "avoid",
}

// FormatAnalysis converts the markdown recommendation text into an HTML fragment.
// Every piece of input text is escaped; the only markup produced is span, strong, em,
// table and br. Input already wrapped by FormatAnalysis is only sanitized again, any other
// raw HTML is escaped as text.
func FormatAnalysis(text string) string {
	if strings.HasPrefix(strings.TrimSpace(text), wrapperOpen) {
		return formattedPolicy.Sanitize(text)
	}

	text = spanTagPattern.ReplaceAllString(text, "")
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var (
		out   strings.Builder
		prose []string
		table [][]string
	)

	flushProse := func() {
		if len(prose) == 0 {
			return
		}
		formatted := make([]string, 0, len(prose))
		for _, line := range prose {
			formatted = append(formatted, formatLine(line))
		}
		out.WriteString(strings.Join(formatted, "<br>"))
		out.WriteString("<br>")
		prose = nil
	}
	flushTable := func() {
		if len(table) == 0 {
			return
		}
		out.WriteString(buildTable(table))
		table = nil
	}

	for _, line := range lines {
		if isTableLine(line) {
			flushProse()
			cells := splitCells(line)
			if isSeparatorRow(cells) {
				continue
			}
			table = append(table, cells)
			continue
		}
		flushTable()
		prose = append(prose, line)
	}
	flushTable()
	flushProse()

	return wrapperOpen + strings.TrimSuffix(out.String(), "<br>") + "</div>"
}

func isTableLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= 2 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

// splitCells splits a pipe row without the outer empty cells.
func splitCells(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	parts = parts[1 : len(parts)-1]
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorPattern.MatchString(c) {
			return false
		}
	}
	return true
}

func isReasonHeader(header string) bool {
	h := strings.ToLower(header)
	return strings.Contains(h, "alasan") || strings.Contains(h, "reason")
}

func buildTable(rows [][]string) string {
	header := rows[0]
	reasonCol := -1
	for i, h := range header {
		if isReasonHeader(h) {
			reasonCol = i
			break
		}
	}

	columns := 0
	var b strings.Builder
	b.WriteString(`<table class="trading-table"><thead><tr>`)
	for i, h := range header {
		if i == reasonCol {
			continue
		}
		columns++
		b.WriteString("<th>" + formatCell(h) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	for _, row := range rows[1:] {
		b.WriteString("<tr>")
		reason := ""
		for i := 0; i < len(header); i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == reasonCol {
				reason = cell
				continue
			}
			b.WriteString("<td>" + formatCell(cell) + "</td>")
		}
		b.WriteString("</tr>")
		if reason != "" {
			b.WriteString(fmt.Sprintf(`<tr class="reason-row"><td colspan="%d"><em>%s:</em> %s</td></tr>`,
				columns, html.EscapeString(header[reasonCol]), formatCell(reason)))
		}
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func formatLine(line string) string {
	if m := headingPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
		return fmt.Sprintf(`<span class="analysis-heading h%d">%s</span>`, len(m[1]), formatCell(m[2]))
	}
	return formatCell(line)
}

// formatCell escapes text and applies inline emphasis and highlighting.
func formatCell(text string) string {
	s := html.EscapeString(text)
	s = boldPattern.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicPattern.ReplaceAllString(s, "<em>$1</em>")
	s = outsideTags(s, highlightActions)
	s = outsideTags(s, highlightKeywords)
	return s
}

// outsideTags applies fn to the text between tags only.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	last := 0
	for _, loc := range tagPattern.FindAllStringIndex(s, -1) {
		b.WriteString(fn(s[last:loc[0]]))
		b.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(fn(s[last:]))
	return b.String()
}

func highlightActions(s string) string {
	return actionPattern.ReplaceAllStringFunc(s, func(action string) string {
		return fmt.Sprintf(`<span class="trading-signal %s">%s</span>`, actionClasses[action], action)
	})
}

func highlightKeywords(s string) string {
	return keywordPattern.ReplaceAllStringFunc(s, func(word string) string {
		switch strings.ToLower(word) {
		case "stop loss":
			return `<strong class="stop-loss">` + word + `</strong>`
		case "target":
			return `<strong class="target">` + word + `</strong>`
		case "volume spikes":
			return `<span class="volume-spike">📈 ` + word + `</span>`
		case "breakout":
			return `<span class="breakout-signal">💥 ` + word + `</span>`
		case "momentum":
			return `<span class="momentum-signal">🚀 ` + word + `</span>`
		default:
			return `<strong>` + word + `</strong>`
		}
	})
}
