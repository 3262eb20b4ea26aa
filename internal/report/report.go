package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/betbot/gokelly/internal/domain"
	"github.com/betbot/gokelly/pkg/marketmath"
)

var (
	// 样式定义
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	betStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("2")) // 绿色

	noBetStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1")) // 红色

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")) // 黄色

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// Render 渲染人类可读的定额报告（stdout 用）
func Render(spec domain.BetSpec, res domain.SizingResult) string {
	intent := "SELL"
	if spec.IsBid {
		intent = "BUY"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Kelly 定额建议"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("Side", fmt.Sprintf("%s %s", intent, spec.Side))
	row("Ps", fmt.Sprintf("%.2f%%", spec.Ps))
	row("Strike", fmt.Sprintf("%.2f%%", spec.Strike))
	row("Breakeven", fmt.Sprintf("%.2f%%", marketmath.BreakevenPercent(spec.Strike, spec.IsBid)))
	row("Bankroll", fmt.Sprintf("%.2f", spec.Bankroll))
	row("Kelly", fmt.Sprintf("%.2f", spec.Kelly))
	b.WriteString("\n")

	if res.NoBet() {
		b.WriteString(noBetStyle.Render("NO BET"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("  (edge %.4f per unit)", res.Edge)))
		b.WriteString("\n")
	} else {
		b.WriteString(betStyle.Render(fmt.Sprintf("BET %.2f", res.Stake)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("  (%.2f%% of bankroll)", res.Fraction*100)))
		b.WriteString("\n")
		row("Contracts", fmt.Sprintf("%d", res.Contracts))
		// Edge 为每单位投入的期望收益，乘投入金额换算成货币口径
		row("Edge", fmt.Sprintf("%.4f per unit (%.2f on stake)", res.Edge, res.Edge*res.Stake))
	}

	if res.Note != "" {
		b.WriteString(warnStyle.Render("⚠ " + res.Note))
		b.WriteString("\n")
	}

	return borderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// jsonPayload 结构化输出（程序化调用方）
type jsonPayload struct {
	Side               string  `json:"side"`
	IsBid              bool    `json:"is_bid"`
	Ps                 float64 `json:"subjective_probability"`
	Strike             float64 `json:"strike"`
	Bankroll           float64 `json:"bankroll"`
	Kelly              float64 `json:"kelly_fraction"`
	FractionOfBankroll float64 `json:"fraction_of_bankroll"`
	StakeAmount        float64 `json:"stake_amount"`
	ImpliedEdge        float64 `json:"implied_edge"`
	Contracts          int64   `json:"contracts"`
	Note               string  `json:"note,omitempty"`
}

// RenderJSON 以 JSON 输出结果（字段名与规格口径一致）
func RenderJSON(spec domain.BetSpec, res domain.SizingResult) (string, error) {
	payload := jsonPayload{
		Side:               string(spec.Side),
		IsBid:              spec.IsBid,
		Ps:                 spec.Ps,
		Strike:             spec.Strike,
		Bankroll:           spec.Bankroll,
		Kelly:              spec.Kelly,
		FractionOfBankroll: res.Fraction,
		StakeAmount:        res.Stake,
		ImpliedEdge:        res.Edge,
		Contracts:          res.Contracts,
		Note:               res.Note,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
