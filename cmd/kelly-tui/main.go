package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/betbot/gokelly/internal/domain"
	"github.com/betbot/gokelly/internal/report"
	"github.com/betbot/gokelly/internal/sizing"
	"github.com/betbot/gokelly/pkg/config"
)

var (
	// 样式定义
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// 表单行索引
const (
	rowSide = iota
	rowIntent
	rowPs
	rowStrike
	rowBankroll
	rowKelly
	rowCount
)

// model TUI 状态：一个字段编辑表单加一个结果视图
type model struct {
	values [rowCount]string // 数值行的编辑缓冲（side/intent 行不用）
	cursor int

	side  domain.Side
	isBid bool

	spec   *domain.BetSpec     // 最近一次成功计算的输入
	result *domain.SizingResult
	errMsg string
}

func initialModel(cfg *config.Config) model {
	m := model{
		side:  domain.SideYes,
		isBid: true,
	}
	m.values[rowKelly] = trimFloat(cfg.Sizing.DefaultKelly)
	if cfg.Sizing.DefaultBankroll > 0 {
		m.values[rowBankroll] = trimFloat(cfg.Sizing.DefaultBankroll)
	}
	return m
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "down":
		m.cursor = (m.cursor + 1) % rowCount
		return m, nil

	case "shift+tab", "up":
		m.cursor = (m.cursor - 1 + rowCount) % rowCount
		return m, nil

	case "left", "right", " ":
		// 枚举行用方向键/空格切换
		switch m.cursor {
		case rowSide:
			if m.side == domain.SideYes {
				m.side = domain.SideNo
			} else {
				m.side = domain.SideYes
			}
		case rowIntent:
			m.isBid = !m.isBid
		}
		return m, nil

	case "backspace":
		if v := m.values[m.cursor]; len(v) > 0 {
			m.values[m.cursor] = v[:len(v)-1]
		}
		return m, nil

	case "enter":
		m.compute()
		return m, nil
	}

	// 数值行接受数字和小数点
	if m.cursor >= rowPs && len(keyMsg.Runes) == 1 {
		r := keyMsg.Runes[0]
		if (r >= '0' && r <= '9') || r == '.' {
			m.values[m.cursor] += string(r)
		}
	}
	return m, nil
}

// compute 解析表单并调用计算器，错误直接显示在表单下方
func (m *model) compute() {
	spec := domain.BetSpec{
		Side:     m.side,
		Ps:       parseField(m.values[rowPs]),
		Strike:   parseField(m.values[rowStrike]),
		Bankroll: parseField(m.values[rowBankroll]),
		Kelly:    parseField(m.values[rowKelly]),
		IsBid:    m.isBid,
	}

	res, err := sizing.Calculate(spec)
	if err != nil {
		m.errMsg = err.Error()
		m.result = nil
		m.spec = nil
		return
	}
	m.errMsg = ""
	m.spec = &spec
	m.result = &res
}

// parseField 空串或非法输入返回 NaN，交给计算器的校验报错
func parseField(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("gokelly 交互计算器"))
	b.WriteString("\n")

	labels := [rowCount]string{"Side", "Intent", "Ps %", "Strike %", "Bankroll", "Kelly"}
	for i := 0; i < rowCount; i++ {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}

		var value string
		switch i {
		case rowSide:
			value = string(m.side)
		case rowIntent:
			if m.isBid {
				value = "BUY (bid)"
			} else {
				value = "SELL (ask)"
			}
		default:
			value = m.values[i]
			if i == m.cursor {
				value += cursorStyle.Render("_")
			}
		}

		b.WriteString(prefix)
		b.WriteString(fieldLabelStyle.Render(labels[i]))
		b.WriteString(fieldValueStyle.Render(value))
		b.WriteString("\n")
	}

	view := formStyle.Render(strings.TrimRight(b.String(), "\n"))

	if m.errMsg != "" {
		view += "\n" + errStyle.Render(m.errMsg)
	}
	if m.result != nil && m.spec != nil {
		view += "\n" + report.Render(*m.spec, *m.result)
	}

	view += "\n" + helpStyle.Render("tab/↑↓ 切换字段  ←→/space 切换枚举  enter 计算  esc 退出")
	return view + "\n"
}

func main() {
	cfgPath := flag.String("config", "", "配置文件路径（.yaml/.yml/.json）")
	flag.Parse()

	_ = godotenv.Load()

	if *cfgPath != "" {
		config.SetConfigPath(*cfgPath)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(cfg))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI 运行失败: %v\n", err)
		os.Exit(1)
	}
}
