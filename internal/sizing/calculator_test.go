package sizing

import (
	"errors"
	"math"
	"testing"

	"github.com/betbot/gokelly/internal/domain"
)

const tolerance = 1e-12

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

// 规格场景：NO, ps=25, k=64, bankroll=86.71, kelly=0.5, 卖出。
// 全凯利分数为 11/36（与原始脚本一致），半凯利即 11/72。
func TestCalculate_ConcreteScenario(t *testing.T) {
	spec := domain.BetSpec{
		Side:     domain.SideNo,
		Ps:       25,
		Strike:   64,
		Bankroll: 86.71,
		Kelly:    0.5,
		IsBid:    false,
	}

	res, err := Calculate(spec)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}

	wantFraction := 11.0 / 72.0
	if !almostEqual(res.Fraction, wantFraction) {
		t.Fatalf("Fraction got=%v want=%v", res.Fraction, wantFraction)
	}
	// Stake 必须是 Fraction 与 Bankroll 的精确乘积
	if res.Stake != res.Fraction*spec.Bankroll {
		t.Fatalf("Stake got=%v want exact %v", res.Stake, res.Fraction*spec.Bankroll)
	}
	// 卖出 NO 的有效价格为 0.36，张数为 ⌊stake/0.36⌋ 取负
	if res.Contracts >= 0 {
		t.Fatalf("Contracts got=%d, want negative on sell", res.Contracts)
	}
	if res.Note != "" {
		t.Fatalf("unexpected note: %q", res.Note)
	}
}

// 幂等性：相同输入重复计算必须逐位一致
func TestCalculate_Determinism(t *testing.T) {
	spec := domain.BetSpec{
		Side:     domain.SideNo,
		Ps:       25,
		Strike:   64,
		Bankroll: 86.71,
		Kelly:    0.5,
		IsBid:    false,
	}

	first, err := Calculate(spec)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	second, err := Calculate(spec)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}

	if math.Float64bits(first.Fraction) != math.Float64bits(second.Fraction) {
		t.Fatalf("Fraction not bit-identical: %x vs %x",
			math.Float64bits(first.Fraction), math.Float64bits(second.Fraction))
	}
	if math.Float64bits(first.Stake) != math.Float64bits(second.Stake) {
		t.Fatalf("Stake not bit-identical: %x vs %x",
			math.Float64bits(first.Stake), math.Float64bits(second.Stake))
	}
	if first.Contracts != second.Contracts || first.Edge != second.Edge {
		t.Fatalf("results differ: %+v vs %+v", first, second)
	}
}

// 盈亏平衡：主观概率等于行权价隐含的平衡概率时没有优势，不下注
func TestCalculate_ZeroEdge(t *testing.T) {
	spec := domain.BetSpec{
		Side:     domain.SideYes,
		Ps:       64,
		Strike:   64,
		Bankroll: 1000,
		Kelly:    1.0,
		IsBid:    true,
	}

	res, err := Calculate(spec)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if res.Fraction != 0 {
		t.Fatalf("Fraction got=%v want exactly 0 at breakeven", res.Fraction)
	}
	if res.Stake != 0 || res.Contracts != 0 {
		t.Fatalf("no-bet result must be empty, got %+v", res)
	}
	if res.Edge != 0 {
		t.Fatalf("Edge got=%v want 0 at breakeven", res.Edge)
	}
}

// 负优势：比例钳制到 0，但 edge 仍按负值报告（诊断用）
func TestCalculate_NegativeEdgeStillReported(t *testing.T) {
	spec := domain.BetSpec{
		Side:     domain.SideYes,
		Ps:       30,
		Strike:   64,
		Bankroll: 500,
		Kelly:    0.5,
		IsBid:    true,
	}

	res, err := Calculate(spec)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if !res.NoBet() {
		t.Fatalf("expected no bet, got %+v", res)
	}
	if res.Edge >= 0 {
		t.Fatalf("Edge got=%v, want negative diagnostic value", res.Edge)
	}
}

// 确定性边界：ps=100 在任何 <100 的行权价下给出有限的、封顶的比例
func TestCalculate_Certainty(t *testing.T) {
	for _, strike := range []float64{1, 25, 50, 99, 99.99} {
		spec := domain.BetSpec{
			Side:     domain.SideYes,
			Ps:       100,
			Strike:   strike,
			Bankroll: 200,
			Kelly:    1.0,
			IsBid:    true,
		}
		res, err := Calculate(spec)
		if err != nil {
			t.Fatalf("strike=%v: Calculate error: %v", strike, err)
		}
		if math.IsNaN(res.Fraction) || math.IsInf(res.Fraction, 0) {
			t.Fatalf("strike=%v: Fraction not finite: %v", strike, res.Fraction)
		}
		// q=1 时公式极限为 f*=1，满仓
		if res.Fraction != 1 {
			t.Fatalf("strike=%v: Fraction got=%v want 1", strike, res.Fraction)
		}
		if res.Stake != spec.Bankroll {
			t.Fatalf("strike=%v: Stake got=%v want bankroll", strike, res.Stake)
		}
	}

	// 分数凯利仍然生效：半凯利下只投一半
	res, err := Calculate(domain.BetSpec{
		Side: domain.SideYes, Ps: 100, Strike: 50,
		Bankroll: 200, Kelly: 0.5, IsBid: true,
	})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if res.Fraction != 0.5 {
		t.Fatalf("Fraction got=%v want 0.5", res.Fraction)
	}
}

// 价格边界（0/100）：不得除零或产生 NaN
func TestCalculate_PriceBoundaries(t *testing.T) {
	cases := []struct {
		name         string
		spec         domain.BetSpec
		wantFraction float64
		wantNote     bool
	}{
		{
			// 按 0 买入：损失侧为零，确定性方向满仓（带警告）
			name: "buy at zero",
			spec: domain.BetSpec{Side: domain.SideYes, Ps: 50, Strike: 0,
				Bankroll: 100, Kelly: 1, IsBid: true},
			wantFraction: 1,
			wantNote:     true,
		},
		{
			// 按 100 买入：任何下行都是纯损失，不下注
			name: "buy at hundred",
			spec: domain.BetSpec{Side: domain.SideYes, Ps: 99, Strike: 100,
				Bankroll: 100, Kelly: 1, IsBid: true},
			wantFraction: 0,
		},
		{
			// 按 0 卖出：赢侧赔付为零，不下注
			name: "sell at zero",
			spec: domain.BetSpec{Side: domain.SideYes, Ps: 50, Strike: 0,
				Bankroll: 100, Kelly: 1, IsBid: false},
			wantFraction: 0,
		},
		{
			// 按 100 卖出：损失侧为零，确定性方向满仓（带警告）
			name: "sell at hundred",
			spec: domain.BetSpec{Side: domain.SideYes, Ps: 50, Strike: 100,
				Bankroll: 100, Kelly: 1, IsBid: false},
			wantFraction: 1,
			wantNote:     true,
		},
		{
			// ps=0 买 YES：q=0，没有赢面，不下注
			name: "zero win probability",
			spec: domain.BetSpec{Side: domain.SideYes, Ps: 0, Strike: 30,
				Bankroll: 100, Kelly: 1, IsBid: true},
			wantFraction: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Calculate(tc.spec)
			if err != nil {
				t.Fatalf("Calculate error: %v", err)
			}
			if math.IsNaN(res.Fraction) || math.IsNaN(res.Stake) || math.IsNaN(res.Edge) {
				t.Fatalf("NaN in result: %+v", res)
			}
			if res.Fraction != tc.wantFraction {
				t.Fatalf("Fraction got=%v want=%v", res.Fraction, tc.wantFraction)
			}
			if tc.wantNote && res.Note == "" {
				t.Fatalf("expected warning note, got none")
			}
		})
	}
}

// 非法输入：返回 InvalidInputError，不产生任何部分结果
func TestCalculate_InvalidInput(t *testing.T) {
	valid := domain.BetSpec{
		Side: domain.SideYes, Ps: 60, Strike: 50,
		Bankroll: 100, Kelly: 0.5, IsBid: true,
	}

	cases := []struct {
		name      string
		mutate    func(*domain.BetSpec)
		wantField string
	}{
		{"negative bankroll", func(s *domain.BetSpec) { s.Bankroll = -10 }, "bankroll"},
		{"zero bankroll", func(s *domain.BetSpec) { s.Bankroll = 0 }, "bankroll"},
		{"ps below range", func(s *domain.BetSpec) { s.Ps = -1 }, "ps"},
		{"ps above range", func(s *domain.BetSpec) { s.Ps = 100.01 }, "ps"},
		{"ps NaN", func(s *domain.BetSpec) { s.Ps = math.NaN() }, "ps"},
		{"strike above range", func(s *domain.BetSpec) { s.Strike = 101 }, "k"},
		{"strike NaN", func(s *domain.BetSpec) { s.Strike = math.NaN() }, "k"},
		{"kelly zero", func(s *domain.BetSpec) { s.Kelly = 0 }, "kelly"},
		{"kelly above one", func(s *domain.BetSpec) { s.Kelly = 1.5 }, "kelly"},
		{"kelly negative", func(s *domain.BetSpec) { s.Kelly = -0.25 }, "kelly"},
		{"bad side", func(s *domain.BetSpec) { s.Side = "MAYBE" }, "side"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := valid
			tc.mutate(&spec)

			res, err := Calculate(spec)
			if err == nil {
				t.Fatalf("expected error, got result %+v", res)
			}
			var invalid *domain.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("error type got=%T want *domain.InvalidInputError", err)
			}
			if invalid.Field != tc.wantField {
				t.Fatalf("error field got=%q want=%q (err: %v)", invalid.Field, tc.wantField, err)
			}
			// 校验失败时不得报告任何部分结果
			if res != (domain.SizingResult{}) {
				t.Fatalf("partial result on invalid input: %+v", res)
			}
		})
	}
}
