package sizing

import (
	"testing"

	"github.com/betbot/gokelly/internal/domain"
)

// 张数口径沿用原始脚本：⌊stake / price⌋ 整张，卖出取负
func TestContractCount(t *testing.T) {
	// 买 YES @ 60，ps=70，全凯利：f* = (0.7-0.6)/0.4 = 0.25
	// stake = 250，价格 0.60 -> ⌊250/0.6⌋ = 416 张
	res, err := Calculate(domain.BetSpec{
		Side: domain.SideYes, Ps: 70, Strike: 60,
		Bankroll: 1000, Kelly: 1, IsBid: true,
	})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if res.Contracts != 416 {
		t.Fatalf("Contracts got=%d want=416", res.Contracts)
	}

	// 卖出时符号取负（规格场景：卖 NO，有效价 0.36）
	res, err = Calculate(domain.BetSpec{
		Side: domain.SideNo, Ps: 25, Strike: 64,
		Bankroll: 86.71, Kelly: 0.5, IsBid: false,
	})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	// stake = 86.71 * 11/72 ≈ 13.2474，⌊13.2474/0.36⌋ = 36
	if res.Contracts != -36 {
		t.Fatalf("Contracts got=%d want=-36", res.Contracts)
	}
}

// 二进制小数陷阱：0.29/0.01 按 float 计算会得到 28.999... 截断成 28
func TestContractCount_DecimalDivision(t *testing.T) {
	if got := contractCount(0.29, 0.01, true); got != 29 {
		t.Fatalf("contractCount(0.29, 0.01) got=%d want=29", got)
	}
	if got := contractCount(0.29, 0.01, false); got != -29 {
		t.Fatalf("sell sign: got=%d want=-29", got)
	}
}

// 退化价格（0）下张数无定义，返回 0
func TestContractCount_ZeroPrice(t *testing.T) {
	if got := contractCount(100, 0, true); got != 0 {
		t.Fatalf("contractCount at zero price got=%d want=0", got)
	}
	if got := contractCount(0, 0.5, true); got != 0 {
		t.Fatalf("contractCount with zero stake got=%d want=0", got)
	}
}
