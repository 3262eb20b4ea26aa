package marketmath

import (
	"fmt"
	"math"
)

// 价格用 pips 表达（price * 10000），覆盖最小 0.0001 的 tick size。
//   - 1 pip = 0.0001
//   - 100 pips = 1 cent
//   - 10000 pips = 1.0
const OnePips = 10000

// PipsFromPercent 百分比报价（0-100）转 pips（四舍五入到 1e-4）
func PipsFromPercent(pct float64) int {
	return int(math.Round(pct * 100))
}

// PercentFromPips pips 转百分比报价
func PercentFromPips(pips int) float64 {
	return float64(pips) / 100
}

// Mirror 镜像价：1 - price（pips）。
//
// YES/NO 订单簿互为镜像（poly-sdk 文档）：
//   Buy YES @ P  ≡  Sell NO @ (1-P)
//   Buy NO  @ P  ≡  Sell YES @ (1-P)
//
// 0 表示缺失，镜像后仍为缺失。
func Mirror(pips int) int {
	if pips <= 0 {
		return 0
	}
	return OnePips - pips
}

// TopOfBook YES/NO 两侧的一档盘口（单位 pips），0 表示该侧缺失。
type TopOfBook struct {
	YesBidPips int
	YesAskPips int
	NoBidPips  int
	NoAskPips  int
}

func (t TopOfBook) Validate() error {
	// 允许单边为 0（缺失），但不能全缺
	if t.YesBidPips <= 0 && t.YesAskPips <= 0 && t.NoBidPips <= 0 && t.NoAskPips <= 0 {
		return fmt.Errorf("top-of-book is empty")
	}
	check := func(name string, v int) error {
		if v == 0 {
			return nil
		}
		if v < 0 || v > OnePips {
			return fmt.Errorf("%s out of range: %d", name, v)
		}
		return nil
	}
	if err := check("yesBidPips", t.YesBidPips); err != nil {
		return err
	}
	if err := check("yesAskPips", t.YesAskPips); err != nil {
		return err
	}
	if err := check("noBidPips", t.NoBidPips); err != nil {
		return err
	}
	return check("noAskPips", t.NoAskPips)
}

// EffectiveTradePips 返回指定方向+意图的有效可执行价格（pips，交易一侧的口径）。
//
// 买入取「直接 ask」与「对侧 bid 的镜像价」中较低者；
// 卖出取「直接 bid」与「对侧 ask 的镜像价」中较高者。
// 两条路径都缺失时返回 0。
func EffectiveTradePips(t TopOfBook, yes, buy bool) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	switch {
	case yes && buy:
		return minPos(t.YesAskPips, Mirror(t.NoBidPips)), nil
	case yes && !buy:
		return maxPos(t.YesBidPips, Mirror(t.NoAskPips)), nil
	case !yes && buy:
		return minPos(t.NoAskPips, Mirror(t.YesBidPips)), nil
	default:
		return maxPos(t.NoBidPips, Mirror(t.YesAskPips)), nil
	}
}

// BreakevenPercent 给定行权价（YES 空间，百分比）下，该笔交易盈亏平衡的
// 主观概率（百分比，YES 空间）。
//
// 买入时平衡点就是行权价；卖出时是镜像价 100-strike（与方向无关：
// YES/NO 的镜像结算让两侧在 YES 空间得到同一个平衡点）。
// 高于（YES 向）/ 低于（NO 向）此值才有优势。
func BreakevenPercent(strike float64, buy bool) float64 {
	if buy {
		return strike
	}
	return 100 - strike
}

// min/max，忽略 <=0 的缺失值
func minPos(a, b int) int {
	if a <= 0 {
		return b
	}
	if b <= 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func maxPos(a, b int) int {
	if a <= 0 {
		return b
	}
	if b <= 0 {
		return a
	}
	if a > b {
		return a
	}
	return b
}
