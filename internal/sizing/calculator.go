package sizing

import (
	"github.com/betbot/gokelly/internal/domain"
)

const (
	// noteCapped 原始计算超过 1.0（极端优势输入），比例被截断到满仓
	noteCapped = "fraction capped at 1.0 (raw kelly fraction exceeded bankroll)"
	// noteDegenerate 价格在 0/100 边界，损失侧为零，按确定性方向给出满仓上限
	noteDegenerate = "degenerate price boundary (zero-magnitude loss side), capped at 1.0"
)

// Calculate 计算单笔二元合约的分数凯利定额建议。
//
// 纯函数：无共享状态、无 I/O，可并发调用。输入校验为全有或全无，
// 校验失败返回 *domain.InvalidInputError 且不进行任何计算。
//
// 约定：Ps 与 Strike 均为 YES 空间的百分比报价；NO 侧的有效价格为镜像价
// 1 - price（NO 合约与 YES 合约互为镜像结算）。
func Calculate(spec domain.BetSpec) (domain.SizingResult, error) {
	if err := spec.Validate(); err != nil {
		return domain.SizingResult{}, err
	}

	// 1. 归一化到 [0,1]
	p := spec.Ps / 100
	price := spec.Strike / 100

	// 2. 换算到实际交易的一侧
	q := p
	c := price
	if spec.Side == domain.SideNo {
		q = 1 - p
		c = 1 - price
	}

	// 3. 买入/卖出的赔付结构（每单位投入）
	//    买入：赢得 1-c，输掉 c；卖出：赢得 c，输掉 1-c（先收价款，输时赔付）
	var win, loss float64
	if spec.IsBid {
		win, loss = 1-c, c
	} else {
		win, loss = c, 1-c
	}

	// 诊断性期望收益（每单位投入）：无论是否下注都报告
	edge := q*win - (1-q)*loss

	result := domain.SizingResult{Edge: edge}

	var fraction float64
	switch {
	case win <= 0:
		// 赢侧赔付为零（例如按 100 买入）：任何下行都是纯损失，不下注
		fraction = 0
	case loss <= 0:
		// 损失侧为零（价格在 0/100 边界）：b 无界，退化为确定性方向
		if q > 0 {
			fraction = 1
			result.Note = noteDegenerate
		}
	default:
		// 4. 二元凯利 f* = (q*b - (1-q)) / b，b = win/loss。
		//    按 edge/win 计算，代数上等价，且在盈亏平衡点（q == c）时精确为零。
		fStar := edge / win
		// 5. 分数凯利
		fraction = spec.Kelly * fStar
	}

	// 6. 钳制：非正 -> 不下注；超过 1.0 -> 截断到满仓并附警告
	if fraction <= 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
		if result.Note == "" {
			result.Note = noteCapped
		}
	}

	result.Fraction = fraction
	// 7. 投入金额（保持 Stake == Fraction * Bankroll 的精确等式）
	result.Stake = fraction * spec.Bankroll
	result.Contracts = contractCount(result.Stake, c, spec.IsBid)
	return result, nil
}
