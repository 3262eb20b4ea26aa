package domain

import (
	"fmt"
	"strings"
)

// Side 合约方向（二元预测市场的 YES/NO 两侧）
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// ParseSide 解析方向字符串（大小写不敏感）
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES":
		return SideYes, nil
	case "NO":
		return SideNo, nil
	}
	return "", &InvalidInputError{
		Field:  "side",
		Reason: fmt.Sprintf("unrecognized side %q (want YES or NO)", s),
	}
}

// IsValid 检查方向是否为枚举值之一
func (s Side) IsValid() bool {
	return s == SideYes || s == SideNo
}

// BetSpec 单笔下注的输入（不可变，构造后只读）
//
// Ps 与 Strike 共用同一个概率空间：都是 YES 侧的百分比报价。
// NO 合约按镜像价（1 - price）结算，换算在计算器内部完成。
type BetSpec struct {
	Side     Side    // 下注方向
	Ps       float64 // 主观概率（百分比 0-100，事件解析为 YES 的概率）
	Strike   float64 // 市场报价（百分比 0-100，YES 空间）
	Bankroll float64 // 可用资金（货币单位，必须 > 0）
	Kelly    float64 // 分数凯利乘数 (0,1]，1.0 = 全凯利
	IsBid    bool    // true = 按报价买入（做多），false = 卖出/做空
}

// Validate 校验输入（全有或全无：任何字段非法立即返回，不做部分计算）
//
// 注意范围判断写成 !(x >= lo && x <= hi) 的形式，NaN 会落入非法分支。
func (b BetSpec) Validate() error {
	if !b.Side.IsValid() {
		return &InvalidInputError{
			Field:  "side",
			Reason: fmt.Sprintf("unrecognized side %q (want YES or NO)", string(b.Side)),
		}
	}
	if !(b.Ps >= 0 && b.Ps <= 100) {
		return &InvalidInputError{
			Field:  "ps",
			Reason: fmt.Sprintf("subjective probability %v out of range [0,100]", b.Ps),
		}
	}
	if !(b.Strike >= 0 && b.Strike <= 100) {
		return &InvalidInputError{
			Field:  "k",
			Reason: fmt.Sprintf("strike %v out of range [0,100]", b.Strike),
		}
	}
	if !(b.Bankroll > 0) {
		return &InvalidInputError{
			Field:  "bankroll",
			Reason: fmt.Sprintf("bankroll %v must be positive", b.Bankroll),
		}
	}
	if !(b.Kelly > 0 && b.Kelly <= 1) {
		return &InvalidInputError{
			Field:  "kelly",
			Reason: fmt.Sprintf("kelly fraction %v out of range (0,1]", b.Kelly),
		}
	}
	return nil
}

// SizingResult 定额建议输出
type SizingResult struct {
	Fraction  float64 // 建议投入的资金比例（已钳制到 [0,1]）
	Stake     float64 // Fraction * Bankroll（货币单位）
	Edge      float64 // 每单位投入的概率加权期望收益（诊断用，可为负）
	Contracts int64   // 建议整张合约数（卖出为负）
	Note      string  // 警告说明（例如比例被上限截断），为空表示正常
}

// NoBet 判断是否为「不要下注」的建议
func (r SizingResult) NoBet() bool {
	return r.Fraction == 0
}

// InvalidInputError 输入校验错误（唯一的错误类别）
//
// Field 标识哪个字段非法，Reason 说明原因。校验失败时不产生任何部分结果。
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}
