package sizing

import "github.com/shopspring/decimal"

// contractCount 折算整张合约数：⌊stake / price⌋，卖出为负。
//
// price 为实际交易一侧的有效价格（单位 1 货币 = 1.00）。价格为零的退化
// 情形（0/100 边界）无法定义张数，返回 0，由调用方看 Note 说明。
// 货币除法走 decimal，避免二进制小数截断出错（例如 0.29/0.01 -> 28）。
func contractCount(stake, price float64, isBid bool) int64 {
	if price <= 0 || stake <= 0 {
		return 0
	}
	n := decimal.NewFromFloat(stake).Div(decimal.NewFromFloat(price)).IntPart()
	if !isBid {
		n = -n
	}
	return n
}
