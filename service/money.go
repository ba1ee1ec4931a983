package service

import "math"

// toCents 金额转为分，按四舍五入（远离零）取整；历史数据中的负数按绝对值处理
func toCents(amount float64) int64 {
	return int64(math.Round(math.Abs(amount) * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

// roundAmount 保留两位小数
func roundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// maxAmountCents decimal(12,2) 能存下的最大金额
const maxAmountCents = 999_999_999_999

// checkAmount 按入库时保留两位小数后的值校验金额
func checkAmount(res *ValidationResult, amount float64) {
	cents := math.Round(amount * 100)
	switch {
	case math.IsNaN(cents) || cents <= 0:
		res.add("amount", "金额必须大于0")
	case cents > maxAmountCents:
		res.add("amount", "金额不能超过 9999999999.99")
	}
}
