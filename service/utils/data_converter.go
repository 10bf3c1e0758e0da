/*
 * @module service/utils/data_converter
 * @description 数据转换工具模块，负责时间解析、数值安全运算、分位数计算与巴西货币格式化
 * @architecture 工具函数模式，提供无状态转换方法集合
 * @documentReference dev_docs/model.md
 * @stateFlow 无状态转换：输入 -> 转换逻辑 -> 输出
 * @rules
 *   - 时间解析失败返回nil而非错误，由调用方决定行级处理
 *   - 除法在分母为0时必须返回0，不产生NaN/Inf
 *   - 货币格式化固定两位小数、标准四舍五入，千位分隔"."、小数分隔","
 * @dependencies time, sort, math, golang.org/x/text
 * @refs service/loader, service/analysis
 */

package utils

import (
	"math"
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 源文件中出现的时间戳布局，按命中概率排序
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// ParseTimestamp 解析时区无关的时间戳字符串，无法解析时返回nil
func ParseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// SafeDiv 安全除法，分母为0时返回0
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Quantile 线性插值分位数，q取值[0,1]；输入会被复制排序，空切片返回0
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL 巴西货币格式化：R$前缀、千位"."、小数","、固定两位小数
func FormatBRL(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "R$ 0,00"
	}
	return brlPrinter.Sprintf("R$ %.2f", value)
}

// FormatFloatCell 数值转CSV单元格：最短无损的定点表示，整数值不带小数尾巴，
// 任何量级都不退化为科学计数法
func FormatFloatCell(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// TruncateToMonth 截断到自然月首日零点
func TruncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthKey 自然月键，YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// WholeDays 两个时刻相差的整天数，向下取整（迟到为正）
func WholeDays(actual, estimated time.Time) int {
	return int(math.Floor(actual.Sub(estimated).Hours() / 24))
}
