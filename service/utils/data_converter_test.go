/*
 * @module service/utils/data_converter_test
 * @description 数据转换工具单元测试
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 无状态函数测试
 * @rules 覆盖边界值：空输入、零分母、非法时间戳
 * @dependencies testify
 * @refs service/utils/data_converter.go
 */

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	ts := ParseTimestamp("2017-05-01 10:30:00")
	require.NotNil(t, ts)
	assert.Equal(t, 2017, ts.Year())
	assert.Equal(t, time.May, ts.Month())
	assert.Equal(t, 10, ts.Hour())

	// 纯日期布局
	ts = ParseTimestamp("2017-05-01")
	require.NotNil(t, ts)
	assert.Equal(t, 0, ts.Hour())

	assert.Nil(t, ParseTimestamp(""))
	assert.Nil(t, ParseTimestamp("not-a-date"))
	assert.Nil(t, ParseTimestamp("2017-13-45 99:99:99"))
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.5, SafeDiv(5, 2))
	assert.Equal(t, 0.0, SafeDiv(5, 0))
	assert.Equal(t, 0.0, SafeDiv(0, 0))
}

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	// 线性插值
	assert.InDelta(t, 2.5, Quantile(values, 0.5), 1e-9)
	assert.InDelta(t, 1.75, Quantile(values, 0.25), 1e-9)
	assert.Equal(t, 1.0, Quantile(values, 0))
	assert.Equal(t, 4.0, Quantile(values, 1))

	assert.Equal(t, 0.0, Quantile(nil, 0.5))
	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.5))

	// 输入不被修改
	unsorted := []float64{3, 1, 2}
	Quantile(unsorted, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, unsorted)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", FormatBRL(1234.56))
	assert.Equal(t, "R$ 0,00", FormatBRL(0))
	assert.Equal(t, "R$ 1.000.000,00", FormatBRL(1000000))
	assert.Equal(t, "R$ 99,90", FormatBRL(99.9))
}

func TestFormatFloatCell(t *testing.T) {
	assert.Equal(t, "5", FormatFloatCell(5))
	assert.Equal(t, "5.5", FormatFloatCell(5.5))
	assert.Equal(t, "0", FormatFloatCell(0))
	assert.Equal(t, "-3", FormatFloatCell(-3))
	// 大数值保持定点表示，不退化为科学计数法
	assert.Equal(t, "1000000000000000000000", FormatFloatCell(1e21))
}

func TestMonthKey(t *testing.T) {
	ts := time.Date(2017, 5, 20, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "2017-05", MonthKey(ts))
}

func TestTruncateToMonth(t *testing.T) {
	ts := time.Date(2017, 5, 20, 14, 30, 0, 0, time.UTC)
	got := TruncateToMonth(ts)
	assert.Equal(t, time.Date(2017, 5, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestWholeDays(t *testing.T) {
	estimated := time.Date(2017, 5, 10, 0, 0, 0, 0, time.UTC)

	// 迟到5天
	assert.Equal(t, 5, WholeDays(estimated.AddDate(0, 0, 5), estimated))
	// 提前2天
	assert.Equal(t, -2, WholeDays(estimated.AddDate(0, 0, -2), estimated))
	// 36小时向下取整为1天
	assert.Equal(t, 1, WholeDays(estimated.Add(36*time.Hour), estimated))
	// 提前1小时也算提前1整天（向下取整）
	assert.Equal(t, -1, WholeDays(estimated.Add(-time.Hour), estimated))
	assert.Equal(t, 0, WholeDays(estimated, estimated))
}
