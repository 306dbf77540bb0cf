package admin

import (
	"strings"
	"testing"
)

// Сырой период из запроса в SQL не попадает: допустимы только ключи таблицы.
func TestPeriodExprAllowList(t *testing.T) {
	want := []string{"day", "week", "month", "year"}
	if len(periodExpr) != len(want) {
		t.Fatalf("ожидалось %d периодов, получено %d", len(want), len(periodExpr))
	}

	for _, period := range want {
		expr, ok := periodExpr[period]
		if !ok {
			t.Errorf("период %q отсутствует в таблице", period)
			continue
		}
		if !strings.HasPrefix(expr, "TO_CHAR(created_at") {
			t.Errorf("выражение для %q должно группировать по created_at: %q", period, expr)
		}
	}

	if _, ok := periodExpr["'; DROP TABLE users; --"]; ok {
		t.Error("таблица периодов не должна принимать произвольные строки")
	}
}
