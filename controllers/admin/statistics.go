package admin

import (
	"net/http"

	"itbird-backend/config"
	"itbird-backend/controllers/authentication"
	"itbird-backend/controllers/common"
	"itbird-backend/models/users"
)

// periodExpr — закрытая таблица период → SQL-выражение. Сырой параметр запроса
// в SQL не попадает: неизвестный период отклоняется до запроса.
var periodExpr = map[string]string{
	"day":   "TO_CHAR(created_at, 'YYYY-MM-DD')",
	"week":  "TO_CHAR(created_at, 'IYYY-IW')",
	"month": "TO_CHAR(created_at, 'YYYY-MM')",
	"year":  "TO_CHAR(created_at, 'YYYY')",
}

type signupBucket struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// Statistics: количество регистраций, сгруппированных по периоду.
func Statistics(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "day"
	}

	expr, ok := periodExpr[period]
	if !ok {
		common.Error(w, http.StatusBadRequest, "Недопустимый период")
		return
	}

	var buckets []signupBucket
	if err := config.DB.Model(&users.User{}).
		Select(expr + " AS period, COUNT(*) AS count").
		Group(expr).
		Order("period").
		Scan(&buckets).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении статистики")
		return
	}

	common.JSON(w, http.StatusOK, buckets)
}
