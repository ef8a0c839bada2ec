// Package ticket генерирует человекочитаемые номера бронирований
package ticket

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const prefix = "TKT"

// New возвращает номер вида TKT-240601-1A2B3C4D.
// Дата - день записи, суффикс - первые 8 hex-символов случайного UUID.
func New(appointmentDate time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + appointmentDate.Format("060102") + "-" + id[:8]
}

// Valid проверяет формат номера
func Valid(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || parts[0] != prefix || len(parts[1]) != 6 || len(parts[2]) != 8 {
		return false
	}
	if _, err := time.Parse("060102", parts[1]); err != nil {
		return false
	}
	for _, r := range parts[2] {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			return false
		}
	}
	return true
}
