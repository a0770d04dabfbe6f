// Package schedule содержит чистое ядро движка доступности: разрешение
// рабочих часов, генерацию сетки слотов и построение индекса занятых
// интервалов. Все функции детерминированы и не имеют скрытого состояния —
// оба запроса доступности (список слотов и проверка одного интервала)
// обязаны считать одно и то же.
package schedule

import (
	"time"

	"github.com/m04kA/PSB-BookingService/internal/domain"
	"github.com/m04kA/PSB-BookingService/pkg/types"
)

// Policy дефолтная политика рабочих часов и шаг сетки слотов.
// Инжектируется из конфигурации (секция [booking]), чтобы тесты могли её варьировать.
type Policy struct {
	DefaultOpen        string // "HH:MM"
	DefaultClose       string // "HH:MM"
	GranularityMinutes int
}

// DefaultPolicy возвращает системную политику по умолчанию
func DefaultPolicy() Policy {
	return Policy{
		DefaultOpen:        domain.DefaultOpenTime,
		DefaultClose:       domain.DefaultCloseTime,
		GranularityMinutes: domain.DefaultSlotGranularityMinutes,
	}
}

// ResolveDay resolves a studio's operating window for the given date.
//
// День недели берётся из time.Weekday (Sunday=0..Saturday=6, локаленезависимо).
// Отсутствующий ключ заменяется дефолтной политикой. Возвращает (window, true)
// для открытого дня и (zero, false) для закрытого. Некорректное расписание
// (нечитаемые времена, close <= open) трактуется как закрытый день, не как ошибка.
func ResolveDay(hours domain.OperatingHours, date time.Time, policy Policy) (domain.TimeInterval, bool) {
	day, ok := hours[domain.WeekdayKey(date)]
	if !ok {
		day = domain.DaySchedule{
			Open:   policy.DefaultOpen,
			Close:  policy.DefaultClose,
			IsOpen: true,
		}
	}

	if !day.IsOpen {
		return domain.TimeInterval{}, false
	}

	open, err := types.NewTimeStringFromString(day.Open)
	if err != nil {
		return domain.TimeInterval{}, false
	}
	closeTime, err := types.NewTimeStringFromString(day.Close)
	if err != nil {
		return domain.TimeInterval{}, false
	}

	window, err := domain.NewTimeIntervalFromStrings(open, closeTime)
	if err != nil {
		// close <= open — некорректная запись, день не даёт слотов
		return domain.TimeInterval{}, false
	}

	return window, true
}
