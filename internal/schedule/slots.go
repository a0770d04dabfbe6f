package schedule

import "github.com/m04kA/PSB-BookingService/internal/domain"

// GenerateSlots генерирует каноническую сетку слотов-кандидатов для
// запрошенной длительности внутри рабочего окна.
//
// Старт первого кандидата — начало окна; следующие идут с шагом granularity.
// Кандидат [t, t+duration) попадает в результат, пока t+duration <= window.End.
// Результат хронологический, без дубликатов; чистая функция своих аргументов —
// повторный вызов с теми же входными данными обязан дать ту же сетку.
func GenerateSlots(window domain.TimeInterval, durationMinutes, granularityMinutes int) []domain.TimeInterval {
	if durationMinutes <= 0 || granularityMinutes <= 0 {
		return []domain.TimeInterval{}
	}

	slots := make([]domain.TimeInterval, 0)
	for t := window.Start; t+durationMinutes <= window.End; t += granularityMinutes {
		slots = append(slots, domain.TimeInterval{Start: t, End: t + durationMinutes})
	}

	return slots
}
