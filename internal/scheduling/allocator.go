package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/STO-AppointmentService/internal/domain"
	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// Allocator подбирает свободный бокс под запрошенный слот и отвечает на
// запросы доступности ("какие даты свободны", "какие времена свободны").
type Allocator struct {
	boxes        BoxProvider
	appointments AppointmentProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewAllocator создает новый Allocator
func NewAllocator(boxes BoxProvider, appointments AppointmentProvider, logger Logger) *Allocator {
	return &Allocator{
		boxes:        boxes,
		appointments: appointments,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (a *Allocator) WithTimeProvider(tp TimeProvider) *Allocator {
	a.timeProvider = tp
	return a
}

// FindFreeBox возвращает первый активный бокс (в порядке возрастания ID),
// который работает в интервале [start, start+duration) и не имеет
// пересекающихся активных записей. Возвращает nil, nil если свободного
// бокса нет - отсутствие мест не является ошибкой.
func (a *Allocator) FindFreeBox(
	ctx context.Context,
	date time.Time,
	start types.TimeString,
	service *domain.Service,
	excludeAppointmentID *int64,
) (*domain.Box, error) {
	duration := service.EffectiveDuration()

	boxes, err := a.boxes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list active boxes: %w", err)
	}

	for _, box := range boxes {
		if !box.ContainsInterval(date, start, duration) {
			continue
		}

		existing, err := a.appointments.GetActiveByBoxAndDate(ctx, box.ID, date)
		if err != nil {
			return nil, fmt.Errorf("scheduling: get active appointments for box=%d: %w", box.ID, err)
		}

		if HasConflict(start, duration, existing, excludeAppointmentID) {
			continue
		}

		return box, nil
	}

	return nil, nil
}

// AvailableDates возвращает даты из следующих horizonDays календарных дней,
// на которые хотя бы один бокс имеет хотя бы один свободный слот под услугу.
// Проверка даты прекращается на первом подходящем боксе и слоте.
func (a *Allocator) AvailableDates(
	ctx context.Context,
	service *domain.Service,
	horizonDays int,
	excludeAppointmentID *int64,
) ([]time.Time, error) {
	now := a.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	duration := service.EffectiveDuration()

	boxes, err := a.boxes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list active boxes: %w", err)
	}

	dates := make([]time.Time, 0)
	for i := 0; i < horizonDays; i++ {
		date := today.AddDate(0, 0, i)

		free, err := a.dateHasFreeSlot(ctx, boxes, date, duration, excludeAppointmentID)
		if err != nil {
			return nil, err
		}
		if free {
			dates = append(dates, date)
		}
	}

	return dates, nil
}

// AvailableTimes возвращает объединение свободных времен начала по всем
// активным боксам на дату: без дубликатов, по возрастанию.
func (a *Allocator) AvailableTimes(
	ctx context.Context,
	date time.Time,
	service *domain.Service,
	excludeAppointmentID *int64,
) ([]types.TimeString, error) {
	duration := service.EffectiveDuration()

	boxes, err := a.boxes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list active boxes: %w", err)
	}

	seen := make(map[types.TimeString]struct{})
	for _, box := range boxes {
		open, close, ok := box.IntervalFor(date)
		if !ok {
			continue
		}

		candidates, err := CandidateStarts(open, close, duration)
		if err != nil {
			return nil, fmt.Errorf("scheduling: generate candidate starts for box=%d: %w", box.ID, err)
		}
		if len(candidates) == 0 {
			continue
		}

		existing, err := a.appointments.GetActiveByBoxAndDate(ctx, box.ID, date)
		if err != nil {
			return nil, fmt.Errorf("scheduling: get active appointments for box=%d: %w", box.ID, err)
		}

		for _, candidate := range candidates {
			if HasConflict(candidate, duration, existing, excludeAppointmentID) {
				continue
			}
			seen[candidate] = struct{}{}
		}
	}

	times := make([]types.TimeString, 0, len(seen))
	for t := range seen {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })

	return times, nil
}

// dateHasFreeSlot проверяет, есть ли на дату хотя бы один свободный слот
func (a *Allocator) dateHasFreeSlot(
	ctx context.Context,
	boxes []*domain.Box,
	date time.Time,
	durationMinutes int,
	excludeAppointmentID *int64,
) (bool, error) {
	for _, box := range boxes {
		open, close, ok := box.IntervalFor(date)
		if !ok {
			continue
		}

		candidates, err := CandidateStarts(open, close, durationMinutes)
		if err != nil {
			return false, fmt.Errorf("scheduling: generate candidate starts for box=%d: %w", box.ID, err)
		}
		if len(candidates) == 0 {
			continue
		}

		existing, err := a.appointments.GetActiveByBoxAndDate(ctx, box.ID, date)
		if err != nil {
			return false, fmt.Errorf("scheduling: get active appointments for box=%d: %w", box.ID, err)
		}

		for _, candidate := range candidates {
			if !HasConflict(candidate, durationMinutes, existing, excludeAppointmentID) {
				return true, nil
			}
		}
	}

	return false, nil
}
