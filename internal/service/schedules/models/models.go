package models

import (
	"time"

	"github.com/meetsync/MS-SchedulingService/internal/domain"
)

// Request модели

// CreateScheduleRequest запрос на создание расписания
// Все времена - канонические UTC-инстанты (конвертация из локальной зоны
// выполнена на границе API)
type CreateScheduleRequest struct {
	HostID             int64
	WindowStart        time.Time
	WindowEnd          time.Time
	MinDurationMinutes int
	MaxDurationMinutes int
	AutoApprove        bool
}

// UpdateScheduleRequest запрос на обновление расписания
// Обновление задает все поля целиком (delete-then-recreate семантика
// для слотов), а не частичный patch
type UpdateScheduleRequest struct {
	ScheduleID         int64
	HostID             int64
	WindowStart        time.Time
	WindowEnd          time.Time
	MinDurationMinutes int
	MaxDurationMinutes int
	AutoApprove        bool
}

// Response модели

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID                 int64
	HostID             int64
	WindowStart        time.Time
	WindowEnd          time.Time
	MinDurationMinutes int
	MaxDurationMinutes int
	AutoApprove        bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ScheduleListResponse список расписаний
type ScheduleListResponse struct {
	Schedules []*ScheduleResponse
}

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ScheduleID int64
	SlotStart  time.Time
	SlotEnd    time.Time
}

// SlotListResponse список слотов расписания
type SlotListResponse struct {
	ScheduleID int64
	Slots      []*SlotResponse
}

// FromDomainSchedule конвертирует domain модель в response
func FromDomainSchedule(schedule *domain.Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		ID:                 schedule.ID,
		HostID:             schedule.HostID,
		WindowStart:        schedule.WindowStart,
		WindowEnd:          schedule.WindowEnd,
		MinDurationMinutes: schedule.MinDurationMinutes,
		MaxDurationMinutes: schedule.MaxDurationMinutes,
		AutoApprove:        schedule.AutoApprove,
		CreatedAt:          schedule.CreatedAt,
		UpdatedAt:          schedule.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в response
func FromDomainScheduleList(schedules []*domain.Schedule) *ScheduleListResponse {
	result := make([]*ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		result[i] = FromDomainSchedule(schedule)
	}
	return &ScheduleListResponse{Schedules: result}
}

// FromDomainSlots конвертирует список слотов в response
func FromDomainSlots(scheduleID int64, slots []*domain.Slot) *SlotListResponse {
	result := make([]*SlotResponse, len(slots))
	for i, slot := range slots {
		result[i] = &SlotResponse{
			ScheduleID: slot.ScheduleID,
			SlotStart:  slot.SlotStart,
			SlotEnd:    slot.SlotEnd,
		}
	}
	return &SlotListResponse{ScheduleID: scheduleID, Slots: result}
}
