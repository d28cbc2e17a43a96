package list_slots

import (
	"github.com/meetsync/MS-SchedulingService/internal/service/schedules/models"
	"github.com/meetsync/MS-SchedulingService/pkg/timezone"
)

// SlotResponse HTTP response model одного слота
type SlotResponse struct {
	SlotStart string `json:"slotStart"`
	SlotEnd   string `json:"slotEnd"`
}

// SlotListResponse HTTP response model списка слотов
type SlotListResponse struct {
	ScheduleID int64           `json:"scheduleId"`
	Timezone   string          `json:"timezone"`
	Slots      []*SlotResponse `json:"slots"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
// Слоты отдаются в запрошенной зоне отображения
func FromServiceResponse(resp *models.SlotListResponse, zone string) (*SlotListResponse, error) {
	if zone == "" {
		zone = timezone.DefaultZone
	}

	slots := make([]*SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slotStart, err := timezone.ToDisplay(slot.SlotStart, zone)
		if err != nil {
			return nil, err
		}

		slotEnd, err := timezone.ToDisplay(slot.SlotEnd, zone)
		if err != nil {
			return nil, err
		}

		slots[i] = &SlotResponse{
			SlotStart: slotStart,
			SlotEnd:   slotEnd,
		}
	}

	return &SlotListResponse{
		ScheduleID: resp.ScheduleID,
		Timezone:   zone,
		Slots:      slots,
	}, nil
}
