package timezone

import (
	"errors"
	"fmt"
	"time"
)

// Layout формат локальных меток времени на границе API
const Layout = "2006-01-02 15:04"

// DefaultZone зона по умолчанию, если клиент не указал свою
const DefaultZone = "UTC"

var (
	// ErrInvalidTimestamp возвращается, когда метка времени не парсится
	// или указана неизвестная временная зона
	ErrInvalidTimestamp = errors.New("timezone: invalid timestamp")
)

// ToCanonical конвертирует локальную метку времени в каноническое UTC-время.
// Все хранимые и сравниваемые значения времени в сервисе - канонические,
// конвертация выполняется только на границе API.
func ToCanonical(value string, zone string) (time.Time, error) {
	loc, err := loadZone(zone)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.ParseInLocation(Layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: failed to parse %q: %v", ErrInvalidTimestamp, value, err)
	}

	return t.UTC(), nil
}

// ToDisplay конвертирует каноническое время в локальную метку для ответа API
func ToDisplay(t time.Time, zone string) (string, error) {
	loc, err := loadZone(zone)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(Layout), nil
}

func loadZone(zone string) (*time.Location, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidTimestamp, zone)
	}
	return loc, nil
}
