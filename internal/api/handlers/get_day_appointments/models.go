package get_day_appointments

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

var errMissingDate = errors.New("date is required")

// ToServiceRequest собирает запрос сервиса из query параметров
func ToServiceRequest(dateStr, includeCancelledStr, statusStr string) (*models.ListByDateRequest, error) {
	if dateStr == "" {
		return nil, errMissingDate
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	req := &models.ListByDateRequest{Date: date}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	if statusStr != "" {
		if _, err := models.ToDomainStatus(statusStr); err != nil {
			return nil, fmt.Errorf("invalid status %q: %w", statusStr, err)
		}
		req.Status = &statusStr
	}

	return req, nil
}
