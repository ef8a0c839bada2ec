package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SlotCapacity/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCapacity/internal/service/bookings/models"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// ToServiceRequest создает запрос сервиса из query параметров:
// from, to (YYYY-MM-DD), status, serviceId, email, includeInactive, limit, offset
func ToServiceRequest(q url.Values) (*models.ListRequest, error) {
	from, err := handlers.ParseOptionalDate(q.Get("from"))
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}

	to, err := handlers.ParseOptionalDate(q.Get("to"))
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	serviceID, err := handlers.ParseOptionalInt64(q.Get("serviceId"))
	if err != nil {
		return nil, fmt.Errorf("serviceId: %w", err)
	}

	req := &models.ListRequest{
		StartDate: from,
		EndDate:   to,
		ServiceID: serviceID,
		Limit:     defaultLimit,
	}

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}
	if email := q.Get("email"); email != "" {
		req.CustomerEmail = &email
	}

	if raw := q.Get("includeInactive"); raw != "" {
		req.IncludeInactive, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 || limit > maxLimit {
			return nil, fmt.Errorf("limit must be between 1 and %d", maxLimit)
		}
		req.Limit = limit
	}

	if raw := q.Get("offset"); raw != "" {
		req.Offset, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("offset: %w", err)
		}
	}

	return req, nil
}
