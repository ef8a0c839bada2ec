package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// validateRequest валидирует входные данные запроса и нормализует контакты
func validateRequest(req *Request) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)

	if req.Source != domain.SourcePublic && req.Source != domain.SourceAdmin {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}

	// Флаги админки недоступны публичной форме
	if !req.IsAdmin() {
		if req.OverrideCapacity || req.IsPrepaid || req.SkipNotification || req.AdminNotes != nil {
			return fmt.Errorf("%w: admin-only fields in public request", ErrInvalidInput)
		}
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CustomerName) > domain.MaxNameLength {
		return fmt.Errorf("%w: customerName is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if err := validateEmail(req.CustomerEmail); err != nil {
		return err
	}

	if err := validatePhone(req.CustomerPhone); err != nil {
		return err
	}

	if req.BookingForName != nil && utf8.RuneCountInString(*req.BookingForName) > domain.MaxNameLength {
		return fmt.Errorf("%w: bookingForName is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.SpecialRequest != nil && utf8.RuneCountInString(*req.SpecialRequest) > domain.MaxSpecialRequestLength {
		return fmt.Errorf("%w: specialRequest is longer than %d characters", ErrInvalidInput, domain.MaxSpecialRequestLength)
	}
	if req.AdminNotes != nil && utf8.RuneCountInString(*req.AdminNotes) > domain.MaxAdminNotesLength {
		return fmt.Errorf("%w: adminNotes is longer than %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}
	if len(req.InspirationPhotos) > domain.MaxInspirationPhotos {
		return fmt.Errorf("%w: at most %d inspiration photos", ErrInvalidInput, domain.MaxInspirationPhotos)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	slot, err := req.Time.Canonical()
	if err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}
	req.Time = slot

	return nil
}

// validateEmail адрес без отображаемого имени: "anna@example.com"
func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return fmt.Errorf("%w: customerEmail is not a valid address", ErrInvalidInput)
	}
	return nil
}

// validatePhone допускает цифры, пробелы, скобки, дефисы и ведущий "+"
func validatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return fmt.Errorf("%w: customerPhone contains %q", ErrInvalidInput, r)
		}
	}

	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return fmt.Errorf("%w: customerPhone must have %d-%d digits", ErrInvalidInput, minPhoneDigits, maxPhoneDigits)
	}
	return nil
}
