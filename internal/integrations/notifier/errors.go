package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса уведомлений
	ErrInvalidResponse = errors.New("notifier client: invalid response")

	// ErrRejected возвращается, когда сервис уведомлений отклонил событие (4xx)
	ErrRejected = errors.New("notifier client: event rejected")
)
