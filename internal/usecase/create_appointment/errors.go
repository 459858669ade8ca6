package create_appointment

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден или деактивирован
	ErrTenantNotFound = errors.New("create_appointment: tenant not found")

	// ErrServiceNotFound возвращается, когда выбранной услуги нет в каталоге тенанта
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда выбрана снятая с продажи услуга
	ErrServiceInactive = errors.New("create_appointment: service is not available")

	// ErrHomeServiceUnavailable возвращается, когда выезд на дом выключен в настройках
	ErrHomeServiceUnavailable = errors.New("create_appointment: home service is not available")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrBusinessClosed возвращается, когда бизнес не работает в этот день недели
	ErrBusinessClosed = errors.New("create_appointment: business is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда запись не укладывается в часы работы
	ErrOutsideWorkingHours = errors.New("create_appointment: time is outside working hours")

	// ErrTooLateToBook возвращается при записи на уже прошедшее время сегодня
	ErrTooLateToBook = errors.New("create_appointment: time has already passed")

	// ErrSlotNotAvailable возвращается, когда все места на это время заняты
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
