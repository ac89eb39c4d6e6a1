package bookingevents

import "errors"

var (
	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("bookingevents: failed to publish event")
)
