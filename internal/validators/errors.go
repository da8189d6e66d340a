package validators

import "errors"

var (
	ErrMessageEmpty   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message exceeds 4000 characters")
	ErrTitleEmpty     = errors.New("title is empty")
	ErrTitleTooLong   = errors.New("title exceeds 100 characters")
)
