package chat

import "errors"

var ErrEmptyMessage = errors.New("message body is empty")
