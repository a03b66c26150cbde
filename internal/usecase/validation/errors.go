package validation

import "errors"

// ErrInternal возвращается при ошибке чтения данных о занятости
var ErrInternal = errors.New("validation: internal error")
