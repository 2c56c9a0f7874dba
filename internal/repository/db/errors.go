package db

import (
	"errors"
	"strings"
)

// ErrDuplicate возвращается при нарушении уникальности char_code.
var ErrDuplicate = errors.New("record already exists")

// mapDBError сводит ошибки уникальности sqlite и postgres к ErrDuplicate,
// остальные отдаёт как есть.
func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate") || strings.Contains(msg, "23505") {
		return ErrDuplicate
	}
	return err
}
