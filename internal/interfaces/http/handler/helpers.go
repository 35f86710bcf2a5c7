package handler

import (
	"errors"
	"strconv"
)

var errUploadTooLarge = errors.New("evidence photo exceeds the upload size limit")

// parseLimit parses a ?limit= query value; zero means "use the default"
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
