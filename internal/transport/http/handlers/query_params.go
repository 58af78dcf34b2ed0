package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

func parsePositiveIntQuery(r *http.Request, key string) (value int, present bool, errMsg string) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, r.URL.Query().Has(key), ""
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, true, key + " must be a positive integer"
	}

	return parsed, true, ""
}
