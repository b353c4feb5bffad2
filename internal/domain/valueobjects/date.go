package valueobjects

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformedDate = errors.New("malformed date")
)

const displayDateLayout = "02/01/2006"

// ParseDate lê datas digitadas como dd/mm/aaaa (também aceita "-", "." ou espaço como separador)
// e datas ISO aaaa-mm-dd.
func ParseDate(input string) (time.Time, error) {
	parts := strings.FieldsFunc(strings.TrimSpace(input), func(r rune) bool {
		return r == '/' || r == '-' || r == '.' || r == ' '
	})
	if len(parts) < 3 {
		return time.Time{}, ErrMalformedDate
	}

	nums := make([]int, 3)
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n <= 0 {
			return time.Time{}, ErrMalformedDate
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	if len(parts[0]) == 4 {
		year, month, day = nums[0], nums[1], nums[2]
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, ErrMalformedDate
	}
	return t, nil
}

// FormatDate formata uma data para exibição (dd/mm/aaaa); datas zeradas viram string vazia
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}
