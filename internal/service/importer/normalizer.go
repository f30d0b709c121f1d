package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyInput  = fmt.Errorf("%w: no data found in file", domain.ErrValidation)
	ErrNoValidRows = fmt.Errorf("%w: no valid rows found", domain.ErrValidation)
)

type field int

const (
	fieldName field = iota
	fieldAccountNo
	fieldMobile
	fieldBalance
	fieldCD
	fieldReview
	fieldDueAmount
	fieldExDayAmount
	fieldAddress
	fieldPincode
	fieldCycleDate
	fieldStatus
	fieldNotes
)

// Канонические заголовки после trim + lowercase
var canonicalHeaders = map[string]field{
	"name":            fieldName,
	"account no":      fieldAccountNo,
	"mobile no":       fieldMobile,
	"current balance": fieldBalance,
	"cd":              fieldCD,
	"review":          fieldReview,
	"due amount":      fieldDueAmount,
	"ex day amount":   fieldExDayAmount,
	"address":         fieldAddress,
	"pincode":         fieldPincode,
	"cycle date":      fieldCycleDate,
	"status":          fieldStatus,
	"notes":           fieldNotes,
}

// Эвристика по подстрокам, порядок правил важен
var fuzzyRules = []struct {
	keywords []string
	field    field
}{
	{[]string{"name"}, fieldName},
	{[]string{"account", "ac"}, fieldAccountNo},
	{[]string{"mobile", "phone"}, fieldMobile},
	{[]string{"balance", "amount"}, fieldBalance},
	{[]string{"address"}, fieldAddress},
	{[]string{"pincode", "pin"}, fieldPincode},
	{[]string{"cd"}, fieldCD},
	{[]string{"review"}, fieldReview},
	{[]string{"note"}, fieldNotes},
}

// Serial 25569 = 1970-01-01 в сериальных датах таблиц
const serialEpochOffset = 25569

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

type Option func(*Normalizer)

// WithFuzzyHeaders включает сопоставление заголовков по ключевым словам вместо точной таблицы
func WithFuzzyHeaders() Option {
	return func(n *Normalizer) { n.fuzzy = true }
}

// Normalizer превращает загруженную таблицу в записи клиентов. Не имеет состояния и побочных эффектов.
type Normalizer struct {
	fuzzy bool
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize использует точную таблицу заголовков
func Normalize(grid [][]any) ([]model.Customer, error) {
	return NewNormalizer().Normalize(grid)
}

// Normalize: строка 0 - заголовки. Без строк данных - ErrEmptyInput.
func (n *Normalizer) Normalize(grid [][]any) ([]model.Customer, error) {
	if len(grid) < 2 {
		return nil, ErrEmptyInput
	}

	columns := n.mapHeaders(grid[0])
	out := make([]model.Customer, 0, len(grid)-1)
	for _, row := range grid[1:] {
		c, ok := mapRow(columns, row)
		if !ok {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, ErrNoValidRows
	}
	return out, nil
}

// mapHeaders возвращает field -> индекс колонки. Побеждает первая подходящая колонка.
func (n *Normalizer) mapHeaders(headers []any) map[field]int {
	columns := make(map[field]int, len(headers))
	for idx, h := range headers {
		header := strings.ToLower(cellString(h))
		if header == "" {
			continue
		}
		f, ok := n.match(header)
		if !ok {
			continue
		}
		if _, taken := columns[f]; !taken {
			columns[f] = idx
		}
	}
	return columns
}

func (n *Normalizer) match(header string) (field, bool) {
	if !n.fuzzy {
		f, ok := canonicalHeaders[header]
		return f, ok
	}
	for _, rule := range fuzzyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(header, kw) {
				return rule.field, true
			}
		}
	}
	return 0, false
}

func mapRow(columns map[field]int, row []any) (model.Customer, bool) {
	cell := func(f field) (any, bool) {
		idx, ok := columns[f]
		if !ok || idx >= len(row) {
			return nil, ok
		}
		return row[idx], true
	}
	str := func(f field) string {
		v, _ := cell(f)
		return cellString(v)
	}
	num := func(f field) decimal.NullDecimal {
		v, _ := cell(f)
		return cellDecimal(v)
	}

	c := model.Customer{
		Name:        str(fieldName),
		AccountNo:   str(fieldAccountNo),
		Mobile:      str(fieldMobile),
		Balance:     num(fieldBalance),
		CD:          str(fieldCD),
		Review:      str(fieldReview),
		DueAmount:   num(fieldDueAmount),
		ExDayAmount: num(fieldExDayAmount),
		Address:     str(fieldAddress),
		Pincode:     str(fieldPincode),
		Notes:       str(fieldNotes),
		Status:      model.CustomerActive,
	}
	if c.Name == "" {
		return c, false
	}
	if v, ok := cell(fieldCycleDate); ok {
		c.CycleDate = cellDate(v)
	}
	if st, ok := model.ParseCustomerStatus(str(fieldStatus)); ok {
		c.Status = st
	}
	c.FillPincode()
	return c, true
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

var amountCleaner = strings.NewReplacer("₹", "", ",", "", " ", "", "\u00a0", "")

func cellDecimal(v any) decimal.NullDecimal {
	switch t := v.(type) {
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(t))
	case float32:
		return decimal.NewNullDecimal(decimal.NewFromFloat32(t))
	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(t)))
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(t))
	}

	s := amountCleaner.Replace(cellString(v))
	for _, prefix := range []string{"rs.", "rs", "inr"} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = s[len(prefix):]
			break
		}
	}
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func cellDate(v any) *time.Time {
	var t time.Time
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		t = SerialToDate(val)
	case float32:
		t = SerialToDate(float64(val))
	case int:
		t = SerialToDate(float64(val))
	case int64:
		t = SerialToDate(float64(val))
	case time.Time:
		t = val
	default:
		s := cellString(val)
		if s == "" {
			return nil
		}
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			t = SerialToDate(serial)
			break
		}
		parsed, ok := parseDate(s)
		if !ok {
			return nil
		}
		t = parsed
	}
	return &t
}

// SerialToDate переводит сериальный номер дня таблицы в момент UTC
func SerialToDate(serial float64) time.Time {
	days := serial - serialEpochOffset
	whole := math.Floor(days)
	secs := math.Round((days - whole) * 86400)
	return time.Unix(0, 0).UTC().
		AddDate(0, 0, int(whole)).
		Add(time.Duration(secs) * time.Second)
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
