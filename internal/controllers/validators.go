package controllers

import (
	"errors"
	"net"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// hostnameRegex в соответствии с `RFC 1123` за исключением - исключает корневые доменные имена (без зоны).
var hostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9](-?[a-zA-Z0-9])*\.)+([a-zA-Z0-9](-?[a-zA-Z0-9])*)$`)

// reservedAliases совпадают с первым сегментом служебных маршрутов.
var reservedAliases = []string{"shorten", "info", "analytics", "delete", "ping", "metrics"}

// iso8601Layouts допустимые форматы expiresAt. Без зоны время считается UTC.
var iso8601Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
	time.DateOnly,
}

var registerOnce sync.Once

// registerValidators добавляет в валидатор gin теги absurl, alias, iso8601
// и включает json имена полей в ошибках.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0] //nolint:mnd
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("absurl", func(fl validator.FieldLevel) bool {
			_, err := validateURL(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("alias", func(fl validator.FieldLevel) bool {
			return validateAlias(fl.Field().String()) == nil
		})
		_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
			_, err := parseISO8601(fl.Field().String())
			return err == nil
		})
	})
}

// validateURL проверяет, является ли строка корректным URL.
func validateURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)

	if err != nil {
		return nil, errors.New("invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.New("URL must have http or https scheme")
	}

	if parsedURL.Host == "" {
		return nil, errors.New("URL must have a host")
	}

	host := parsedURL.Hostname()
	if host != "localhost" && net.ParseIP(host) == nil && !hostnameRegex.MatchString(host) {
		return nil, errors.New("invalid hostname")
	}

	return parsedURL, nil
}

// validateAlias алиас не должен содержать разделителей пути и совпадать со служебными маршрутами.
func validateAlias(alias string) error {
	if strings.ContainsAny(alias, "/?# \t\r\n") {
		return errors.New("alias contains forbidden characters")
	}
	if slices.Contains(reservedAliases, strings.ToLower(alias)) {
		return errors.New("alias is reserved")
	}
	return nil
}

// parseISO8601 разбирает дату или дату-время.
func parseISO8601(raw string) (time.Time, error) {
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("invalid date format")
}

// fieldError элемент ответа с ошибками валидации.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationMessages сообщения об ошибках по полю запроса.
var validationMessages = map[string]string{
	"originalUrl": "Invalid URL format",
	"alias":       "Alias must be less than 20 characters",
	"expiresAt":   "Invalid date format",
}

// toFieldErrors переводит ошибки валидатора в ответ. Для ошибок другого типа возвращает false.
func toFieldErrors(err error) ([]fieldError, bool) {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return nil, false
	}

	result := make([]fieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		msg := validationMessages[fe.Field()]
		switch {
		case fe.Field() == "alias" && fe.Tag() == "alias":
			msg = "Alias contains forbidden characters or is reserved"
		case msg == "":
			msg = "Invalid value"
		}
		result = append(result, fieldError{Field: fe.Field(), Message: msg})
	}
	return result, true
}
