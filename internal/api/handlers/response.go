package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

const (
	maxBodyBytes = 1 << 20

	codeBadRequest      = "bad_request"
	codeUnauthorized    = "unauthorized"
	codeNotFound        = "not_found"
	codeTooManyRequests = "too_many_requests"
	codeInternal        = "internal_error"

	msgInternalError = "внутренняя ошибка сервера"
)

// localTimeLayouts форматы времени без смещения, интерпретируются в часовом поясе развертывания
var localTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON читает JSON тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	return nil
}

// RespondJSON пишет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondNoContent пишет пустой ответ 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError пишет ошибку с явным кодом
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, codeBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, codeUnauthorized, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, codeNotFound, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, codeTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, codeInternal, msgInternalError)
}

// StatusFor возвращает HTTP статус для вида бизнес-ошибки.
// ok = false, если err не несет причины (инфраструктурный сбой).
func StatusFor(err error) (status int, reason *domain.ReasonError, ok bool) {
	reason, ok = domain.ReasonOf(err)
	if !ok {
		return http.StatusInternalServerError, nil, false
	}

	switch {
	case errors.Is(reason.Kind, domain.ErrNotFound):
		return http.StatusNotFound, reason, true
	case errors.Is(reason.Kind, domain.ErrValidationFailed):
		return http.StatusBadRequest, reason, true
	case errors.Is(reason.Kind, domain.ErrConflict):
		return http.StatusConflict, reason, true
	case errors.Is(reason.Kind, domain.ErrPolicyViolation):
		return http.StatusUnprocessableEntity, reason, true
	case errors.Is(reason.Kind, domain.ErrNeedsWhitelistApplication):
		return http.StatusForbidden, reason, true
	default:
		return http.StatusInternalServerError, nil, false
	}
}

// RespondServiceError пишет ответ для ошибки usecase/сервиса.
// Возвращает true, если это бизнес-отказ (его логируют как Warn).
func RespondServiceError(w http.ResponseWriter, err error) bool {
	status, reason, ok := StatusFor(err)
	if !ok {
		RespondInternalError(w)
		return false
	}
	RespondError(w, status, reason.Code, domain.PublicMessage(err))
	return true
}

// PathInt64 читает положительный числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", name, raw)
	}
	return id, nil
}

// PathString читает строковый параметр пути
func PathString(r *http.Request, name string) string {
	return strings.TrimSpace(mux.Vars(r)[name])
}

// ParseTime разбирает время в RFC3339 или локальном формате без смещения (в loc)
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", s)
}

// ParseDate разбирает дату YYYY-MM-DD в loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
