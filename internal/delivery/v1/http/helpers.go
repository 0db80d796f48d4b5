package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// ErrorResponse — единый формат тела ошибки: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// ToHTTPResponse транслирует ошибку уровня usecase в статус и сообщение.
// Ошибки валидации несут имя проблемного поля, поэтому наружу уходит
// текст ошибки целиком; всё неклассифицированное — 500 без деталей.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrValidation):
		return http.StatusBadRequest, trimErrorContext(err, e.ErrValidation)
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, trimErrorContext(err, e.ErrUnauthorized)
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, trimErrorContext(err, e.ErrNotFound)
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict, trimErrorContext(err, e.ErrConflict)
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// trimErrorContext отрезает служебные префиксы обертки ("op: ..."),
// оставляя часть сообщения начиная с базовой ошибки.
func trimErrorContext(err error, base error) string {
	msg := err.Error()
	if idx := strings.Index(msg, base.Error()); idx > 0 {
		return msg[idx:]
	}
	return msg
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Validation(name, "must be a positive integer")
	}
	return id, nil
}

// parsePriceToKopecks разбирает строку вида "599.99" или "600" в копейки.
// Ошибки: нечисловой ввод, отрицательное значение, больше 2 знаков после
// запятой, выход за разумный предел.
func parsePriceToKopecks(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	// 1 млрд рублей — заведомо достаточный потолок для витрины
	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).IntPart(), nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseOptionalImage читает единственный файл изображения из multipart-формы.
// Отсутствующий файл — не ошибка: возвращается nil.
func parseOptionalImage(r *http.Request, field string, maxSize int64) (*usecase.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	data, mimeType, err := readFile(fh, maxSize)
	if err != nil {
		return nil, err
	}

	return usecase.NewImageUpload(data, mimeType, int64(len(data)), fh.Filename), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
