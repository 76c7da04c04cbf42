package models

// ErrorResponse - ошибка уровня операции: HTTP-код и причина для клиента.
// Код не сериализуется, клиент видит только причину.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает ошибку с заданным кодом и причиной.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
}

// Error возвращает причину; ErrorResponse проходит сквозь слои как обычная ошибка.
func (e *ErrorResponse) Error() string {
	return e.Message
}
