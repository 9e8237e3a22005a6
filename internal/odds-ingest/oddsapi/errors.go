package oddsapi

import "fmt"

// ErrorKind classifica falhas da Odds API para decisão de retry/abort no orquestrador.
type ErrorKind int

const (
	KindRequestFailed ErrorKind = iota
	KindUnauthorized
	KindQuotaExceeded
)

// APIError representa uma falha da Odds API com o status HTTP distinguindo
// "unauthorized", "quota exceeded" e falha genérica.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindUnauthorized:
		return fmt.Sprintf("odds api: 401 unauthorized - invalid API key: %s", e.Message)
	case KindQuotaExceeded:
		return fmt.Sprintf("odds api: 429 quota exceeded - rate limit reached: %s", e.Message)
	default:
		return fmt.Sprintf("odds api: request failed with status %d: %s", e.StatusCode, e.Message)
	}
}

// IsQuotaExceeded indica se um erro é estouro de quota da API.
func IsQuotaExceeded(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Kind == KindQuotaExceeded
}

// IsUnauthorized indica se um erro é credencial inválida.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Kind == KindUnauthorized
}
