package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrAnalysisNotFound   = errors.New("error.analysis_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrAuthRequired       = errors.New("error.auth_required")
	ErrForbidden          = errors.New("error.forbidden")
	ErrAnalysisIDRequired = errors.New("error.analysis_id_required")
	ErrTooManyAttempts    = errors.New("error.too_many_attempts")
)

// Validation message IDs
const (
	KeyUserMissing          = "error.validation.user_missing"
	KeyEmailRequired        = "error.validation.email_required"
	KeyNameRequired         = "error.validation.name_required"
	KeyPasswordRequired     = "error.validation.password_required"
	KeyConfirmationRequired = "error.validation.confirmation_required"
	KeyPasswordMismatch     = "error.validation.password_mismatch"
	KeyMalformedNumber      = "error.validation.malformed_number"
	KeyMalformedDate        = "error.validation.malformed_date"
	KeyInvalidStatus        = "error.validation.invalid_status"
	KeyUploadInvalid        = "error.upload_invalid"
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// ValidationError indica um campo obrigatório ausente ou mal formatado
type ValidationError struct {
	Field string
	Key   string // message ID para i18n
	Err   error
}

// NewValidationError cria um erro de validação para o campo
func NewValidationError(field, key string, err error) *ValidationError {
	return &ValidationError{Field: field, Key: key, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Key + ": " + e.Err.Error()
	}
	return e.Key
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AsValidation extrai um ValidationError da cadeia de erros
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var userFacing = []error{
	ErrUserNotFound,
	ErrAnalysisNotFound,
	ErrEmailAlreadyExists,
	ErrInvalidCredentials,
	ErrAuthRequired,
	ErrForbidden,
	ErrAnalysisIDRequired,
	ErrTooManyAttempts,
}

// IsUserFacing indica erros que viram mensagem na própria página em vez de erro 500
func IsUserFacing(err error) bool {
	return MessageKey(err) != ""
}

// MessageKey retorna o message ID do erro para tradução ("" para erros internos)
func MessageKey(err error) string {
	if ve, ok := AsValidation(err); ok {
		return ve.Key
	}
	for _, target := range userFacing {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return ""
}
