package usecase

import "errors"

type ErrorKind string

const (
	KindConfiguration       ErrorKind = "CONFIGURATION_ERROR"
	KindAuthentication      ErrorKind = "AUTHENTICATION_ERROR"
	KindValidation          ErrorKind = "VALIDATION_ERROR"
	KindTransientDependency ErrorKind = "TRANSIENT_DEPENDENCY_ERROR"
)

const (
	CodeTenantRequired         = "TENANT_REQUIRED"
	CodePolicyNotFound         = "POLICY_NOT_FOUND"
	CodeSigningSecretMissing   = "SIGNING_SECRET_MISSING"
	CodeInvalidSignatureFormat = "INVALID_SIGNATURE_FORMAT"
	CodeInvalidSignature       = "INVALID_SIGNATURE"
	CodeSignatureExpired       = "SIGNATURE_EXPIRED"
	CodeInvalidPayload         = "INVALID_PAYLOAD"
	CodeValidation             = "VALIDATION_ERROR"
	CodeStoreUnavailable       = "STORE_UNAVAILABLE"
	CodeQueueUnavailable       = "QUEUE_UNAVAILABLE"
	CodePassInterrupted        = "PASS_INTERRUPTED"
)

// DomainError é um erro de regra de negócio, nunca retentado automaticamente.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps a failing dependency. Callers may safely re-invoke.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// KindOf classifica err na taxonomia de erros. Retorna "" para erros desconhecidos.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	if IsTechnicalError(err) {
		return KindTransientDependency
	}
	return ""
}

// CodeOf returns the machine readable code carried by err, if any.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func storeUnavailable(message string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeStoreUnavailable, Message: message, Err: err}
}
