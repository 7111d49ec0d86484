package integrating

import (
	"errors"
	"fmt"
)

// Erros específicos para o ciclo de vida das integrações
var (
	ErrCredentialRequired = errors.New("credential is required")
	ErrProviderConnect    = errors.New("error connecting to provider")
	ErrNotConnected       = errors.New("integration is not connected")
)

// IntegrationError é um erro com contexto adicional para integrações
type IntegrationError struct {
	Err           error  // Erro base
	Code          string // Código de erro para API
	IntegrationID string // ID da integração envolvida (quando aplicável)
	Details       string // Detalhes adicionais
}

func (e *IntegrationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

func NewIntegrationError(err error, code string, details string) *IntegrationError {
	return &IntegrationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewIntegrationErrorWithID(err error, code string, integrationID string, details string) *IntegrationError {
	return &IntegrationError{
		Err:           err,
		Code:          code,
		IntegrationID: integrationID,
		Details:       details,
	}
}
