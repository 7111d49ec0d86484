package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSyncInProgress       = errors.New("sync already in progress for integration")
	ErrPlatformNotSupported = errors.New("platform not supported")
	ErrIntegrationNotFound  = errors.New("integration not found")
	ErrIntegrationForbidden = errors.New("integration belongs to another user")
	ErrProviderNotFound     = errors.New("no provider registered for platform")
	ErrAuthExpired          = errors.New("provider credentials expired")
)

// ProviderFetchError indica falha ao consultar um provedor. É recuperável:
// a integração continua CONNECTED e será tentada no próximo ciclo.
type ProviderFetchError struct {
	Platform      Platform
	IntegrationID string
	Err           error
	AuthExpired   bool
}

func (e *ProviderFetchError) Error() string {
	if e.IntegrationID != "" {
		return fmt.Sprintf("fetch %s (integration %s): %v", e.Platform, e.IntegrationID, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Platform, e.Err)
}

func (e *ProviderFetchError) Unwrap() error {
	return e.Err
}

func NewProviderFetchError(platform Platform, integrationID string, err error) *ProviderFetchError {
	return &ProviderFetchError{
		Platform:      platform,
		IntegrationID: integrationID,
		Err:           err,
		AuthExpired:   errors.Is(err, ErrAuthExpired),
	}
}

// StoreWriteError indica falha de escrita de uma campanha no banco
type StoreWriteError struct {
	Op                 string
	CampaignExternalID string
	Err                error
}

func (e *StoreWriteError) Error() string {
	if e.CampaignExternalID != "" {
		return fmt.Sprintf("%s (campaign %s): %v", e.Op, e.CampaignExternalID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// AggregationError indica que as métricas do dashboard não puderam ser lidas.
// O dashboard deve mostrar "indisponível" e nunca zeros.
type AggregationError struct {
	UserID string
	Step   string
	Err    error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate %s for user %s: %v", e.Step, e.UserID, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// ConfigurationError é fatal na inicialização
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}
