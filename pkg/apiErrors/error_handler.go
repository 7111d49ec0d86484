package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// Códigos de erro para autenticação
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrUserLocked            = "AUTH_004" // Usuário bloqueado temporariamente
	ErrPasswordExpired       = "AUTH_005" // Senha expirada
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrRouteNotFound       = "VAL_004" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_005" // Método não suportado pela rota

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
	ErrTooManyRequests   = "SRV_005" // Limite de requisições excedido

	// Erros de integração (3000-3999)
	ErrPlatformNotSupported    = "INT_001" // Plataforma não suportada
	ErrIntegrationNotFound     = "INT_002" // Integração não encontrada
	ErrIntegrationForbidden    = "INT_003" // Integração de outro usuário
	ErrIntegrationConnect      = "INT_004" // Provedor recusou a credencial
	ErrIntegrationNotConnected = "INT_005" // Integração desconectada

	// Erros de sincronização (4000-4999)
	ErrSyncInProgress    = "SYNC_001" // Sincronização em andamento
	ErrSyncProviderFetch = "SYNC_002" // Falha ao consultar o provedor
	ErrSyncDisabled      = "SYNC_003" // Agendador desabilitado

	// Erros de leitura do dashboard e IA
	ErrMetricsUnavailable = "DASH_001" // Métricas indisponíveis
	ErrAIUnavailable      = "AI_001"   // Serviço de IA não configurado
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrUserLocked:            http.StatusForbidden,
	ErrPasswordExpired:       http.StatusUnauthorized,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
	ErrTooManyRequests:       http.StatusTooManyRequests,

	ErrPlatformNotSupported:    http.StatusBadRequest,
	ErrIntegrationNotFound:     http.StatusNotFound,
	ErrIntegrationForbidden:    http.StatusForbidden,
	ErrIntegrationConnect:      http.StatusBadGateway,
	ErrIntegrationNotConnected: http.StatusConflict,

	ErrSyncInProgress:    http.StatusConflict,
	ErrSyncProviderFetch: http.StatusBadGateway,
	ErrSyncDisabled:      http.StatusServiceUnavailable,

	ErrMetricsUnavailable: http.StatusServiceUnavailable,
	ErrAIUnavailable:      http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status := StatusFor(code)

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	jsoniter.NewEncoder(w).Encode(apiErr)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
