package metadomain

import "strings"

// ErrorResponse representa a estrutura de erro da Graph API
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired indica erro de credencial: código 190 ou OAuthException com subcódigos 460, 463 e 467
func (e *ErrorResponse) IsTokenExpired() bool {
	if e.Error.Code == 190 {
		return true
	}
	if e.Error.Type != "OAuthException" {
		return false
	}
	switch e.Error.ErrorSubcode {
	case 460, 463, 467:
		return true
	}
	return false
}

// IsTokenExpiredMessage cobre respostas em que a API não devolve o JSON de erro
func IsTokenExpiredMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}
