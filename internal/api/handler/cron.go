package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/pkg/apiErrors"
)

// SyncController é o controle do agendador exposto para administradores
type SyncController interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// RunSync dispara um ciclo de sincronização fora do agendamento
func RunSync(controller SyncController) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunSync")

		if controller.TriggerManualSync() {
			writeJSON(w, http.StatusAccepted, map[string]any{
				"message": "Sincronização iniciada com sucesso",
			})
			return
		}

		if stopped, _ := controller.GetStatus()["sync_stopped"].(bool); stopped {
			apiErrors.WriteError(w, apiErrors.ErrSyncDisabled, "Agendador de sincronização parado", nil)
			return
		}

		apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Sincronização já está em andamento", nil)
	})
}

// GetSyncStatus retorna o status do agendador de sincronização
func GetSyncStatus(controller SyncController) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controller.GetStatus())
	})
}
