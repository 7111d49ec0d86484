package syncing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/events"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

// AnnounceOutcome publica o resultado de um ciclo para o transporte em tempo real.
// Só há dashboard_update quando entraram leads ou receita; receita nova também gera notificação.
// Falhas de publicação são apenas registradas.
func AnnounceOutcome(ctx context.Context, publisher events.Publisher, outcome *domain.SyncOutcome) {
	if publisher == nil || outcome == nil {
		return
	}

	if outcome.HasConversions() {
		logrus.WithFields(logrus.Fields{
			"leads":   outcome.NewLeads,
			"revenue": outcome.NewRevenue,
		}).Info("Publicando atualização do dashboard")

		publish(ctx, publisher, domain.TopicDashboardUpdate, domain.DashboardUpdate{
			Leads:     outcome.NewLeads,
			Revenue:   outcome.NewRevenue,
			Timestamp: outcome.Timestamp,
		})

		if outcome.NewRevenue > 0 {
			publish(ctx, publisher, domain.TopicNotification, domain.Notification{
				Title:   "Nova Conversão",
				Message: fmt.Sprintf("Novo lead convertido: R$ %.2f", outcome.NewRevenue),
				Type:    "success",
			})
		}
	}

	if len(outcome.Corrections) > 0 {
		publish(ctx, publisher, domain.TopicSyncCorrection, outcome.Corrections)
	}
}

func publish(ctx context.Context, publisher events.Publisher, topic string, payload any) {
	if err := publisher.Publish(ctx, topic, payload); err != nil {
		logrus.WithField("topic", topic).WithError(err).Warn("Erro ao publicar evento")
	}
}
