package syncing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/events"
	eventmocks "github.com/vfg2006/hexa-dashboard-api/infrastructure/events/mocks"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestAnnounceOutcome(t *testing.T) {
	timestamp := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	correction := domain.Correction{IntegrationID: "int-1", CampaignExternalID: "fb_cmp_123", Metric: "leads", Previous: 45, Reported: 40}

	tests := []struct {
		name    string
		outcome *domain.SyncOutcome
		setup   func(p *eventmocks.MockPublisher)
	}{
		{
			name:    "Ciclo sem resultado não publica",
			outcome: nil,
			setup:   func(p *eventmocks.MockPublisher) {},
		},
		{
			name:    "Ciclo sem conversões não publica",
			outcome: &domain.SyncOutcome{IntegrationsSynced: 2, Timestamp: timestamp},
			setup:   func(p *eventmocks.MockPublisher) {},
		},
		{
			name:    "Somente leads publica atualização sem notificação",
			outcome: &domain.SyncOutcome{NewLeads: 5, Timestamp: timestamp},
			setup: func(p *eventmocks.MockPublisher) {
				p.EXPECT().Publish(gomock.Any(), domain.TopicDashboardUpdate, domain.DashboardUpdate{Leads: 5, Timestamp: timestamp}).Return(nil)
			},
		},
		{
			name:    "Receita nova publica atualização e notificação",
			outcome: &domain.SyncOutcome{NewLeads: 45, NewRevenue: 4500, Timestamp: timestamp},
			setup: func(p *eventmocks.MockPublisher) {
				gomock.InOrder(
					p.EXPECT().Publish(gomock.Any(), domain.TopicDashboardUpdate, domain.DashboardUpdate{Leads: 45, Revenue: 4500, Timestamp: timestamp}).Return(nil),
					p.EXPECT().Publish(gomock.Any(), domain.TopicNotification, domain.Notification{
						Title:   "Nova Conversão",
						Message: "Novo lead convertido: R$ 4500.00",
						Type:    "success",
					}).Return(nil),
				)
			},
		},
		{
			name:    "Correções são publicadas mesmo sem conversões",
			outcome: &domain.SyncOutcome{Corrections: []domain.Correction{correction}, Timestamp: timestamp},
			setup: func(p *eventmocks.MockPublisher) {
				p.EXPECT().Publish(gomock.Any(), domain.TopicSyncCorrection, []domain.Correction{correction}).Return(nil)
			},
		},
		{
			name:    "Fila cheia não interrompe as demais publicações",
			outcome: &domain.SyncOutcome{NewRevenue: 99.9, Timestamp: timestamp},
			setup: func(p *eventmocks.MockPublisher) {
				p.EXPECT().Publish(gomock.Any(), domain.TopicDashboardUpdate, gomock.Any()).Return(events.ErrQueueFull)
				p.EXPECT().Publish(gomock.Any(), domain.TopicNotification, gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			publisher := eventmocks.NewMockPublisher(ctrl)
			tt.setup(publisher)

			assert.NotPanics(t, func() {
				AnnounceOutcome(context.Background(), publisher, tt.outcome)
			})
		})
	}
}
