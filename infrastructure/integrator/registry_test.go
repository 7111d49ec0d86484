package integrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/mocks"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)

	facebook := mocks.NewMockProvider(ctrl)
	facebook.EXPECT().Platform().Return(domain.PlatformFacebook).AnyTimes()

	google := mocks.NewMockProvider(ctrl)
	google.EXPECT().Platform().Return(domain.PlatformGoogle).AnyTimes()

	replacement := mocks.NewMockProvider(ctrl)
	replacement.EXPECT().Platform().Return(domain.PlatformFacebook).AnyTimes()

	registry := NewRegistry(facebook, google)

	t.Run("Plataforma registrada", func(t *testing.T) {
		p, ok := registry.Get(domain.PlatformGoogle)
		require.True(t, ok)
		assert.Same(t, google, p)
	})

	t.Run("Plataforma sem adaptador", func(t *testing.T) {
		_, ok := registry.Get(domain.PlatformYouTube)
		assert.False(t, ok)
	})

	t.Run("Novo registro substitui o anterior", func(t *testing.T) {
		registry.Register(replacement)

		p, ok := registry.Get(domain.PlatformFacebook)
		require.True(t, ok)
		assert.Same(t, replacement, p)
		assert.Equal(t, []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle}, registry.Platforms())
	})
}
