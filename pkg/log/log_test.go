package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	previous := logrus.StandardLogger().Out
	logrus.SetOutput(buf)
	t.Cleanup(func() { logrus.SetOutput(previous) })
	return buf
}

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	require.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestSetup(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	tests := []struct {
		name     string
		level    string
		expected logrus.Level
	}{
		{name: "nível debug", level: "debug", expected: logrus.DebugLevel},
		{name: "nível com espaços", level: " warn ", expected: logrus.WarnLevel},
		{name: "nível inválido vira info", level: "verbose", expected: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)
			Setup(tt.level)
			assert.Equal(t, tt.expected, logrus.GetLevel())
		})
	}
}

func TestFieldFiltering(t *testing.T) {
	t.Run("desenvolvimento descarta campos irrelevantes", func(t *testing.T) {
		t.Setenv("APP_ENV", "dev")
		buf := captureOutput(t)
		Setup("info")

		ForContext(context.Background()).WithFields(Fields{
			"path":       "/v1/leads",
			"user_agent": "curl",
		}).Info("teste")

		assert.Contains(t, buf.String(), "path=/v1/leads")
		assert.NotContains(t, buf.String(), "user_agent")
	})

	t.Run("produção mantém todos os campos", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		buf := captureOutput(t)
		Setup("info")

		ctx, id := WithCorrelationID(context.Background())
		ForContext(ctx).WithField("user_agent", "curl").Info("teste")

		assert.Contains(t, buf.String(), `"user_agent":"curl"`)
		assert.Contains(t, buf.String(), id)
	})
}
