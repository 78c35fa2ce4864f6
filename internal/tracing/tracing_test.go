package tracing_test

import (
	"context"
	"testing"

	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := tracing.Init(context.Background(), config.Tracing{ServiceName: "paypost"})
	require.NoError(t, err)

	_, span := tracing.Tracer("test").Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, shutdown(context.Background()))
}
