package pyroscope

import (
	"context"
	"testing"

	"github.com/flexprice/budgetpdf/internal/config"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
)

func newService(profileTypes ...string) *Service {
	cfg := config.GetDefaultConfig()
	cfg.Pyroscope.ProfileTypes = profileTypes
	return NewPyroscopeService(cfg, logger.NewNoop())
}

func TestGetProfileTypes(t *testing.T) {
	assert.Contains(t, newService().getProfileTypes(), pyroscope.ProfileCPU)

	got := newService("CPU", "alloc_space", "bogus").getProfileTypes()
	assert.Equal(t, []pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileAllocSpace}, got)
}

func TestDisabled(t *testing.T) {
	svc := newService()
	assert.False(t, svc.IsEnabled())
	assert.NoError(t, svc.Start())
	assert.NoError(t, svc.Stop())

	called := false
	svc.TagWrapper(context.Background(), map[string]string{"operation": "render"}, func(context.Context) {
		called = true
	})
	assert.True(t, called)

	var nilSvc *Service
	assert.False(t, nilSvc.IsEnabled())
	assert.NoError(t, nilSvc.Stop())
}

func TestTagWrapper_Enabled(t *testing.T) {
	svc := newService()
	svc.cfg.Pyroscope.Enabled = true

	var labelled context.Context
	svc.TagWrapper(context.Background(), map[string]string{"operation": "render"}, func(ctx context.Context) {
		labelled = ctx
	})
	assert.NotNil(t, labelled)
	assert.NotEqual(t, context.Background(), labelled)
}
