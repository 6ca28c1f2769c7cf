package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/libpatch/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/libpatch/internal/core/domain"
)

func TestTargetService_List_Defaults(t *testing.T) {
	service := NewTargetService(memory.NewConfigStore())

	targets, err := service.List()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTargets(), targets)
}

func TestTargetService_List_NilStore(t *testing.T) {
	service := NewTargetService(nil)

	targets, err := service.List()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTargets(), targets)
}

func TestTargetService_OverridesBuiltin(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("targets.min.url", "file:///vendor/ass.min.js")
	_ = store.Set("targets.min.output", "dist/assjs.min.js")
	_ = store.Set("targets.min.global", "globalThis")
	_ = store.Set("targets.min.min_size", int64(0))

	target, err := NewTargetService(store).Get(domain.TargetMin)

	require.NoError(t, err)
	assert.Equal(t, "file:///vendor/ass.min.js", target.URL)
	assert.Equal(t, "dist/assjs.min.js", target.Output)
	assert.Equal(t, "globalThis", target.Global)
	assert.Equal(t, 0, target.MinSize, "explicit zero disables the size check")
	assert.Equal(t, domain.StrategyInvocationRewrite, target.Strategy)
}

func TestTargetService_DefaultGlobal(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("defaults.global", "self")
	_ = store.Set("targets.loader.global", "globalThis")

	targets, err := NewTargetService(store).List()

	require.NoError(t, err)
	assert.Equal(t, "globalThis", targets[0].Global, "per-target value wins")
	assert.Equal(t, "self", targets[1].Global)
}

func TestTargetService_ConfiguredTarget(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("targets.zeta.url", "https://example.com/z.js")
	_ = store.Set("targets.zeta.output", "z.js")
	_ = store.Set("targets.zeta.strategy", "invocation_rewrite")
	_ = store.Set("targets.alpha.url", "https://example.com/a.js")
	_ = store.Set("targets.alpha.output", "a.js")
	_ = store.Set("targets.alpha.strategy", "export_rewrite")
	_ = store.Set("targets.alpha.identifier", "Alpha")

	targets, err := NewTargetService(store).List()

	require.NoError(t, err)
	require.Len(t, targets, 4)
	assert.Equal(t, "loader", targets[0].Name)
	assert.Equal(t, "min", targets[1].Name)
	assert.Equal(t, "alpha", targets[2].Name)
	assert.Equal(t, "zeta", targets[3].Name)

	alpha := targets[2]
	assert.Equal(t, "Alpha", alpha.Identifier)
	assert.Equal(t, domain.DefaultGlobal, alpha.Global)
	assert.Equal(t, domain.StrategyExportRewrite, alpha.Strategy)
	assert.Zero(t, alpha.MinSize)
	assert.Equal(t, domain.DefaultIdentifier, targets[3].Identifier)
}

func TestTargetService_ConfiguredTargetMissingFields(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("targets.broken.url", "https://example.com/b.js")

	_, err := NewTargetService(store).List()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTargetService_InvalidStrategy(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("targets.loader.strategy", "regex_everything")

	_, err := NewTargetService(store).List()

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "loader")
}

func TestTargetService_InvalidGlobal(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("defaults.global", "window.top")

	_, err := NewTargetService(store).List()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTargetService_Get_NotFound(t *testing.T) {
	target, err := NewTargetService(memory.NewConfigStore()).Get("nope")

	assert.Nil(t, target)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTargetService_IgnoresUnrelatedKeys(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("fetch.timeout_seconds", 10)
	_ = store.Set("targets", "not a table")

	targets, err := NewTargetService(store).List()

	require.NoError(t, err)
	assert.Len(t, targets, 2)
}
