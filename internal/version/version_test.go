package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-pedidos/internal/version"
)

func TestInfo(t *testing.T) {
	version.Commit = "abc1234"
	t.Cleanup(func() { version.Commit = "" })

	info := version.Info("Bodega Central")
	assert.Equal(t, version.Version, info.Server)
	assert.Equal(t, "Bodega Central", info.InstanceName)
	assert.Equal(t, "abc1234", info.Commit)
	assert.Equal(t, version.APIVersion, info.APIVersion)
}
