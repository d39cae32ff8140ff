package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigUnmarshal(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
logging: debug
repositories:
  default:
    backend: localfs
    local: /var/lib/versions/default
  archive:
    backend: badger
    local: /var/lib/versions/archive
    remote: ssh://backup/versions
`)))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "debug", cfg.Logging)
	require.NoError(t, cfg.Repositories.Validate())
	assert.Equal(t, "localfs", cfg.Repositories["default"].Backend)
	assert.Equal(t, "ssh://backup/versions", cfg.Repositories["archive"].Remote)
}
