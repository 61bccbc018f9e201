package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	c := applyDefaults(Config{})

	assert.Equal(t, "./ocdb.db", c.DatabasePath)
	assert.Equal(t, "8080", c.ListenPort)
	assert.NotEmpty(t, c.AnthropicModel)
	assert.Contains(t, c.OriginAddress, "Biguaçu")
	assert.False(t, c.DisableBrowser, "sem configuração, o navegador abre na subida")
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	c := applyDefaults(Config{
		DatabasePath:   "/tmp/outro.db",
		ListenPort:     "9090",
		DisableBrowser: true,
	})

	assert.Equal(t, "/tmp/outro.db", c.DatabasePath)
	assert.Equal(t, "9090", c.ListenPort)
	assert.True(t, c.DisableBrowser)
}

func TestBrowserOpensWhenKeyOmitted(t *testing.T) {
	// Um arquivo salvo antes da chave existir não pode desligar o navegador.
	var c Config
	require.NoError(t, json.Unmarshal([]byte(`{"listenPort":"9090"}`), &c))

	c = applyDefaults(c)
	assert.False(t, c.DisableBrowser)
	assert.Equal(t, "9090", c.ListenPort)
}
