package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	DatabasePath   string `json:"databasePath"`
	ListenPort     string `json:"listenPort"`
	AnthropicModel string `json:"anthropicModel"`
	OriginAddress  string `json:"originAddress"`
	// DisableBrowser desliga a abertura automática do navegador na
	// subida. Ausente no JSON, o navegador abre (comportamento padrão).
	DisableBrowser bool `json:"disableBrowser"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./ocdb_config.json"

// Endereço de partida padrão para o cálculo de distância/tempo de viagem.
const defaultOriginAddress = "Rua Julio Teodoro Martins, 3067, Rio Caveiras, Biguaçu, SC"

func applyDefaults(c Config) Config {
	if c.DatabasePath == "" {
		c.DatabasePath = "./ocdb.db"
	}
	if c.ListenPort == "" {
		c.ListenPort = "8080"
	}
	if c.AnthropicModel == "" {
		c.AnthropicModel = "claude-sonnet-4-5"
	}
	if c.OriginAddress == "" {
		c.OriginAddress = defaultOriginAddress
	}
	return c
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = applyDefaults(Config{})
			return cfg, nil
		}
		cfg = applyDefaults(Config{})
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		cfg = applyDefaults(Config{})
		return Config{}, err
	}
	cfg = applyDefaults(tempCfg)

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg = applyDefaults(newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
