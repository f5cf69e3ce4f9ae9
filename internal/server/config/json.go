package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/anocare/anocare/internal/flagx"
	"github.com/anocare/anocare/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	ChainRPCURL           string         `json:"chain_rpc_url"`
	ContractAddress       string         `json:"contract_address"`
	OperatorKey           string         `json:"operator_key"`
	ChainID               int64          `json:"chain_id"`
	ChatAPIURL            string         `json:"chat_api_url"`
	ChatAPIKey            string         `json:"chat_api_key"`
	ChatModel             string         `json:"chat_model"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.ChainRPCURL = c.ChainRPCURL
	config.ContractAddress = c.ContractAddress
	config.OperatorKey = c.OperatorKey
	config.ChainID = c.ChainID
	config.ChatAPIURL = c.ChatAPIURL
	config.ChatAPIKey = c.ChatAPIKey
	config.ChatModel = c.ChatModel
}
