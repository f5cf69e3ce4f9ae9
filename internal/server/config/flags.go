package config

import (
	"flag"
	"os"
	"time"

	"github.com/anocare/anocare/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      admin token validity, minutes
//	-r string   chain JSON-RPC URL
//	-n string   registry contract address
//	-o string   operator private key (hex)
//	-i int      chain id
//	-u string   chat API base URL
//	-k string   chat API key
//	-m string   chat model name
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in minutes and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-r", "-n", "-o", "-i", "-u", "-k", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.StringVar(&config.ChainRPCURL, "r", config.ChainRPCURL, "chain JSON-RPC URL")
	fs.StringVar(&config.ContractAddress, "n", config.ContractAddress, "registry contract address")
	fs.StringVar(&config.OperatorKey, "o", config.OperatorKey, "operator private key (hex)")
	fs.Int64Var(&config.ChainID, "i", config.ChainID, "chain id")
	fs.StringVar(&config.ChatAPIURL, "u", config.ChatAPIURL, "chat API base URL")
	fs.StringVar(&config.ChatAPIKey, "k", config.ChatAPIKey, "chat API key")
	fs.StringVar(&config.ChatModel, "m", config.ChatModel, "chat model name")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
}
