// Package cli implements the interactive console for applicants and
// reviewers: filing protected applications, listing them, decrypting
// documents and acting on pending reviews.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/anocare/anocare/internal/chain"
	"github.com/anocare/anocare/internal/client/api"
	"github.com/anocare/anocare/internal/client/config"
	"github.com/anocare/anocare/internal/client/services"
	"github.com/anocare/anocare/internal/logging"
	"github.com/anocare/anocare/internal/pinstore"
)

type App struct {
	config  *config.Config
	api     *api.Client
	apply   *services.ApplyService
	review  *services.ReviewService
	logger  logging.Logger
	reader  *bufio.Reader
	address string // set after a successful admin login
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	apiClient := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)

	store, err := pinstore.NewS3Store(ctx, pinstore.S3Config{
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		return nil, err
	}

	// read-only registry use: no operator key, chain id irrelevant
	registry, err := chain.NewEthRegistry(ctx, c.ChainRPCURL, c.ContractAddress, "", 0, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    apiClient,
		apply:  services.NewApplyService(apiClient, store, registry, logger),
		review: services.NewReviewService(store, registry, logger),
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.address != ""
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
