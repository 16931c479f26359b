package campaign

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/skip-mev/minter/actions"
	"github.com/skip-mev/minter/metrics"
	"github.com/skip-mev/minter/runner"
	mintertypes "github.com/skip-mev/minter/types"
	"github.com/skip-mev/minter/wallet"
)

// Dial connects to an HTTP JSON-RPC endpoint. Every request is bounded by timeout.
func Dial(ctx context.Context, rpcURL string, timeout time.Duration) (*ethclient.Client, error) {
	tr := &http.Transport{
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
	hc := &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
	rpcClient, err := rpc.DialOptions(ctx, rpcURL, rpc.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("failed construct RPC client for %s: %w", rpcURL, err)
	}
	return ethclient.NewClient(rpcClient), nil
}

// Campaign is one configured pass of every key through every action.
type Campaign struct {
	logger *zap.Logger
	spec   mintertypes.RunSpec
	runner *runner.Runner

	registry *prometheus.Registry
	out      io.Writer
}

type Option func(*options)

type options struct {
	out        io.Writer
	runnerOpts []runner.Option
	actionOpts []actions.Option
}

// WithOutput sets where submission lines and the summary are printed.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

func WithRunnerOptions(opts ...runner.Option) Option {
	return func(o *options) { o.runnerOpts = append(o.runnerOpts, opts...) }
}

func WithActionOptions(opts ...actions.Option) Option {
	return func(o *options) { o.actionOpts = append(o.actionOpts, opts...) }
}

// New checks the node, loads the keys and builds the actions of spec. The
// client is shared by every wallet of the campaign.
func New(ctx context.Context, logger *zap.Logger, spec mintertypes.RunSpec, client wallet.Client, opts ...Option) (*Campaign, error) {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	logger = logger.With(zap.String("module", "campaign"), zap.String("name", spec.Name))

	chainID, err := checkChainID(ctx, client, spec.ChainID)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to node", zap.String("rpc", spec.RPC), zap.String("chain_id", chainID.String()))

	keys, err := wallet.LoadPrivateKeys(spec.WalletsFile)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded keys", zap.Int("count", len(keys)))

	acts, err := actions.Build(spec.Actions, o.actionOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build actions: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	newWallet := func(secret string) (runner.Wallet, error) {
		key, err := wallet.ParsePrivateKey(secret)
		if err != nil {
			return nil, err
		}
		return wallet.NewInteractingWallet(logger, key, chainID, client, spec.GasMargin, nil), nil
	}

	runnerOpts := append([]runner.Option{runner.WithOutput(o.out), runner.WithMetrics(m)}, o.runnerOpts...)
	r, err := runner.NewRunner(logger, keys, acts, newWallet, spec.Pauses, runnerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &Campaign{
		logger:   logger,
		spec:     spec,
		runner:   r,
		registry: registry,
		out:      o.out,
	}, nil
}

func checkChainID(ctx context.Context, client wallet.Client, expected string) (*big.Int, error) {
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if expected == "" {
		return chainID, nil
	}
	// decimal or 0x prefixed hex
	want, ok := new(big.Int).SetString(strings.TrimSpace(expected), 0)
	if !ok {
		return nil, fmt.Errorf("invalid chain_id %q", expected)
	}
	if want.Cmp(chainID) != 0 {
		return nil, fmt.Errorf("chain id mismatch: node reports %s, expected %s", chainID, want)
	}
	return chainID, nil
}

// Run executes the campaign, prints a summary and saves the results. The
// results are saved even when the run was interrupted.
func (c *Campaign) Run(ctx context.Context) (mintertypes.RunResult, error) {
	if c.spec.MetricsAddr != "" {
		srv := metrics.StartPrometheusServer(c.spec.MetricsAddr, c.registry, c.registry, c.logger)
		defer metrics.StopPrometheusServer(srv, 5*time.Second, c.logger)
		c.logger.Info("serving metrics", zap.String("addr", c.spec.MetricsAddr))
	}

	c.logger.Info("starting new run")
	results, err := c.runner.Run(ctx)
	if err != nil {
		results.Error = err.Error()
	}

	metrics.PrintResults(c.out, results)

	if c.spec.ResultsFile != "" {
		c.logger.Info("run completed, saving results", zap.String("path", c.spec.ResultsFile))
		if saveErr := mintertypes.SaveResults(results, c.spec.ResultsFile, c.logger); saveErr != nil {
			return results, fmt.Errorf("failed to save results: %w", saveErr)
		}
	}

	return results, err
}
