package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"math/rand"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/skip-mev/minter/actions"
	"github.com/skip-mev/minter/metrics"
	mintertypes "github.com/skip-mev/minter/types"
)

var (
	ErrEmptyCalls = errors.New("action produced no calls")
	ErrNoKeys     = errors.New("no keys to run")
	ErrNoActions  = errors.New("no actions to run")
)

// Wallet is a single key able to sign and submit calls.
type Wallet interface {
	actions.Account
	Submit(ctx context.Context, to common.Address, value *big.Int, data []byte) (*gethtypes.Transaction, error)
}

// WalletFactory turns a raw secret into a Wallet.
type WalletFactory func(secret string) (Wallet, error)

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the default Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type key struct {
	label  string
	secret string
}

// Runner walks every key through every action, one submission at a time.
type Runner struct {
	logger    *zap.Logger
	keys      []key
	actions   []actions.Action
	newWallet WalletFactory
	pauses    mintertypes.Pauses

	rng      *rand.Rand
	sleep    Sleeper
	reporter *Reporter
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Runner)

func WithRand(rng *rand.Rand) Option {
	return func(r *Runner) { r.rng = rng }
}

func WithSleeper(s Sleeper) Option {
	return func(r *Runner) { r.sleep = s }
}

// WithOutput sets where the per-submission lines are printed.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.reporter = NewReporter(w) }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

func NewRunner(logger *zap.Logger, secrets []string, acts []actions.Action, newWallet WalletFactory,
	pauses mintertypes.Pauses, opts ...Option,
) (*Runner, error) {
	if len(secrets) == 0 {
		return nil, ErrNoKeys
	}
	if len(acts) == 0 {
		return nil, ErrNoActions
	}
	if err := pauses.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pauses: %w", err)
	}

	keys := make([]key, len(secrets))
	for i, secret := range secrets {
		keys[i] = key{label: fmt.Sprintf("key-%d", i+1), secret: secret}
	}

	r := &Runner{
		logger:    logger.With(zap.String("module", "runner")),
		keys:      keys,
		actions:   acts,
		newWallet: newWallet,
		pauses:    pauses,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // G404: ordering only
		sleep:     Sleep,
		reporter:  NewReporter(os.Stdout),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run processes every key once in a random order. Submission failures are
// reported and recorded, never returned; only cancellation ends the run early.
func (r *Runner) Run(ctx context.Context) (result mintertypes.RunResult, err error) {
	result = mintertypes.NewRunResult()
	result.Overall.Wallets = len(r.keys)
	result.Overall.StartTime = r.now()
	defer func() {
		result.Overall.EndTime = r.now()
		result.Overall.Runtime = result.Overall.EndTime.Sub(result.Overall.StartTime)
	}()

	keys := make([]key, len(r.keys))
	copy(keys, r.keys)
	r.rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	for i, k := range keys {
		if err := ctx.Err(); err != nil {
			return r.cancelled(&result, err)
		}
		r.logger.Info("processing wallet", zap.String("wallet", k.label), zap.Int("index", i+1), zap.Int("total", len(keys)))

		if err := r.runWallet(ctx, k, &result); err != nil {
			return r.cancelled(&result, err)
		}
		if err := r.pause(ctx, "between_wallets", r.pauses.BetweenWallets); err != nil {
			return r.cancelled(&result, err)
		}
	}

	r.logger.Info("run complete",
		zap.Int("submissions", result.Overall.TotalSubmissions),
		zap.Int("successful", result.Overall.SuccessfulSubmissions),
		zap.Int("failed", result.Overall.FailedSubmissions))
	return result, nil
}

func (r *Runner) cancelled(result *mintertypes.RunResult, err error) (mintertypes.RunResult, error) {
	r.logger.Info("run stopped", zap.Error(err))
	result.Error = err.Error()
	return *result, err
}

func (r *Runner) runWallet(ctx context.Context, k key, result *mintertypes.RunResult) error {
	label := k.label
	w, walletErr := r.newWallet(k.secret)
	if walletErr == nil {
		label = w.Address().Hex()
	} else {
		r.logger.Error("failed to load wallet", zap.String("wallet", k.label), zap.Error(walletErr))
	}

	order := make([]actions.Action, len(r.actions))
	copy(order, r.actions)
	r.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for _, action := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walletErr != nil {
			// an action with nothing to submit never touches the key
			if action.Targets() > 0 {
				r.record(result, label, action.Name(), common.Address{}, nil, walletErr)
			}
		} else if err := r.runAction(ctx, w, label, action, result); err != nil {
			return err
		}
		if err := r.pause(ctx, "between_actions", r.pauses.BetweenActions); err != nil {
			return err
		}
	}
	return nil
}

// runAction submits the calls of one action in order and stops at the first
// failure. It only returns an error when ctx is done.
func (r *Runner) runAction(ctx context.Context, w Wallet, label string, action actions.Action,
	result *mintertypes.RunResult,
) error {
	logger := r.logger.With(zap.String("wallet", label), zap.String("action", action.Name()))

	calls, err := action.Calls(w)
	if err == nil && action.Shape() == actions.Single && len(calls) != 1 {
		err = fmt.Errorf("%w: expected 1, got %d", ErrEmptyCalls, len(calls))
	}
	if err != nil {
		r.record(result, label, action.Name(), common.Address{}, nil, err)
		return nil
	}
	if len(calls) == 0 {
		logger.Debug("nothing to submit")
		return nil
	}

	for i, call := range calls {
		tx, err := w.Submit(ctx, call.Target, call.Value, call.Data)
		r.record(result, label, action.Name(), call.Target, tx, err)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if remaining := len(calls) - i - 1; remaining > 0 {
				logger.Warn("skipping remaining calls", zap.Int("remaining", remaining))
			}
			return nil
		}
		if action.Shape() == actions.Sequence {
			if err := r.pause(ctx, "between_submissions", r.pauses.BetweenSubmissions); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) record(result *mintertypes.RunResult, wallet, action string, target common.Address,
	tx *gethtypes.Transaction, err error,
) {
	s := mintertypes.Submission{
		Wallet: wallet,
		Action: action,
		SentAt: r.now(),
	}
	if target != (common.Address{}) {
		s.Target = target.Hex()
	}
	if err != nil {
		s.Error = err.Error()
		r.reporter.Failure(action, err)
		r.logger.Debug("submission failed", zap.String("wallet", wallet), zap.String("action", action), zap.Error(err))
	} else {
		s.TxHash = tx.Hash().Hex()
		s.GasLimit = tx.Gas()
		r.reporter.Success(action, tx.Hash())
		r.logger.Debug("submission sent", zap.String("wallet", wallet), zap.String("action", action),
			zap.String("tx_hash", s.TxHash), zap.Uint64("gas_limit", s.GasLimit))
	}

	result.Record(s)
	if r.metrics != nil {
		r.metrics.Observe(s)
	}
}

func (r *Runner) pause(ctx context.Context, name string, rng mintertypes.Range) error {
	d := r.draw(rng)
	r.logger.Debug("sleeping", zap.String("pause", name), zap.Duration("duration", d))
	return r.sleep(ctx, d)
}

// draw picks a duration uniformly from the inclusive range.
func (r *Runner) draw(rng mintertypes.Range) time.Duration {
	span := int64(rng.Max - rng.Min)
	if span <= 0 {
		return rng.Min
	}
	return rng.Min + time.Duration(r.rng.Int63n(span+1))
}
