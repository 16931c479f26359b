package runner

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/skip-mev/minter/actions"
	"github.com/skip-mev/minter/metrics"
	mintertypes "github.com/skip-mev/minter/types"
)

var (
	okTarget     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	revertTarget = common.HexToAddress("0x2222222222222222222222222222222222222222")
	errReverted  = errors.New("execution reverted")

	testPauses = mintertypes.Pauses{
		BetweenSubmissions: mintertypes.Range{Min: time.Second, Max: time.Second},
		BetweenActions:     mintertypes.Range{Min: 2 * time.Second, Max: 2 * time.Second},
		BetweenWallets:     mintertypes.Range{Min: 3 * time.Second, Max: 3 * time.Second},
	}
)

type fakeWallet struct {
	addr    common.Address
	nonce   uint64
	targets []common.Address
}

func (w *fakeWallet) Address() common.Address { return w.addr }

func (w *fakeWallet) SignText([]byte) ([]byte, error) { return make([]byte, 65), nil }

func (w *fakeWallet) Submit(_ context.Context, to common.Address, value *big.Int, data []byte) (*gethtypes.Transaction, error) {
	w.targets = append(w.targets, to)
	if to == revertTarget {
		return nil, errReverted
	}
	tx := gethtypes.NewTx(&gethtypes.LegacyTx{Nonce: w.nonce, To: &to, Value: value, Gas: 110_000, Data: data})
	w.nonce++
	return tx, nil
}

type fakeAction struct {
	name    string
	shape   actions.Shape
	targets []common.Address
	err     error
}

func (a *fakeAction) Name() string         { return a.name }
func (a *fakeAction) Kind() string         { return "fake" }
func (a *fakeAction) Shape() actions.Shape { return a.shape }
func (a *fakeAction) Targets() int         { return len(a.targets) }
func (a *fakeAction) Calls(actions.Account) ([]actions.Call, error) {
	if a.err != nil {
		return nil, a.err
	}
	calls := make([]actions.Call, 0, len(a.targets))
	for _, target := range a.targets {
		calls = append(calls, actions.Call{Target: target, Value: new(big.Int), Data: []byte{0x01}})
	}
	return calls, nil
}

type harness struct {
	wallets map[string]*fakeWallet
	sleeps  []time.Duration
	out     bytes.Buffer
}

func (h *harness) factory(secret string) (Wallet, error) {
	if strings.HasPrefix(secret, "bad") {
		return nil, errors.New("invalid private key: invalid length")
	}
	w := &fakeWallet{addr: common.BytesToAddress([]byte(secret))}
	h.wallets[secret] = w
	return w, nil
}

func (h *harness) sleeper(_ context.Context, d time.Duration) error {
	h.sleeps = append(h.sleeps, d)
	return nil
}

func newHarness(t *testing.T, secrets []string, acts []actions.Action, opts ...Option) (*Runner, *harness) {
	t.Helper()
	h := &harness{wallets: map[string]*fakeWallet{}}
	opts = append([]Option{
		WithRand(rand.New(rand.NewSource(7))),
		WithSleeper(h.sleeper),
		WithOutput(&h.out),
	}, opts...)
	r, err := NewRunner(zaptest.NewLogger(t), secrets, acts, h.factory, testPauses, opts...)
	require.NoError(t, err)
	return r, h
}

func countSleeps(sleeps []time.Duration, d time.Duration) int {
	n := 0
	for _, s := range sleeps {
		if s == d {
			n++
		}
	}
	return n
}

func TestRunTwoKeysOneRevert(t *testing.T) {
	acts := []actions.Action{
		&fakeAction{name: "A", shape: actions.Single, targets: []common.Address{okTarget}},
		&fakeAction{name: "B", shape: actions.Single, targets: []common.Address{revertTarget}},
	}
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	r, h := newHarness(t, []string{"alice", "bob"}, acts, WithMetrics(m))

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, result.Error)

	out := h.out.String()
	require.Equal(t, 2, strings.Count(out, "A transaction successful. Hash: 0x"))
	require.Equal(t, 2, strings.Count(out, "B transaction failed: execution reverted"))

	require.Equal(t, 2, result.Overall.Wallets)
	require.Equal(t, 4, result.Overall.TotalSubmissions)
	require.Equal(t, 2, result.Overall.SuccessfulSubmissions)
	require.Equal(t, 2, result.Overall.FailedSubmissions)
	require.Equal(t, mintertypes.SubmissionStats{Total: 2, Successful: 2}, result.ByAction["A"])
	require.Equal(t, mintertypes.SubmissionStats{Total: 2, Failed: 2}, result.ByAction["B"])
	for _, w := range h.wallets {
		require.Equal(t, mintertypes.SubmissionStats{Total: 2, Successful: 1, Failed: 1}, result.ByWallet[w.addr.Hex()])
		require.ElementsMatch(t, []common.Address{okTarget, revertTarget}, w.targets)
	}

	// two actions and one wallet pause per key, no submission pauses for single calls
	require.Len(t, h.sleeps, 6)
	require.Equal(t, 4, countSleeps(h.sleeps, 2*time.Second))
	require.Equal(t, 2, countSleeps(h.sleeps, 3*time.Second))
	require.Equal(t, 3*time.Second, h.sleeps[len(h.sleeps)-1])

	require.Equal(t, 2.0, testutil.ToFloat64(m.SubmissionSuccess.WithLabelValues("A")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.SubmissionFailure.WithLabelValues("B")))
}

func TestRunSequenceSleepsAndAborts(t *testing.T) {
	third := common.HexToAddress("0x3333333333333333333333333333333333333333")
	acts := []actions.Action{
		&fakeAction{name: "mint", shape: actions.Sequence, targets: []common.Address{okTarget, third}},
	}
	r, h := newHarness(t, []string{"alice"}, acts)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []common.Address{okTarget, third}, h.wallets["alice"].targets)
	require.Equal(t, 2, result.Overall.SuccessfulSubmissions)
	require.Equal(t, okTarget.Hex(), result.Submissions[0].Target)
	require.Equal(t, third.Hex(), result.Submissions[1].Target)
	require.Equal(t, []time.Duration{time.Second, time.Second, 2 * time.Second, 3 * time.Second}, h.sleeps)

	acts = []actions.Action{
		&fakeAction{name: "comment", shape: actions.Sequence, targets: []common.Address{okTarget, revertTarget, third}},
	}
	r, h = newHarness(t, []string{"alice"}, acts)

	result, err = r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []common.Address{okTarget, revertTarget}, h.wallets["alice"].targets, "a failure aborts the rest")
	require.Equal(t, 1, result.Overall.SuccessfulSubmissions)
	require.Equal(t, 1, result.Overall.FailedSubmissions)
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, h.sleeps)
}

func TestRunEmptySequence(t *testing.T) {
	acts := []actions.Action{&fakeAction{name: "comment", shape: actions.Sequence}}
	r, h := newHarness(t, []string{"alice"}, acts)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, result.Overall.TotalSubmissions)
	require.Empty(t, h.out.String())
	require.Equal(t, []time.Duration{2 * time.Second, 3 * time.Second}, h.sleeps)
}

func TestRunReportsBuildErrors(t *testing.T) {
	acts := []actions.Action{
		&fakeAction{name: "olimp", shape: actions.Single, err: errors.New("signing olimp digest: boom")},
		&fakeAction{name: "claim", shape: actions.Single},
	}
	r, h := newHarness(t, []string{"alice"}, acts)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, result.Overall.FailedSubmissions)
	require.Contains(t, h.out.String(), "olimp transaction failed: signing olimp digest: boom")
	require.Contains(t, h.out.String(), "claim transaction failed: "+ErrEmptyCalls.Error())
	require.Empty(t, h.wallets["alice"].targets)
}

func TestRunMalformedKey(t *testing.T) {
	acts := []actions.Action{
		&fakeAction{name: "A", shape: actions.Single, targets: []common.Address{okTarget}},
		&fakeAction{name: "B", shape: actions.Single, targets: []common.Address{okTarget}},
	}
	r, h := newHarness(t, []string{"bad-key", "alice"}, acts)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, mintertypes.SubmissionStats{Total: 2, Failed: 2}, result.ByWallet["key-1"])
	require.Equal(t, 2, result.Overall.SuccessfulSubmissions)
	require.Equal(t, 2, strings.Count(h.out.String(), "transaction failed: invalid private key"))
	require.NotContains(t, h.out.String(), "bad-key")
	require.Len(t, h.sleeps, 6)
}

func TestRunMalformedKeySkipsEmptyActions(t *testing.T) {
	acts := []actions.Action{
		&fakeAction{name: "comment", shape: actions.Sequence},
		&fakeAction{name: "mint", shape: actions.Sequence, targets: []common.Address{okTarget}},
	}
	r, h := newHarness(t, []string{"bad-key"}, acts)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Overall.TotalSubmissions)
	require.Equal(t, mintertypes.SubmissionStats{Total: 1, Failed: 1}, result.ByWallet["key-1"])
	require.Zero(t, result.ByAction["comment"].Total)
	require.NotContains(t, h.out.String(), "comment transaction failed")
	require.Contains(t, h.out.String(), "mint transaction failed: invalid private key")
	// pauses still follow every action and the wallet
	require.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second, 3 * time.Second}, h.sleeps)
}

func TestRunStopsOnCancel(t *testing.T) {
	acts := []actions.Action{
		&fakeAction{name: "A", shape: actions.Single, targets: []common.Address{okTarget}},
		&fakeAction{name: "B", shape: actions.Single, targets: []common.Address{okTarget}},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sleeps := 0
	cancelling := func(ctx context.Context, _ time.Duration) error {
		sleeps++
		cancel()
		return ctx.Err()
	}
	r, h := newHarness(t, []string{"alice", "bob"}, acts, WithSleeper(cancelling))

	result, err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, sleeps)
	require.Equal(t, 1, result.Overall.TotalSubmissions)
	require.NotEmpty(t, result.Error)
	require.Len(t, h.wallets, 1)
}

func TestNewRunnerValidation(t *testing.T) {
	h := &harness{wallets: map[string]*fakeWallet{}}
	acts := []actions.Action{&fakeAction{name: "A"}}

	_, err := NewRunner(zaptest.NewLogger(t), nil, acts, h.factory, testPauses)
	require.ErrorIs(t, err, ErrNoKeys)

	_, err = NewRunner(zaptest.NewLogger(t), []string{"alice"}, nil, h.factory, testPauses)
	require.ErrorIs(t, err, ErrNoActions)

	bad := testPauses
	bad.BetweenWallets = mintertypes.Range{Min: time.Minute, Max: time.Second}
	_, err = NewRunner(zaptest.NewLogger(t), []string{"alice"}, acts, h.factory, bad)
	require.Error(t, err)
}

func TestDrawWithinRange(t *testing.T) {
	r, _ := newHarness(t, []string{"alice"}, []actions.Action{&fakeAction{name: "A"}})
	rng := mintertypes.Range{Min: 10 * time.Second, Max: 30 * time.Second}
	for n := 0; n < 1000; n++ {
		d := r.draw(rng)
		require.GreaterOrEqual(t, d, rng.Min)
		require.LessOrEqual(t, d, rng.Max)
	}
	require.Equal(t, 5*time.Second, r.draw(mintertypes.Range{Min: 5 * time.Second, Max: 5 * time.Second}))
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	require.NoError(t, Sleep(context.Background(), time.Millisecond))
}

func TestRunRecordsTiming(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	ticks := 0
	clock := func() time.Time {
		ticks++
		return start.Add(time.Duration(ticks) * time.Second)
	}
	acts := []actions.Action{&fakeAction{name: "A", shape: actions.Single, targets: []common.Address{okTarget}}}
	r, _ := newHarness(t, []string{"alice"}, acts, WithClock(clock))

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, start.Add(time.Second), result.Overall.StartTime)
	require.Equal(t, start.Add(2*time.Second), result.Submissions[0].SentAt)
	require.Equal(t, start.Add(3*time.Second), result.Overall.EndTime)
	require.Equal(t, 2*time.Second, result.Overall.Runtime)
}
