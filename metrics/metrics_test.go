package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	mintertypes "github.com/skip-mev/minter/types"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Observe(mintertypes.Submission{Action: "claim", TxHash: "0x01", GasLimit: 110_000})
	m.Observe(mintertypes.Submission{Action: "claim", TxHash: "0x02", GasLimit: 120_000})
	m.Observe(mintertypes.Submission{Action: "mint", Error: "execution reverted"})

	require.Equal(t, 2.0, testutil.ToFloat64(m.SubmissionSuccess.WithLabelValues("claim")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.SubmissionFailure.WithLabelValues("claim")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionFailure.WithLabelValues("mint")))

	count, err := testutil.GatherAndCount(reg, "minter_submissions_gas_limit")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestPrintResults(t *testing.T) {
	result := mintertypes.NewRunResult()
	result.Overall.Wallets = 2
	result.Record(mintertypes.Submission{Wallet: "0xb", Action: "mint", TxHash: "0x01"})
	result.Record(mintertypes.Submission{Wallet: "0xa", Action: "claim", Error: "boom"})

	var buf bytes.Buffer
	PrintResults(&buf, result)
	out := buf.String()

	require.Contains(t, out, "Total Submissions: 2")
	require.Contains(t, out, "Successful Submissions: 1")
	require.Contains(t, out, "Failed Submissions: 1")
	require.Less(t, bytes.Index(buf.Bytes(), []byte("\nclaim:")), bytes.Index(buf.Bytes(), []byte("\nmint:")))
	require.Less(t, bytes.Index(buf.Bytes(), []byte("\n0xa:")), bytes.Index(buf.Bytes(), []byte("\n0xb:")))
}
