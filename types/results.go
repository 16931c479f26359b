package types

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// RunResult represents the outcome of one pass over all wallets
type RunResult struct {
	Overall     OverallStats
	ByAction    map[string]SubmissionStats
	ByWallet    map[string]SubmissionStats
	Submissions []Submission
	Error       string `json:"error,omitempty"`
}

// OverallStats represents the overall statistics of the run
type OverallStats struct {
	Wallets               int
	TotalSubmissions      int
	SuccessfulSubmissions int
	FailedSubmissions     int
	Runtime               time.Duration
	StartTime             time.Time
	EndTime               time.Time
}

// SubmissionStats counts submissions for a single action or wallet
type SubmissionStats struct {
	Total      int
	Successful int
	Failed     int
}

// Submission is a single broadcast attempt. Exactly one of TxHash and Error is set.
type Submission struct {
	Wallet   string
	Action   string
	Target   string `json:"target,omitempty"`
	TxHash   string `json:"tx_hash,omitempty"`
	GasLimit uint64 `json:"gas_limit,omitempty"`
	Error    string `json:"error,omitempty"`
	SentAt   time.Time
}

func (s Submission) Succeeded() bool {
	return s.Error == ""
}

// NewRunResult returns a result with initialized maps
func NewRunResult() RunResult {
	return RunResult{
		ByAction: map[string]SubmissionStats{},
		ByWallet: map[string]SubmissionStats{},
	}
}

// Record adds a submission and updates every counter it belongs to
func (r *RunResult) Record(s Submission) {
	r.Submissions = append(r.Submissions, s)
	r.Overall.TotalSubmissions++

	action := r.ByAction[s.Action]
	wallet := r.ByWallet[s.Wallet]
	action.Total++
	wallet.Total++
	if s.Succeeded() {
		r.Overall.SuccessfulSubmissions++
		action.Successful++
		wallet.Successful++
	} else {
		r.Overall.FailedSubmissions++
		action.Failed++
		wallet.Failed++
	}
	r.ByAction[s.Action] = action
	r.ByWallet[s.Wallet] = wallet
}

// SaveResults writes the run results as indented JSON to path
func SaveResults(results RunResult, path string, logger *zap.Logger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("failed to create results directory",
			zap.String("path", path),
			zap.Error(err))
		return err
	}

	jsonData, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		logger.Error("failed to marshal results to JSON",
			zap.Error(err))
		return err
	}

	//nolint:gosec // G306: results are not secret
	if err := os.WriteFile(path, jsonData, 0o644); err != nil {
		logger.Error("failed to write results to file",
			zap.String("path", path),
			zap.Error(err))
		return err
	}

	logger.Debug("successfully saved run results",
		zap.String("path", path))

	return nil
}
