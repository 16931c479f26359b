package runner

import (
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
)

// Reporter prints one line per submission attempt.
type Reporter struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
}

func (r *Reporter) Success(action string, hash common.Hash) {
	_, _ = r.success.Fprintf(r.out, "%s transaction successful. Hash: %s\n", action, hash.Hex())
}

func (r *Reporter) Failure(action string, err error) {
	_, _ = r.failure.Fprintf(r.out, "%s transaction failed: %v\n", action, err)
}
