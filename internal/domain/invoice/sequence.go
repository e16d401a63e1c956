package invoice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/billaged/billaged/internal/types"
)

// NextNumber returns the advisory next invoice number for the configured
// prefix, given every number previously issued with that prefix.
//
// The generator itself is pure. Two concurrent callers reading the same set
// of existing numbers will compute the same result, so the caller must
// guarantee atomicity: either persist behind a uniqueness constraint and
// retry on conflict, or use the repository's atomic NextSequence counter.
func NextNumber(existing []string, cfg types.NumberingConfig) string {
	max := cfg.StartSequence - 1
	for _, number := range existing {
		if seq, ok := ParseSequence(number, cfg); ok && seq > max {
			max = seq
		}
	}
	return FormatNumber(cfg, max+1)
}

// FormatNumber renders a sequence value as an invoice number, zero padding
// the suffix to the configured width.
func FormatNumber(cfg types.NumberingConfig, seq int64) string {
	return fmt.Sprintf("%s%s%0*d", cfg.Prefix, cfg.Separator, cfg.SuffixLength, seq)
}

// ParseSequence extracts the numeric suffix from a number sharing the
// configured prefix. Numbers with a different prefix, or a non-numeric
// suffix (manually supplied numbers), report ok = false.
func ParseSequence(number string, cfg types.NumberingConfig) (int64, bool) {
	suffix, found := strings.CutPrefix(number, cfg.Prefix+cfg.Separator)
	if !found {
		return 0, false
	}

	seq, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
