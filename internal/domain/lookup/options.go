package lookup

import (
	"strings"

	"github.com/okian/gobu/internal/domain/failure"
)

// ListOption configures delimited-list resolution.
type ListOption func(*listOptions)

type listOptions struct {
	delimiter string
	bound     int
	bounded   bool
	dedupe    bool
}

// WithBound requires exactly n segments.
func WithBound(n int) ListOption {
	return func(o *listOptions) {
		o.bound = n
		o.bounded = true
	}
}

// WithDelimiter splits each line on d instead of a comma.
func WithDelimiter(d string) ListOption {
	return func(o *listOptions) {
		if d != "" {
			o.delimiter = d
		}
	}
}

// WithDuplicates keeps repeated pets. Talent lists ignore it.
func WithDuplicates() ListOption {
	return func(o *listOptions) {
		o.dedupe = false
	}
}

// Split breaks input into lines, then each line on delim, trimming
// whitespace and dropping empty segments.
func Split(input, delim string) []string {
	var out []string
	for _, line := range strings.Split(strings.Trim(input, delim), "\n") {
		for _, seg := range strings.Split(line, delim) {
			if s := strings.TrimSpace(seg); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func (o listOptions) segments(entity failure.Entity, input string) ([]string, error) {
	segs := Split(input, o.delimiter)
	if o.bounded && len(segs) != o.bound {
		return nil, failure.CountMismatch(entity, o.bound, len(segs))
	}
	return segs, nil
}
