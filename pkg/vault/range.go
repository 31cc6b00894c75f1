package vault

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hdvault/hdvault/pkg/hdkey"
)

// RangeEntry is one slot of an address range scan. Either Address or
// Err is set; a failed index does not abort its siblings, the caller
// can skip or report it and keep the rest of the range.
type RangeEntry struct {
	Index   uint32
	Address string
	Err     error
}

// DeriveRange resolves the addresses at indexes first..first+count-1
// under the given branch path, fanning the per-index work out across
// goroutines. Results come back ordered by index regardless of
// completion order. The only error returned by DeriveRange itself is
// the context's; per-index failures live in the entries.
func DeriveRange(
	ctx context.Context,
	root hdkey.Node, branch []uint32,
	first, count uint32,
) ([]RangeEntry, error) {
	parent, err := resolveNode(root, branch)
	if err != nil {
		return nil, err
	}

	entries := make([]RangeEntry, count)
	g, ctx := errgroup.WithContext(ctx)
	for i := uint32(0); i < count; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			index := first + i
			addr, err := ResolveAddress(parent, []uint32{index})
			entry := RangeEntry{Index: index, Err: err}
			if err == nil {
				entry.Address = addr.String()
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
