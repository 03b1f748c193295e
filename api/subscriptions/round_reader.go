// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/vechain/nftstaking/api/rounds"
	"github.com/vechain/nftstaking/ledger"
)

// maxRoundsPerRead bounds a single batch so a far behind reader does not hold the view for long.
const maxRoundsPerRead = 100

// roundReader yields the rounds distributed after pos, in order.
type roundReader struct {
	ledger *ledger.Ledger
	pos    uint32
}

func newRoundReader(ledger *ledger.Ledger, pos uint32) *roundReader {
	return &roundReader{ledger: ledger, pos: pos}
}

// Read returns the next batch and whether more rounds are pending.
func (r *roundReader) Read() ([]*rounds.Round, bool, error) {
	view := r.ledger.View()
	last, err := view.LastRound()
	if err != nil {
		return nil, false, err
	}
	if last <= r.pos {
		return nil, false, nil
	}

	end := last
	if end-r.pos > maxRoundsPerRead {
		end = r.pos + maxRoundsPerRead
	}
	msgs := make([]*rounds.Round, 0, end-r.pos)
	for i := r.pos + 1; i <= end; i++ {
		round, err := view.Round(i)
		if err != nil {
			return nil, false, err
		}
		if round == nil {
			// indices are dense, a gap means the view raced a distribute
			break
		}
		msgs = append(msgs, rounds.ConvertRound(round))
		r.pos = i
	}
	return msgs, r.pos < last, nil
}
