// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package round

import (
	"fmt"
	"strings"
)

// Round is an immutable reward distribution round.
type Round struct {
	RoundIndex     uint32
	StartTime      uint64
	RewardPerAsset uint64
	AssetCount     uint32
}

// Allocated returns the treasury funds reserved for the round.
func (r *Round) Allocated() uint64 {
	return r.RewardPerAsset * uint64(r.AssetCount)
}

// EmptyRoundPolicy decides how a round without participating assets is handled.
type EmptyRoundPolicy uint8

const (
	// AllowEmpty creates the round with a zero reward.
	AllowEmpty EmptyRoundPolicy = iota
	// RejectEmpty fails the distribution.
	RejectEmpty
)

func (p EmptyRoundPolicy) String() string {
	switch p {
	case AllowEmpty:
		return "allow"
	case RejectEmpty:
		return "reject"
	}
	return fmt.Sprintf("EmptyRoundPolicy(%d)", uint8(p))
}

// ParseEmptyRoundPolicy parses "allow" or "reject".
func ParseEmptyRoundPolicy(s string) (EmptyRoundPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "allow":
		return AllowEmpty, nil
	case "reject":
		return RejectEmpty, nil
	}
	return 0, fmt.Errorf("invalid empty round policy %q", s)
}

// RewardPerAsset splits the funds added since the snapshot evenly, truncating.
// The remainder is left out of the allocation and joins the next delta.
func RewardPerAsset(balance, snapshot uint64, assetCount uint32) uint64 {
	if assetCount == 0 || balance <= snapshot {
		return 0
	}
	return (balance - snapshot) / uint64(assetCount)
}
