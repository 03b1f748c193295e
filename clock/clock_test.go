// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClocks(t *testing.T) {
	assert.Equal(t, uint64(42), Fixed(42).Now())

	m := NewMock(100)
	assert.Equal(t, uint64(100), m.Now())
	assert.Equal(t, uint64(150), m.Advance(50))
	m.Set(7)
	assert.Equal(t, uint64(7), m.Now())

	sys := System{}.Now()
	assert.InDelta(t, time.Now().Unix(), int64(sys), 2)
}

func TestCheckOffset(t *testing.T) {
	orig := queryOffset
	t.Cleanup(func() { queryOffset = orig })

	calls := 0
	queryOffset = func(server string) (time.Duration, error) {
		assert.Equal(t, DefaultNTPServer, server)
		calls++
		if calls < 3 {
			return 0, errors.New("timeout")
		}
		return 2 * time.Second, nil
	}

	offset, err := CheckOffset(context.Background(), "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, offset)
	assert.Equal(t, 3, calls)
}

func TestCheckOffsetGivesUp(t *testing.T) {
	orig := queryOffset
	t.Cleanup(func() { queryOffset = orig })

	calls := 0
	queryOffset = func(string) (time.Duration, error) {
		calls++
		return 0, errors.New("unreachable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := CheckOffset(ctx, "ntp.example", time.Second)
	assert.Error(t, err)
	assert.Equal(t, 4, calls)
}
