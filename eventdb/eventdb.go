// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/vechain/nftstaking/common"
)

// EventDB is the sqlite backed log of committed ledger operations.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New opens an event db.
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// a memory db exists per connection
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(activityTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	s, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem creates a memory sqlite db.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Insert appends activities in a single transaction.
func (db *EventDB) Insert(activities []*Activity) error {
	if len(activities) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, a := range activities {
		if _, err := tx.Exec("INSERT INTO activity(kind, caller, asset, round, amount, time) VALUES (?, ?, ?, ?, ?, ?);",
			string(a.Kind),
			a.Caller.Bytes(),
			assetValue(a.Asset),
			a.Round,
			a.Amount,
			a.Time,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	metricInsertCount().Add(int64(len(activities)))
	return nil
}

// Filter returns activities matching the filter.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Activity, error) {
	if filter == nil {
		return db.query(ctx, "SELECT seq, kind, caller, asset, round, amount, time FROM activity ORDER BY seq ASC")
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := "SELECT seq, kind, caller, asset, round, amount, time FROM activity WHERE 1"
	if filter.Caller != nil {
		args = append(args, filter.Caller.Bytes())
		stmt += " AND caller = ?"
	}
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		stmt += " AND kind = ?"
	}
	if filter.Asset != nil {
		args = append(args, filter.Asset.Bytes())
		stmt += " AND asset = ?"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Activity, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		var (
			seq    uint64
			kind   string
			caller []byte
			asset  []byte
			round  uint32
			amount uint64
			time   uint64
		)
		if err := rows.Scan(&seq, &kind, &caller, &asset, &round, &amount, &time); err != nil {
			return nil, err
		}
		a := &Activity{
			Seq:    seq,
			Kind:   Kind(kind),
			Caller: common.BytesToAddress(caller),
			Round:  round,
			Amount: amount,
			Time:   time,
		}
		if len(asset) > 0 {
			h := common.BytesToBytes32(asset)
			a.Asset = &h
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}

// Path returns the db path.
func (db *EventDB) Path() string {
	return db.path
}

// Close closes sqlite.
func (db *EventDB) Close() error {
	return db.db.Close()
}

func assetValue(asset *common.Bytes32) []byte {
	if asset == nil {
		return nil
	}
	return asset.Bytes()
}
