// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

const activityTableSchema = `CREATE TABLE IF NOT EXISTS activity (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	caller BLOB(20) NOT NULL,
	asset BLOB(32),
	round INTEGER NOT NULL,
	amount INTEGER NOT NULL,
	time INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS activityCallerIndex ON activity(caller);
CREATE INDEX IF NOT EXISTS activityAssetIndex ON activity(asset);
CREATE INDEX IF NOT EXISTS activityKindIndex ON activity(kind);`
