// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the ledger records.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv bulk ]
//	         |
//	   [ raw cache ]
//	         |
//	  [ committed kv ]
//
// Records are addressed by a namespace address plus a 32 bytes key.
// A nil value means the record is absent; staging a nil value deletes it.
package state
