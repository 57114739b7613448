// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedstate

import "strconv"

// Revision is the point in time a database frame reads at.
// The zero value reads the latest state.
type Revision struct {
	blockNum uint32
	pinned   bool
}

// Latest returns the revision reading the latest state.
func Latest() Revision { return Revision{} }

// At returns the revision pinned to the given block.
func At(blockNum uint32) Revision { return Revision{blockNum, true} }

// BlockNum returns the pinned block number. The second return value is false for Latest.
func (r Revision) BlockNum() (uint32, bool) {
	return r.blockNum, r.pinned
}

func (r Revision) String() string {
	if !r.pinned {
		return "latest"
	}
	return "#" + strconv.FormatUint(uint64(r.blockNum), 10)
}
