// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledgerdb

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/vechain/stackedstate/kv"
	"github.com/vechain/stackedstate/ledger"
	"github.com/vechain/stackedstate/stackedstate"
)

// Writer writes a new version of entities at one block.
// Nothing is visible until Write is called.
type Writer struct {
	db       *DB
	blockNum uint32
	bulk     kv.Bulk
}

// NewWriter creates a writer of versions at the given block.
func (db *DB) NewWriter(blockNum uint32) *Writer {
	return &Writer{db, blockNum, db.store.Bulk()}
}

func (w *Writer) key(space byte, key ledger.Key) []byte {
	k := make([]byte, 0, versionedKeyLength)
	k = append(k, space)
	k = append(k, key.Bytes()...)
	return binary.BigEndian.AppendUint32(k, w.blockNum)
}

// Put stages an entity. It accepts ledger.Account, ledger.Token,
// ledger.TokenRelationship and ledger.UniqueToken.
func (w *Writer) Put(entity any) error {
	switch e := entity.(type) {
	case ledger.Account:
		return w.put(accountSpace, e.Key(), &e)
	case ledger.Token:
		return w.put(tokenSpace, e.Key(), &e)
	case ledger.TokenRelationship:
		return w.put(relationshipSpace, e.Key(), &e)
	case ledger.UniqueToken:
		return w.put(uniqueTokenSpace, e.Key(), &e)
	}
	return errors.Errorf("unsupported entity %T", entity)
}

func (w *Writer) put(space byte, key ledger.Key, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return errors.Wrapf(err, "encode %v", key)
	}
	return w.bulk.Put(w.key(space, key), snappy.Encode(nil, data))
}

// Delete stages the removal of the entity of kind at key.
// Older versions stay readable at their revisions.
func (w *Writer) Delete(kind stackedstate.Kind, key ledger.Key) error {
	space, err := spaceOf(kind)
	if err != nil {
		return err
	}
	// empty value is the tombstone
	return w.bulk.Put(w.key(space, key), nil)
}

// Len returns the count of staged writes.
func (w *Writer) Len() int {
	return w.bulk.Len()
}

// Write flushes staged writes into the store.
func (w *Writer) Write() error {
	n := w.bulk.Len()
	if err := w.bulk.Write(); err != nil {
		return errors.Wrap(err, "ledgerdb: write")
	}
	// entries cached before the write are no longer reachable
	w.db.gen.Add(1)
	w.db.cache.Purge()
	metricWrites().Add(int64(n))
	logger.Debug("entities written", "block", w.blockNum, "count", n)
	return nil
}
