// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledgerdb stores versioned ledger entities in a kv store and serves
// them as the read accessors of state frames.
package ledgerdb

import (
	"encoding/binary"
	"math"
	"slices"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/qianbin/directcache"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/stackedstate/cache"
	"github.com/vechain/stackedstate/kv"
	"github.com/vechain/stackedstate/ledger"
	"github.com/vechain/stackedstate/log"
	"github.com/vechain/stackedstate/stackedstate"
)

var logger = log.WithContext("pkg", "ledgerdb")

// key spaces, one per entity kind
const (
	accountSpace byte = iota + 1
	tokenSpace
	relationshipSpace
	uniqueTokenSpace
)

const versionedKeyLength = 1 + ledger.KeyLength + 4

func spaceOf(kind stackedstate.Kind) (byte, error) {
	switch kind {
	case ledger.AccountKind:
		return accountSpace, nil
	case ledger.TokenKind:
		return tokenSpace, nil
	case ledger.TokenRelationshipKind:
		return relationshipSpace, nil
	case ledger.UniqueTokenKind:
		return uniqueTokenSpace, nil
	}
	return 0, errors.Errorf("unsupported kind %v", kind)
}

type cacheKey struct {
	space byte
	key   ledger.Key
	rev   stackedstate.Revision
}

type cachedEntity struct {
	value  any
	exists bool
}

// DB is the versioned entity store.
// Each write of an entity is kept under the block number it was written at,
// reads pick the newest version not after the block of the revision.
type DB struct {
	store       kv.Store
	cache       *cache.LRU[cacheKey, cachedEntity] // decoded entities
	blobs       *directcache.Cache                 // encoded entities, keyed by generation
	gen         atomic.Uint32                      // bumped by every write
	blobStats   cache.Stats
	lastLogTime atomic.Int64
}

// New creates a DB over store. cacheSize is the count of decoded entities kept in memory.
// Encoded entities are cached as well, in about 512 bytes per decoded one.
func New(store kv.Store, cacheSize int) (*DB, error) {
	if store == nil {
		return nil, errors.New("ledgerdb: nil store")
	}
	if cacheSize <= 0 {
		cacheSize = 1
	}
	c, err := cache.NewLRU[cacheKey, cachedEntity](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "ledgerdb: create cache")
	}
	db := &DB{
		store: store,
		cache: c,
		blobs: directcache.New(max(cacheSize*512, 1<<20)),
	}
	db.lastLogTime.Store(time.Now().UnixNano())
	return db, nil
}

// Accounts returns the reader of accounts.
func (db *DB) Accounts() stackedstate.Reader[ledger.Key, ledger.Account] {
	return &reader[ledger.Account]{db, accountSpace}
}

// Tokens returns the reader of tokens.
func (db *DB) Tokens() stackedstate.Reader[ledger.Key, ledger.Token] {
	return &reader[ledger.Token]{db, tokenSpace}
}

// TokenRelationships returns the reader of token relationships.
func (db *DB) TokenRelationships() stackedstate.Reader[ledger.Key, ledger.TokenRelationship] {
	return &reader[ledger.TokenRelationship]{db, relationshipSpace}
}

// UniqueTokens returns the reader of unique tokens.
func (db *DB) UniqueTokens() stackedstate.Reader[ledger.Key, ledger.UniqueToken] {
	return &reader[ledger.UniqueToken]{db, uniqueTokenSpace}
}

// Accessors returns the database accessors of all entity kinds.
func (db *DB) Accessors() []stackedstate.DatabaseAccessor[ledger.Key] {
	return []stackedstate.DatabaseAccessor[ledger.Key]{
		stackedstate.Bind(ledger.AccountKind, db.Accounts()),
		stackedstate.Bind(ledger.TokenKind, db.Tokens()),
		stackedstate.Bind(ledger.TokenRelationshipKind, db.TokenRelationships()),
		stackedstate.Bind(ledger.UniqueTokenKind, db.UniqueTokens()),
	}
}

// CacheStats returns hits and misses of the decoded entity cache.
func (db *DB) CacheStats() (hit, miss int64) {
	hit, miss = db.cache.Stats().Counts()
	return
}

// blobKey is the key of a lookup in the encoded entity cache.
func (db *DB) blobKey(space byte, key ledger.Key, rev stackedstate.Revision) []byte {
	k := make([]byte, 0, 4+1+ledger.KeyLength+5)
	k = binary.BigEndian.AppendUint32(k, db.gen.Load())
	k = append(k, space)
	k = append(k, key.Bytes()...)
	if num, pinned := rev.BlockNum(); pinned {
		k = append(k, 1)
		k = binary.BigEndian.AppendUint32(k, num)
	} else {
		k = append(k, 0)
	}
	return k
}

// lookup returns the rlp encoded newest version of key not after rev, or nil
// if no such version exists.
func (db *DB) lookup(space byte, key ledger.Key, rev stackedstate.Revision) ([]byte, error) {
	bk := db.blobKey(space, key, rev)

	var data []byte
	if db.blobs.AdvGet(bk, func(val []byte) {
		// first byte tells if the entity exists
		if len(val) > 1 && val[0] == 1 {
			data = slices.Clone(val[1:])
		}
	}, false) {
		db.blobStats.Hit()
		return data, nil
	}
	db.blobStats.Miss()

	data, err := db.load(space, key, rev)
	if err != nil {
		return nil, err
	}
	if data == nil {
		_ = db.blobs.Set(bk, []byte{0})
	} else {
		_ = db.blobs.Set(bk, append([]byte{1}, data...))
	}
	return data, nil
}

// load reads the raw value of the newest version of key not after rev.
// It returns nil if no such version exists or the version is a tombstone.
func (db *DB) load(space byte, key ledger.Key, rev stackedstate.Revision) ([]byte, error) {
	prefix := append([]byte{space}, key.Bytes()...)
	rng := kv.Range{Start: prefix, Limit: util.BytesPrefix(prefix).Limit}
	if num, pinned := rev.BlockNum(); pinned && num < math.MaxUint32 {
		rng.Limit = binary.BigEndian.AppendUint32(append([]byte(nil), prefix...), num+1)
	}

	it := db.store.Iterate(rng)
	defer it.Release()
	if !it.Last() {
		return nil, it.Error()
	}
	if len(it.Key()) != versionedKeyLength || len(it.Value()) == 0 {
		return nil, nil
	}
	data, err := snappy.Decode(nil, it.Value())
	if err != nil {
		return nil, errors.Wrapf(err, "decompress %v", key)
	}
	return data, nil
}

func (db *DB) logStats() {
	now := time.Now().UnixNano()
	last := db.lastLogTime.Swap(now)
	if now-last < int64(time.Second*20) {
		db.lastLogTime.CompareAndSwap(now, last)
		return
	}
	hit, miss := db.cache.Stats().Counts()
	blobHit, blobMiss := db.blobStats.Counts()
	if changed, blobChanged := db.cache.Stats().RateChanged(), db.blobStats.RateChanged(); changed || blobChanged {
		logger.Debug("entity cache stats", "hit", hit, "miss", miss, "rate", cache.HitRate(hit, miss))
		logger.Debug("blob cache stats", "hit", blobHit, "miss", blobMiss, "rate", cache.HitRate(blobHit, blobMiss))
	}
	metricCacheHitMiss().SetWithLabel(hit, map[string]string{"type": "entity", "event": "hit"})
	metricCacheHitMiss().SetWithLabel(miss, map[string]string{"type": "entity", "event": "miss"})
	metricCacheHitMiss().SetWithLabel(blobHit, map[string]string{"type": "blob", "event": "hit"})
	metricCacheHitMiss().SetWithLabel(blobMiss, map[string]string{"type": "blob", "event": "miss"})
}

type reader[V any] struct {
	db    *DB
	space byte
}

func (r *reader[V]) Get(key ledger.Key, rev stackedstate.Revision) (V, bool, error) {
	var zero V
	ck := cacheKey{r.space, key, rev}
	if c, ok := r.db.cache.Get(ck); ok {
		if !c.exists {
			return zero, false, nil
		}
		return c.value.(V), true, nil
	}
	defer r.db.logStats()

	data, err := r.db.lookup(r.space, key, rev)
	if err != nil {
		return zero, false, err
	}
	if data == nil {
		r.db.cache.Add(ck, cachedEntity{})
		return zero, false, nil
	}
	var v V
	if err := rlp.DecodeBytes(data, &v); err != nil {
		return zero, false, errors.Wrapf(err, "decode %T %v", v, key)
	}
	r.db.cache.Add(ck, cachedEntity{v, true})
	return v, true, nil
}
