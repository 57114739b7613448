// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stackedstate/ledger"
	"github.com/vechain/stackedstate/state"
	"github.com/vechain/stackedstate/thor"
)

type entityQuery struct {
	kind   string
	addr   thor.Address
	target thor.Address
	serial uint64
}

func getAction(ctx *cli.Context) error {
	s, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	q := entityQuery{kind: ctx.String(kindFlag.Name), serial: ctx.Uint64(serialFlag.Name)}
	if q.addr, err = parseAddressFlag(ctx, addrFlag); err != nil {
		return err
	}
	if q.kind == "relationship" {
		if q.target, err = parseAddressFlag(ctx, targetFlag); err != nil {
			return err
		}
	}

	store, db, err := s.openLedgerDB()
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := state.New(s.revision(), db.Accessors()...)
	if err != nil {
		return err
	}
	entity, err := q.get(st)
	if err != nil {
		return err
	}
	return printEntity(os.Stdout, entity, ctx.Bool(dumpFlag.Name))
}

func (q *entityQuery) get(st *state.State) (any, error) {
	var (
		entity any
		err    error
	)
	switch q.kind {
	case "account":
		var acc ledger.Account
		acc, err = st.GetAccount(q.addr, state.FailOnMissing)
		entity = &acc
	case "token":
		var token ledger.Token
		token, err = st.GetToken(q.addr, state.FailOnMissing)
		entity = &token
	case "relationship":
		var rel ledger.TokenRelationship
		rel, err = st.GetTokenRelationship(q.addr, q.target, state.FailOnMissing)
		entity = &rel
	case "unique-token":
		var nft ledger.UniqueToken
		nft, err = st.GetUniqueToken(q.addr, q.serial, state.FailOnMissing)
		entity = &nft
	default:
		return nil, errors.Errorf("unknown kind %q", q.kind)
	}
	if err != nil {
		return nil, err
	}
	// uint256 fields marshal through pointer methods
	return entity, nil
}

func printEntity(w io.Writer, entity any, dump bool) error {
	if dump {
		_, err := io.WriteString(w, spew.Sdump(entity))
		return err
	}
	data, err := json.MarshalIndent(entity, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
