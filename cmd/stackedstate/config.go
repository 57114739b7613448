// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stackedstate/ledger"
	"github.com/vechain/stackedstate/thor"
)

// Config is the content of the YAML config file.
// Flags set on the command line take precedence.
type Config struct {
	DataDir     string `yaml:"data-dir"`
	Cache       int    `yaml:"cache"`
	Block       *int64 `yaml:"block"`
	MetricsAddr string `yaml:"metrics-addr"`

	Accounts      []AccountFixture      `yaml:"accounts"`
	Tokens        []TokenFixture        `yaml:"tokens"`
	Relationships []RelationshipFixture `yaml:"relationships"`
	UniqueTokens  []UniqueTokenFixture  `yaml:"unique-tokens"`
}

// AccountFixture describes an account to seed.
type AccountFixture struct {
	Address thor.Address `yaml:"address"`
	Balance string       `yaml:"balance"`
	Nonce   uint64       `yaml:"nonce"`
	Expiry  uint64       `yaml:"expiry"`
	Proxy   thor.Address `yaml:"proxy"`
}

// TokenFixture describes a token to seed.
type TokenFixture struct {
	Address     thor.Address `yaml:"address"`
	Type        string       `yaml:"type"`
	Treasury    thor.Address `yaml:"treasury"`
	Name        string       `yaml:"name"`
	Symbol      string       `yaml:"symbol"`
	Decimals    uint8        `yaml:"decimals"`
	TotalSupply string       `yaml:"total-supply"`
	MaxSupply   string       `yaml:"max-supply"`
	Paused      bool         `yaml:"paused"`
}

// RelationshipFixture describes a token relationship to seed.
type RelationshipFixture struct {
	Account    thor.Address `yaml:"account"`
	Token      thor.Address `yaml:"token"`
	Balance    string       `yaml:"balance"`
	Frozen     bool         `yaml:"frozen"`
	KycGranted bool         `yaml:"kyc-granted"`
}

// UniqueTokenFixture describes a unique token to seed.
type UniqueTokenFixture struct {
	Token    thor.Address `yaml:"token"`
	Serial   uint64       `yaml:"serial"`
	Owner    thor.Address `yaml:"owner"`
	Metadata string       `yaml:"metadata"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %v", path)
	}
	return &cfg, nil
}

func parseAmount(s string) (uint256.Int, error) {
	if s == "" {
		return uint256.Int{}, nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return uint256.Int{}, errors.Wrapf(err, "invalid amount %q", s)
	}
	return *v, nil
}

func parseTokenType(s string) (ledger.TokenType, error) {
	switch s {
	case "", "fungible", ledger.FungibleCommon.String():
		return ledger.FungibleCommon, nil
	case "non-fungible", ledger.NonFungibleUnique.String():
		return ledger.NonFungibleUnique, nil
	}
	return 0, errors.Errorf("invalid token type %q", s)
}

// Entities converts the fixtures into ledger entities.
func (c *Config) Entities() ([]any, error) {
	var entities []any
	for _, a := range c.Accounts {
		balance, err := parseAmount(a.Balance)
		if err != nil {
			return nil, errors.WithMessagef(err, "account %v", a.Address)
		}
		entities = append(entities, ledger.Account{
			Address: a.Address,
			Balance: balance,
			Nonce:   a.Nonce,
			Expiry:  a.Expiry,
			Proxy:   a.Proxy,
		})
	}
	for _, t := range c.Tokens {
		typ, err := parseTokenType(t.Type)
		if err != nil {
			return nil, errors.WithMessagef(err, "token %v", t.Address)
		}
		total, err := parseAmount(t.TotalSupply)
		if err != nil {
			return nil, errors.WithMessagef(err, "token %v", t.Address)
		}
		maxSupply, err := parseAmount(t.MaxSupply)
		if err != nil {
			return nil, errors.WithMessagef(err, "token %v", t.Address)
		}
		entities = append(entities, ledger.Token{
			Address:     t.Address,
			Type:        typ,
			Treasury:    t.Treasury,
			Name:        t.Name,
			Symbol:      t.Symbol,
			Decimals:    t.Decimals,
			TotalSupply: total,
			MaxSupply:   maxSupply,
			Paused:      t.Paused,
		})
	}
	for _, r := range c.Relationships {
		balance, err := parseAmount(r.Balance)
		if err != nil {
			return nil, errors.WithMessagef(err, "relationship %v/%v", r.Account, r.Token)
		}
		entities = append(entities, ledger.TokenRelationship{
			Account:    r.Account,
			Token:      r.Token,
			Balance:    balance,
			Frozen:     r.Frozen,
			KycGranted: r.KycGranted,
		})
	}
	for _, u := range c.UniqueTokens {
		entities = append(entities, ledger.UniqueToken{
			Token:    u.Token,
			Serial:   u.Serial,
			Owner:    u.Owner,
			Metadata: u.Metadata,
		})
	}
	return entities, nil
}
