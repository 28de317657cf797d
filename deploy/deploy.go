// Package deploy provides Splitter contract deployment routines.
package deploy

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/splitter-contract/contracts/splitter/splitterconst"
	rpcsplitter "github.com/nspcc-dev/splitter-contract/rpc/splitter"
	"go.uber.org/zap"
)

// Prm groups deployment parameters of the Splitter contract.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance the contract is deployed to.
	Blockchain actor.RPCActor

	// Local account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	NEF      nef.File
	Manifest manifest.Manifest

	// Initial contract configuration.
	Owner      util.Uint160
	Recipients []util.Uint160
	Weights    []int64
	Duration   time.Duration
}

// Deploy deploys the Splitter contract with the initial configuration from
// the given Prm and waits until the deployment transaction is persisted.
// It returns the address of the deployed contract.
func Deploy(prm Prm) (util.Uint160, error) {
	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	// The contract rejects a malformed configuration anyway, but checking
	// here fails fast without spending GAS on a faulting transaction.
	switch n := len(prm.Recipients); {
	case n != len(prm.Weights):
		return util.Uint160{}, errors.New("recipients and weights length mismatch")
	case n == 0:
		return util.Uint160{}, errors.New("no recipients")
	case n > splitterconst.MaxRecipients:
		return util.Uint160{}, fmt.Errorf("too many recipients (max %d)", splitterconst.MaxRecipients)
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	hash := state.CreateContractHash(act.Sender(), prm.NEF.Checksum, prm.Manifest.Name)
	l := prm.Logger.With(zap.Stringer("contract", hash))

	recipients := make([]any, len(prm.Recipients))
	for i := range prm.Recipients {
		recipients[i] = prm.Recipients[i]
	}
	weights := make([]any, len(prm.Weights))
	for i := range prm.Weights {
		weights[i] = prm.Weights[i]
	}
	data := []any{prm.Owner, recipients, weights, prm.Duration.Milliseconds()}

	l.Info("sending deployment transaction",
		zap.Int("recipients", len(prm.Recipients)),
		zap.Duration("timelock", prm.Duration))

	txHash, vub, err := management.New(act).Deploy(&prm.NEF, &prm.Manifest, data)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send deployment transaction: %w", err)
	}

	aer, err := act.Wait(txHash, vub, nil)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deployment transaction %s: %w", txHash.StringLE(), err)
	}
	if aer.VMState != vmstate.Halt {
		return util.Uint160{}, fmt.Errorf("deployment transaction %s faulted: %s", txHash.StringLE(), aer.FaultException)
	}

	l.Info("contract deployed", zap.Stringer("tx", txHash))

	return hash, nil
}

// Update replaces code and manifest of an already deployed Splitter contract
// and waits until the update transaction is persisted. The local account must
// witness the contract owner.
func Update(prm Prm, contractHash util.Uint160) error {
	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from local account: %w", err)
	}

	nefBytes, err := prm.NEF.Bytes()
	if err != nil {
		return fmt.Errorf("encode NEF: %w", err)
	}
	rawManifest, err := json.Marshal(prm.Manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	l := prm.Logger.With(zap.Stringer("contract", contractHash))
	l.Info("sending update transaction")

	txHash, vub, err := rpcsplitter.New(act, contractHash).Update(nefBytes, rawManifest, nil)
	if err != nil {
		return fmt.Errorf("send update transaction: %w", err)
	}

	aer, err := act.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for update transaction %s: %w", txHash.StringLE(), err)
	}
	if aer.VMState != vmstate.Halt {
		return fmt.Errorf("update transaction %s faulted: %s", txHash.StringLE(), aer.FaultException)
	}

	l.Info("contract updated", zap.Stringer("tx", txHash))

	return nil
}
