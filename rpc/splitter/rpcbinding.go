// Package splitter contains RPC wrappers for Splitter contract.
package splitter

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// DistributeEvent represents "Distribute" event emitted by the contract.
type DistributeEvent struct {
	Asset  util.Uint160
	Amount *big.Int
}

// ReconfigureEvent represents "Reconfigure" event emitted by the contract.
type ReconfigureEvent struct {
	TotalWeight *big.Int
	Expiration  *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Expiration invokes `expiration` method of contract.
func (c *ContractReader) Expiration() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "expiration"))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// RecipientAt invokes `recipientAt` method of contract.
func (c *ContractReader) RecipientAt(i *big.Int) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "recipientAt", i))
}

// RecipientCount invokes `recipientCount` method of contract.
func (c *ContractReader) RecipientCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "recipientCount"))
}

// TotalWeight invokes `totalWeight` method of contract.
func (c *ContractReader) TotalWeight() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalWeight"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// WeightAt invokes `weightAt` method of contract.
func (c *ContractReader) WeightAt(i *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "weightAt", i))
}

// ChangeOwner creates a transaction invoking `changeOwner` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ChangeOwner(newOwner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "changeOwner", newOwner)
}

// ChangeOwnerTransaction creates a transaction invoking `changeOwner` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ChangeOwnerTransaction(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "changeOwner", newOwner)
}

// ChangeOwnerUnsigned creates a transaction invoking `changeOwner` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ChangeOwnerUnsigned(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "changeOwner", nil, newOwner)
}

// Distribute creates a transaction invoking `distribute` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Distribute(asset util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "distribute", asset)
}

// DistributeTransaction creates a transaction invoking `distribute` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DistributeTransaction(asset util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "distribute", asset)
}

// DistributeUnsigned creates a transaction invoking `distribute` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DistributeUnsigned(asset util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "distribute", nil, asset)
}

// Replace creates a transaction invoking `replace` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Replace(recipients []util.Uint160, weights []*big.Int, durationMs *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "replace", recipients, weights, durationMs)
}

// ReplaceTransaction creates a transaction invoking `replace` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ReplaceTransaction(recipients []util.Uint160, weights []*big.Int, durationMs *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "replace", recipients, weights, durationMs)
}

// ReplaceUnsigned creates a transaction invoking `replace` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ReplaceUnsigned(recipients []util.Uint160, weights []*big.Int, durationMs *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "replace", nil, recipients, weights, durationMs)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// DistributeEventsFromApplicationLog retrieves a set of all emitted events
// with "Distribute" name from the provided [result.ApplicationLog].
func DistributeEventsFromApplicationLog(log *result.ApplicationLog) ([]*DistributeEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DistributeEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Distribute" {
				continue
			}
			event := new(DistributeEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DistributeEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DistributeEvent or
// returns an error if it's not possible to do to so.
func (e *DistributeEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Asset, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// ReconfigureEventsFromApplicationLog retrieves a set of all emitted events
// with "Reconfigure" name from the provided [result.ApplicationLog].
func ReconfigureEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReconfigureEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ReconfigureEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Reconfigure" {
				continue
			}
			event := new(ReconfigureEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ReconfigureEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ReconfigureEvent or
// returns an error if it's not possible to do to so.
func (e *ReconfigureEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.TotalWeight, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalWeight: %w", err)
	}

	index++
	e.Expiration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Expiration: %w", err)
	}

	return nil
}
