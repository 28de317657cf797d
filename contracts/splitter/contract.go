package splitter

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/splitter-contract/common"
	"github.com/nspcc-dev/splitter-contract/contracts/splitter/splitterconst"
)

// Config holds the complete payout configuration. It is stored as a single
// serialized value and only ever replaced wholesale, so no method can observe
// a half-updated recipient list.
type Config struct {
	// Recipients of the payouts, paired positionally with Weights.
	Recipients []interop.Hash160
	// Weights of the corresponding recipients, non-negative.
	Weights []int
	// TotalWeight is the sum of Weights, cached at installation time.
	TotalWeight int
	// Expiration is a millisecond timestamp before which the configuration
	// cannot be replaced.
	Expiration int
}

const configKey = 'c'

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner      interop.Hash160
		recipients []interop.Hash160
		weights    []int
		durationMs int
	})

	if len(args.owner) != interop.Hash160Len {
		panic("invalid owner")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, common.OwnerKey, args.owner)
	install(ctx, args.recipients, args.weights, args.durationMs)

	runtime.Log("splitter contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only owner can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("splitter contract updated")
}

// Replace installs a new payout configuration in place of the current one.
// It can be invoked only by the contract owner and only once the current
// configuration has expired. Preconditions are checked in a fixed order:
// timelock, owner witness, list lengths. The new expiration is set to the
// current block time plus durationMs.
//
// It produces Reconfigure notification.
func Replace(recipients []interop.Hash160, weights []int, durationMs int) {
	ctx := storage.GetContext()
	common.LockGuard(ctx)

	cfg := currentConfig(ctx)
	if runtime.GetTime() < cfg.Expiration {
		panic(splitterconst.ErrTimelockActive)
	}

	common.CheckOwnerWitness(common.Owner(ctx))

	newCfg := install(ctx, recipients, weights, durationMs)
	runtime.Notify("Reconfigure", newCfg.TotalWeight, newCfg.Expiration)

	common.UnlockGuard(ctx)
}

// Distribute splits the whole current balance of the given asset between the
// configured recipients proportionally to their weights and transfers the
// shares out. Asset is a NEP-17 contract script hash; empty or zero value
// selects native GAS. Each share is floor(weight * balance / totalWeight),
// zero shares produce no transfer. A failed recipient transfer faults the
// whole call, leaving every balance as it was.
//
// Distribute is deliberately open to any caller, so no single party can
// block the payout by refusing to trigger it. Re-entering the contract
// during distribution faults the call instead.
//
// It produces Distribute notification carrying the asset and the balance
// read before the split. The floor-division leftover, always smaller than
// the total weight, stays on the contract account until the next call.
func Distribute(asset interop.Hash160) {
	ctx := storage.GetContext()
	common.LockGuard(ctx)

	cfg := currentConfig(ctx)
	token := resolveAsset(asset)
	self := runtime.GetExecutingScriptHash()

	balance := contract.Call(token, "balanceOf", contract.ReadOnly, self).(int)

	for i := 0; i < len(cfg.Recipients); i++ {
		share := cfg.Weights[i] * balance / cfg.TotalWeight
		if share == 0 {
			continue
		}

		transferred := contract.Call(token, "transfer",
			contract.All, self, cfg.Recipients[i], share, nil).(bool)
		if !transferred {
			panic(splitterconst.ErrTransferFailed)
		}
	}

	runtime.Notify("Distribute", token, balance)

	common.UnlockGuard(ctx)
}

// OnNEP17Payment is a callback for NEP-17 compatible contracts. Inbound
// transfers of GAS and any NEP-17 token are accepted unconditionally, no
// logic is attached.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
}

// ChangeOwner transfers contract ownership to another account. It can be
// invoked only by the current owner.
func ChangeOwner(newOwner interop.Hash160) {
	if len(newOwner) != interop.Hash160Len {
		panic("invalid owner")
	}

	ctx := storage.GetContext()
	common.CheckOwnerWitness(common.Owner(ctx))

	storage.Put(ctx, common.OwnerKey, newOwner)
	runtime.Log("splitter contract owner changed")
}

// RecipientAt returns the recipient script hash stored at the given index of
// the current configuration.
func RecipientAt(i int) interop.Hash160 {
	cfg := currentConfig(storage.GetReadOnlyContext())
	if i < 0 || i >= len(cfg.Recipients) {
		panic("recipient index out of range")
	}
	return cfg.Recipients[i]
}

// WeightAt returns the weight stored at the given index of the current
// configuration.
func WeightAt(i int) int {
	cfg := currentConfig(storage.GetReadOnlyContext())
	if i < 0 || i >= len(cfg.Weights) {
		panic("weight index out of range")
	}
	return cfg.Weights[i]
}

// RecipientCount returns the number of configured recipients.
func RecipientCount() int {
	return len(currentConfig(storage.GetReadOnlyContext()).Recipients)
}

// TotalWeight returns the sum of all configured weights.
func TotalWeight() int {
	return currentConfig(storage.GetReadOnlyContext()).TotalWeight
}

// Expiration returns the millisecond timestamp before which the current
// configuration cannot be replaced.
func Expiration() int {
	return currentConfig(storage.GetReadOnlyContext()).Expiration
}

// Owner returns the script hash of the contract owner.
func Owner() interop.Hash160 {
	return common.Owner(storage.GetReadOnlyContext())
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// install validates the given configuration and writes it to storage as one
// value, replacing the previous one. Individual weights are allowed to be
// zero and recipients are not required to be unique. An all-zero weight list
// is not rejected either; distribution over such configuration faults on
// division. Weight summation cannot overflow silently, the VM faults on
// integers beyond its width.
func install(ctx storage.Context, recipients []interop.Hash160, weights []int, durationMs int) Config {
	if len(recipients) != len(weights) {
		panic(splitterconst.ErrLengthMismatch)
	}
	if len(recipients) == 0 {
		panic(splitterconst.ErrNoRecipients)
	}
	if len(recipients) > splitterconst.MaxRecipients {
		panic(splitterconst.ErrTooManyRecipients)
	}
	if durationMs < 0 {
		panic("negative duration")
	}

	total := 0
	for i := 0; i < len(recipients); i++ {
		if len(recipients[i]) != interop.Hash160Len {
			panic("invalid recipient")
		}
		if weights[i] < 0 {
			panic("negative weight")
		}
		total += weights[i]
	}

	cfg := Config{
		Recipients:  recipients,
		Weights:     weights,
		TotalWeight: total,
		Expiration:  runtime.GetTime() + durationMs,
	}
	common.SetSerialized(ctx, configKey, cfg)

	return cfg
}

func currentConfig(ctx storage.Context) Config {
	return common.GetSerialized(ctx, configKey).(Config)
}

// resolveAsset maps the native currency sentinel to the GAS contract hash
// and checks the asset id shape.
func resolveAsset(asset interop.Hash160) interop.Hash160 {
	if len(asset) == 0 || isZero(asset) {
		return interop.Hash160(gas.Hash)
	}
	if len(asset) != interop.Hash160Len {
		panic("invalid asset")
	}
	return asset
}

func isZero(h interop.Hash160) bool {
	if len(h) != interop.Hash160Len {
		return false
	}
	for i := 0; i < len(h); i++ {
		if h[i] != 0 {
			return false
		}
	}
	return true
}
