package nep17token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Minimal NEP-17 fungible token used to exercise token distribution in
// tests. Mint is left open on purpose, payment callbacks on recipient
// contracts are not invoked.

const (
	symbol    = "TST"
	decimals  = 8
	accPrefix = 'a'
	supplyKey = 's'
)

// Symbol is a NEP-17 standard method that returns the token symbol.
func Symbol() string {
	return symbol
}

// Decimals is a NEP-17 standard method that returns the token precision.
func Decimals() int {
	return decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of minted
// tokens.
func TotalSupply() int {
	return getSupply(storage.GetReadOnlyContext())
}

// BalanceOf is a NEP-17 standard method that returns the token balance of
// the specified account.
func BalanceOf(account interop.Hash160) int {
	return getBalance(storage.GetReadOnlyContext(), account)
}

// Transfer is a NEP-17 standard method that moves tokens between accounts.
// It can be invoked by the account owner or by a contract spending its own
// funds.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	if amount < 0 {
		panic("negative amount")
	}
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		return false
	}
	if !isUsableAddress(from) {
		return false
	}

	ctx := storage.GetContext()

	balance := getBalance(ctx, from)
	if balance < amount {
		return false
	}

	setBalance(ctx, from, balance-amount)
	setBalance(ctx, to, getBalance(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)
	return true
}

// Mint creates tokens on the given account out of thin air.
func Mint(to interop.Hash160, amount int) {
	if amount <= 0 {
		panic("non-positive amount")
	}
	if len(to) != interop.Hash160Len {
		panic("invalid account")
	}

	ctx := storage.GetContext()
	setBalance(ctx, to, getBalance(ctx, to)+amount)
	storage.Put(ctx, supplyKey, getSupply(ctx)+amount)

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
}

// isUsableAddress checks if the sender is either a correct NEO address or SC address.
func isUsableAddress(addr interop.Hash160) bool {
	if runtime.CheckWitness(addr) {
		return true
	}

	callingScriptHash := runtime.GetCallingScriptHash()
	return callingScriptHash.Equals(addr)
}

func getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, supplyKey)
	if supply != nil {
		return supply.(int)
	}
	return 0
}

func getBalance(ctx storage.Context, account interop.Hash160) int {
	balance := storage.Get(ctx, append([]byte{accPrefix}, account...))
	if balance != nil {
		return balance.(int)
	}
	return 0
}

func setBalance(ctx storage.Context, account interop.Hash160, amount int) {
	key := append([]byte{accPrefix}, account...)
	if amount == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, amount)
	}
}
