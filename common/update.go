package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// OwnerKey is a storage key under which the contract owner script hash is
// stored.
const OwnerKey = "contractOwner"

// Owner returns the owner script hash from contract storage.
func Owner(ctx storage.Context) []byte {
	return storage.Get(ctx, OwnerKey).([]byte)
}

// HasUpdateAccess returns true if contract can be updated.
func HasUpdateAccess() bool {
	owner := storage.Get(storage.GetReadOnlyContext(), OwnerKey)
	if owner == nil {
		return false
	}

	return runtime.CheckWitness(owner.([]byte))
}
