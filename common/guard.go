package common

import "github.com/nspcc-dev/neo-go/pkg/interop/storage"

// ErrReentrantCall appears when a guarded method is entered again
// before its first invocation has finished.
var ErrReentrantCall = "reentrant call"

// guardKey marks an invocation of a guarded method in progress. The key is
// shared, so all guarded methods of a contract exclude each other.
var guardKey = []byte{'g'}

// LockGuard takes the execution lock of the contract. A method that calls
// out to other contracts mid-execution must take the lock first: should any
// callee try to enter a guarded method again, that call panics with
// ErrReentrantCall, the transaction faults and every transfer and storage
// write of it is rolled back.
func LockGuard(ctx storage.Context) {
	if storage.Get(ctx, guardKey) != nil {
		panic(ErrReentrantCall)
	}
	storage.Put(ctx, guardKey, []byte{1})
}

// UnlockGuard releases the execution lock taken by LockGuard. It must be
// called on the successful exit path; the faulted path needs no release
// since the lock marker is rolled back with the rest of the transaction.
func UnlockGuard(ctx storage.Context) {
	storage.Delete(ctx, guardKey)
}
