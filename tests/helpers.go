package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func gasHash(t *testing.T, e *neotest.Executor) util.Uint160 {
	h, err := e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	return h
}

func gasInvoker(t *testing.T, e *neotest.Executor) *neotest.ContractInvoker {
	return e.CommitteeInvoker(gasHash(t, e))
}

func gasBalance(t *testing.T, e *neotest.Executor, acc util.Uint160) int64 {
	res, err := gasInvoker(t, e).TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)

	return res.Top().BigInt().Int64()
}

// depositGAS moves GAS from the validator account to the given contract.
func depositGAS(t *testing.T, e *neotest.Executor, to util.Uint160, amount int64) {
	vc := gasInvoker(t, e).WithSigners(e.Validator)
	vc.Invoke(t, true, "transfer", e.Validator.ScriptHash(), to, amount, nil)
}
