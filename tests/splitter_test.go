package tests

import (
	"path"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/splitter-contract/common"
	"github.com/nspcc-dev/splitter-contract/contracts/splitter/splitterconst"
	"github.com/stretchr/testify/require"
)

const (
	splitterPath = "../contracts/splitter"
	reenterPath  = "../internal/testcontracts/reenter"

	msPerYear = int64(365 * 24 * time.Hour / time.Millisecond)
)

func splitterArgs(owner util.Uint160, recipients []util.Uint160, weights []int64, durationMs int64) []interface{} {
	rs := make([]interface{}, len(recipients))
	for i := range recipients {
		rs[i] = recipients[i]
	}
	ws := make([]interface{}, len(weights))
	for i := range weights {
		ws[i] = weights[i]
	}
	return []interface{}{owner, rs, ws, durationMs}
}

func deploySplitterContract(t *testing.T, e *neotest.Executor, recipients []util.Uint160, weights []int64, durationMs int64) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, splitterPath, path.Join(splitterPath, "config.yml"))
	e.DeployContract(t, c, splitterArgs(e.CommitteeHash, recipients, weights, durationMs))
	return c.Hash
}

func newRecipients(t *testing.T, e *neotest.Executor, n int) ([]neotest.Signer, []util.Uint160) {
	accs := make([]neotest.Signer, n)
	hashes := make([]util.Uint160, n)
	for i := range accs {
		accs[i] = e.NewAccount(t)
		hashes[i] = accs[i].ScriptHash()
	}
	return accs, hashes
}

func TestDeployValidation(t *testing.T) {
	e := newExecutor(t)
	c := neotest.CompileFile(t, e.CommitteeHash, splitterPath, path.Join(splitterPath, "config.yml"))

	_, hashes := newRecipients(t, e, 2)

	e.DeployContractCheckFAULT(t, c, splitterArgs(e.CommitteeHash, hashes, []int64{1}, 0),
		splitterconst.ErrLengthMismatch)
	e.DeployContractCheckFAULT(t, c, splitterArgs(e.CommitteeHash, nil, nil, 0),
		splitterconst.ErrNoRecipients)

	many := make([]util.Uint160, splitterconst.MaxRecipients+1)
	weights := make([]int64, splitterconst.MaxRecipients+1)
	for i := range many {
		many[i] = util.Uint160{byte(i + 1)}
		weights[i] = 1
	}
	e.DeployContractCheckFAULT(t, c, splitterArgs(e.CommitteeHash, many, weights, 0),
		splitterconst.ErrTooManyRecipients)

	// Length mismatch wins over the size limit.
	e.DeployContractCheckFAULT(t, c, splitterArgs(e.CommitteeHash, many, weights[:1], 0),
		splitterconst.ErrLengthMismatch)

	e.DeployContractCheckFAULT(t, c, splitterArgs(e.CommitteeHash, hashes, []int64{1, -1}, 0),
		"negative weight")

	e.DeployContract(t, c, splitterArgs(e.CommitteeHash, hashes, []int64{1, 1}, 0))
}

func TestAccessors(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 3)
	h := deploySplitterContract(t, e, hashes, []int64{3, 2, 1}, msPerYear)
	c := e.CommitteeInvoker(h)

	c.Invoke(t, stackitem.Make(3), "recipientCount")
	c.Invoke(t, stackitem.Make(6), "totalWeight")
	c.Invoke(t, stackitem.NewByteArray(e.CommitteeHash.BytesBE()), "owner")

	for i := range hashes {
		c.Invoke(t, stackitem.NewByteArray(hashes[i].BytesBE()), "recipientAt", i)
	}
	c.Invoke(t, stackitem.Make(3), "weightAt", 0)
	c.Invoke(t, stackitem.Make(2), "weightAt", 1)
	c.Invoke(t, stackitem.Make(1), "weightAt", 2)

	c.InvokeFail(t, "recipient index out of range", "recipientAt", 3)
	c.InvokeFail(t, "weight index out of range", "weightAt", -1)

	res, err := c.TestInvoke(t, "expiration")
	require.NoError(t, err)
	top := e.TopBlock(t)
	require.Greater(t, res.Top().BigInt().Int64(), int64(top.Timestamp))
}

func TestDistributeGAS(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 3)
	h := deploySplitterContract(t, e, hashes, []int64{3, 2, 1}, msPerYear)
	c := e.CommitteeInvoker(h)

	depositGAS(t, e, h, 100)
	require.EqualValues(t, 100, gasBalance(t, e, h))

	before := make([]int64, len(hashes))
	for i := range hashes {
		before[i] = gasBalance(t, e, hashes[i])
	}

	txH := c.Invoke(t, stackitem.Null{}, "distribute", util.Uint160{})

	require.EqualValues(t, 50, gasBalance(t, e, hashes[0])-before[0])
	require.EqualValues(t, 33, gasBalance(t, e, hashes[1])-before[1])
	require.EqualValues(t, 16, gasBalance(t, e, hashes[2])-before[2])
	require.EqualValues(t, 1, gasBalance(t, e, h))

	// The notification carries the read balance, not the sum of shares.
	gasH := gasHash(t, e)

	aer := e.GetTxExecResult(t, txH)
	var found bool
	for _, ev := range aer.Events {
		if ev.ScriptHash != h || ev.Name != "Distribute" {
			continue
		}
		items := ev.Item.Value().([]stackitem.Item)
		require.Len(t, items, 2)
		asset, err := items[0].TryBytes()
		require.NoError(t, err)
		require.Equal(t, gasH.BytesBE(), asset)
		amount, err := items[1].TryInteger()
		require.NoError(t, err)
		require.EqualValues(t, 100, amount.Int64())
		found = true
	}
	require.True(t, found)

	// Repeated call only operates on the leftover; with balance 1 every
	// share floors to zero and nothing moves.
	for i := range hashes {
		before[i] = gasBalance(t, e, hashes[i])
	}
	c.Invoke(t, stackitem.Null{}, "distribute", util.Uint160{})
	for i := range hashes {
		require.EqualValues(t, 0, gasBalance(t, e, hashes[i])-before[i])
	}
	require.EqualValues(t, 1, gasBalance(t, e, h))
}

func TestDistributeSmallBalance(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 3)
	h := deploySplitterContract(t, e, hashes, []int64{3, 2, 1}, msPerYear)
	c := e.CommitteeInvoker(h)

	depositGAS(t, e, h, 7)

	before := make([]int64, len(hashes))
	for i := range hashes {
		before[i] = gasBalance(t, e, hashes[i])
	}

	c.Invoke(t, stackitem.Null{}, "distribute", util.Uint160{})

	require.EqualValues(t, 3, gasBalance(t, e, hashes[0])-before[0])
	require.EqualValues(t, 2, gasBalance(t, e, hashes[1])-before[1])
	require.EqualValues(t, 1, gasBalance(t, e, hashes[2])-before[2])
	require.EqualValues(t, 1, gasBalance(t, e, h))
}

func TestDistributeEmptyBalance(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 2)
	h := deploySplitterContract(t, e, hashes, []int64{1, 1}, msPerYear)
	c := e.CommitteeInvoker(h)

	before := []int64{gasBalance(t, e, hashes[0]), gasBalance(t, e, hashes[1])}
	c.Invoke(t, stackitem.Null{}, "distribute", util.Uint160{})
	require.EqualValues(t, 0, gasBalance(t, e, hashes[0])-before[0])
	require.EqualValues(t, 0, gasBalance(t, e, hashes[1])-before[1])
	require.EqualValues(t, 0, gasBalance(t, e, h))
}

func TestDistributeDustBound(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 3)
	const totalWeight = 6
	h := deploySplitterContract(t, e, hashes, []int64{3, 2, 1}, msPerYear)
	c := e.CommitteeInvoker(h)

	// Leftover accumulates between calls but never reaches the total
	// weight.
	for _, deposit := range []int64{5, 13, 100, 3, 1} {
		depositGAS(t, e, h, deposit)
		c.Invoke(t, stackitem.Null{}, "distribute", util.Uint160{})
		require.Less(t, gasBalance(t, e, h), int64(totalWeight))
	}
}

func TestDistributeAllZeroWeights(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 2)
	// An all-zero weight list is not rejected at installation time, the
	// fault surfaces on distribution.
	h := deploySplitterContract(t, e, hashes, []int64{0, 0}, msPerYear)
	c := e.CommitteeInvoker(h)

	c.Invoke(t, stackitem.Make(0), "totalWeight")

	_, err := c.TestInvoke(t, "distribute", util.Uint160{})
	require.Error(t, err)
}

func TestReplaceTimelock(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 2)
	h := deploySplitterContract(t, e, hashes, []int64{1, 1}, msPerYear)
	c := e.CommitteeInvoker(h)

	c.Invoke(t, stackitem.Make(2), "totalWeight")

	newCfg := []interface{}{[]interface{}{hashes[0]}, []interface{}{int64(1)}, msPerYear}

	// Any caller is rejected by the timelock first, owner included.
	c.InvokeFail(t, splitterconst.ErrTimelockActive, "replace", newCfg...)

	res, err := c.TestInvoke(t, "expiration")
	require.NoError(t, err)
	expiration := res.Top().BigInt().Uint64()

	b := c.NewUnsignedBlock(t)
	b.Timestamp = expiration
	require.NoError(t, c.Chain.AddBlock(c.SignBlock(b)))

	cNotOwner := c.WithSigners(c.NewAccount(t))
	cNotOwner.InvokeFail(t, common.ErrOwnerWitnessFailed, "replace", newCfg...)

	c.Invoke(t, stackitem.Null{}, "replace", newCfg...)

	c.Invoke(t, stackitem.Make(1), "totalWeight")
	c.Invoke(t, stackitem.Make(1), "recipientCount")
	c.Invoke(t, stackitem.NewByteArray(hashes[0].BytesBE()), "recipientAt", 0)
}

func TestReplaceValidation(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 2)
	// Zero duration expires the timelock right away.
	h := deploySplitterContract(t, e, hashes, []int64{1, 1}, 0)
	c := e.CommitteeInvoker(h)

	c.InvokeFail(t, splitterconst.ErrLengthMismatch, "replace",
		[]interface{}{hashes[0]}, []interface{}{int64(1), int64(2)}, msPerYear)
	c.InvokeFail(t, splitterconst.ErrNoRecipients, "replace",
		[]interface{}{}, []interface{}{}, msPerYear)

	many := make([]interface{}, splitterconst.MaxRecipients+1)
	weights := make([]interface{}, splitterconst.MaxRecipients+1)
	for i := range many {
		many[i] = util.Uint160{byte(i + 1)}
		weights[i] = int64(1)
	}
	c.InvokeFail(t, splitterconst.ErrTooManyRecipients, "replace", many, weights, msPerYear)

	// A failed replace retains the previous configuration untouched.
	c.Invoke(t, stackitem.Make(2), "totalWeight")
	c.Invoke(t, stackitem.Make(2), "recipientCount")

	c.Invoke(t, stackitem.Null{}, "replace",
		[]interface{}{hashes[1]}, []interface{}{int64(5)}, msPerYear)
	c.Invoke(t, stackitem.Make(5), "totalWeight")

	// The fresh timelock is armed again.
	c.InvokeFail(t, splitterconst.ErrTimelockActive, "replace",
		[]interface{}{hashes[0]}, []interface{}{int64(1)}, msPerYear)
}

func TestReplaceNonOwner(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 2)
	h := deploySplitterContract(t, e, hashes, []int64{1, 1}, 0)
	c := e.CommitteeInvoker(h)

	cNotOwner := c.WithSigners(c.NewAccount(t))
	cNotOwner.InvokeFail(t, common.ErrOwnerWitnessFailed, "replace",
		[]interface{}{hashes[0]}, []interface{}{int64(1)}, msPerYear)

	c.Invoke(t, stackitem.Make(2), "totalWeight")
}

func TestChangeOwner(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 1)
	h := deploySplitterContract(t, e, hashes, []int64{1}, 0)
	c := e.CommitteeInvoker(h)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "changeOwner", acc.ScriptHash())

	c.Invoke(t, stackitem.Null{}, "changeOwner", acc.ScriptHash())
	c.Invoke(t, stackitem.NewByteArray(acc.ScriptHash().BytesBE()), "owner")

	// The previous owner lost the replace capability.
	c.InvokeFail(t, common.ErrOwnerWitnessFailed, "replace",
		[]interface{}{hashes[0]}, []interface{}{int64(1)}, msPerYear)
	cAcc.Invoke(t, stackitem.Null{}, "replace",
		[]interface{}{hashes[0]}, []interface{}{int64(3)}, msPerYear)
	cAcc.Invoke(t, stackitem.Make(3), "totalWeight")
}

func deployReenterContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, reenterPath, path.Join(reenterPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

func TestDistributeReentry(t *testing.T) {
	for _, method := range []string{"distribute", "replace"} {
		t.Run(method, func(t *testing.T) {
			e := newExecutor(t)

			attacker := deployReenterContract(t, e)
			victim := e.NewAccount(t)

			h := deploySplitterContract(t, e,
				[]util.Uint160{attacker, victim.ScriptHash()}, []int64{1, 1}, msPerYear)

			reInv := e.CommitteeInvoker(attacker)
			reInv.Invoke(t, stackitem.Null{}, "setTarget", h, method)

			depositGAS(t, e, h, 100)
			victimBefore := gasBalance(t, e, victim.ScriptHash())

			c := e.CommitteeInvoker(h)
			c.InvokeFail(t, common.ErrReentrantCall, "distribute", util.Uint160{})

			// Full rollback: no funds moved anywhere.
			require.EqualValues(t, 100, gasBalance(t, e, h))
			require.EqualValues(t, 0, gasBalance(t, e, attacker))
			require.EqualValues(t, 0, gasBalance(t, e, victim.ScriptHash())-victimBefore)
		})
	}
}
