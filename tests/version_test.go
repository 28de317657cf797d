package tests

import (
	"testing"

	"github.com/nspcc-dev/splitter-contract/common"
)

func TestVersion(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 1)
	h := deploySplitterContract(t, e, hashes, []int64{1}, 0)
	c := e.CommitteeInvoker(h)

	c.Invoke(t, common.Version, "version")
}

func TestUpdateAccess(t *testing.T) {
	e := newExecutor(t)

	_, hashes := newRecipients(t, e, 1)
	h := deploySplitterContract(t, e, hashes, []int64{1}, 0)
	c := e.CommitteeInvoker(h)

	cAcc := c.WithSigners(c.NewAccount(t))
	cAcc.InvokeFail(t, "only owner can update contract", "update", []byte{}, []byte{}, nil)
}
