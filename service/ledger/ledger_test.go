package ledger

import (
	"context"
	"lending/core"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTransfers struct {
	transfers map[string]*core.Transfer
}

func (m *memTransfers) Create(_ context.Context, t *core.Transfer) error {
	if _, ok := m.transfers[t.TraceID]; ok {
		return core.ErrTransferClaimed
	}

	c := *t
	m.transfers[t.TraceID] = &c
	return nil
}

func (m *memTransfers) FindByTrace(_ context.Context, trace string) (*core.Transfer, error) {
	return m.transfers[trace], nil
}

func (m *memTransfers) Transition(_ context.Context, trace string, from, to core.TransferStatus) error {
	t, ok := m.transfers[trace]
	if !ok || t.Status != from {
		return core.ErrTransferStatusChanged
	}

	t.Status = to
	return nil
}

func (m *memTransfers) Delete(_ context.Context, trace string, status core.TransferStatus) error {
	t, ok := m.transfers[trace]
	if !ok || t.Status != status {
		return core.ErrTransferStatusChanged
	}

	delete(m.transfers, trace)
	return nil
}

func (m *memTransfers) ListPending(context.Context, int) ([]*core.Transfer, error) {
	var out []*core.Transfer
	for _, t := range m.transfers {
		if t.Status == core.TransferStatusPending {
			out = append(out, t)
		}
	}

	return out, nil
}

func (m *memTransfers) MarkSettled(_ context.Context, trace, snapshot string) error {
	if t, ok := m.transfers[trace]; ok {
		t.Status = core.TransferStatusSettled
		t.SnapshotID = snapshot
	}

	return nil
}

type paidWallet struct {
	paid map[string]bool
	sent []string
}

func (w *paidWallet) HandleTransfer(_ context.Context, t *core.Transfer) (string, error) {
	w.sent = append(w.sent, t.TraceID)
	return "snapshot-" + t.TraceID, nil
}

func (w *paidWallet) VerifyPayment(_ context.Context, t *core.Transfer) (bool, error) {
	return w.paid[t.TraceID], nil
}

func (w *paidWallet) PaySchemaURL(decimal.Decimal, string, string, string, string) (string, error) {
	return "", nil
}

func newLedger() (core.AssetLedger, *memTransfers, *paidWallet) {
	transfers := &memTransfers{transfers: map[string]*core.Transfer{}}
	wallets := &paidWallet{paid: map[string]bool{}}
	return New(transfers, wallets), transfers, wallets
}

func TestIncoming(t *testing.T) {
	ctx := context.Background()
	l, transfers, wallets := newLedger()

	in := &core.Transfer{TraceID: "t1", Kind: core.TransferKindIn, Amount: 10}
	assert.Equal(t, core.ErrTransferNotPaid, l.Transfer(ctx, in))

	wallets.paid["t1"] = true
	require.Nil(t, l.Transfer(ctx, in))
	assert.Equal(t, core.TransferStatusSettled, transfers.transfers["t1"].Status)

	// a payment backs one movement only
	assert.Equal(t, core.ErrTransferClaimed, l.Transfer(ctx, in))

	require.Nil(t, l.Revert(ctx, in))
	assert.Empty(t, transfers.transfers)
	require.Nil(t, l.Transfer(ctx, in))
}

func TestOutgoing(t *testing.T) {
	ctx := context.Background()
	l, transfers, _ := newLedger()

	out := &core.Transfer{TraceID: "t2", Kind: core.TransferKindOut, Amount: 10}
	require.Nil(t, l.Transfer(ctx, out))
	assert.Equal(t, core.TransferStatusReserved, transfers.transfers["t2"].Status)

	mint := &core.Transfer{TraceID: "t3", Amount: 5}
	require.Nil(t, l.Mint(ctx, mint))
	assert.Equal(t, core.TransferKindMint, transfers.transfers["t3"].Kind)

	// reserved transfers are invisible to the cashier
	pending, _ := transfers.ListPending(ctx, 10)
	assert.Empty(t, pending)

	require.Nil(t, l.Revert(ctx, mint))
	assert.Nil(t, transfers.transfers["t3"])

	require.Nil(t, l.Commit(ctx, out))
	assert.Equal(t, core.TransferStatusPending, transfers.transfers["t2"].Status)
	require.Nil(t, l.Commit(ctx, out))

	require.Nil(t, transfers.MarkSettled(ctx, "t2", "snapshot"))
	assert.Equal(t, core.ErrTransferSettled, l.Revert(ctx, out))
	assert.NotNil(t, transfers.transfers["t2"])

	// unknown transfers are already reverted
	assert.Nil(t, l.Revert(ctx, &core.Transfer{TraceID: "none"}))
	assert.Equal(t, core.ErrTransferStatusChanged, l.Commit(ctx, &core.Transfer{TraceID: "none"}))
}

func TestRevertAfterSend(t *testing.T) {
	ctx := context.Background()
	l, transfers, wallets := newLedger()

	out := &core.Transfer{TraceID: "w1", Kind: core.TransferKindOut, Amount: 10}
	require.Nil(t, l.Transfer(ctx, out))
	require.Nil(t, l.Commit(ctx, out))

	// sent by the cashier but not marked settled yet
	pending, _ := transfers.ListPending(ctx, 10)
	require.Len(t, pending, 1)
	_, err := wallets.HandleTransfer(ctx, pending[0])
	require.Nil(t, err)

	assert.Equal(t, core.ErrTransferSettled, l.Revert(ctx, out))
	assert.Equal(t, []string{"w1"}, wallets.sent)
	assert.Equal(t, core.TransferStatusPending, transfers.transfers["w1"].Status)
}

func TestIncomingCommit(t *testing.T) {
	ctx := context.Background()
	l, transfers, wallets := newLedger()

	wallets.paid["t4"] = true
	in := &core.Transfer{TraceID: "t4", Kind: core.TransferKindIn, Amount: 10}
	require.Nil(t, l.Transfer(ctx, in))
	require.Nil(t, l.Commit(ctx, in))
	assert.Equal(t, core.TransferStatusSettled, transfers.transfers["t4"].Status)
}
