package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/intima/internal/ledger"
)

func TestLookupGift(t *testing.T) {
	g, err := ledger.LookupGift("crown")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), g.Price)

	_, err = ledger.LookupGift("unicorn")
	assert.ErrorIs(t, err, ledger.ErrUnknownGift)
}

func TestPackages_ReturnsCopy(t *testing.T) {
	ps := ledger.Packages()
	require.Len(t, ps, 3)

	ps[0].Credits = 1

	p, err := ledger.LookupPackage("p1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), p.Credits)
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, ledger.PaymentPayPal.Valid())
	assert.True(t, ledger.PaymentBank.Valid())
	assert.True(t, ledger.PaymentCrypto.Valid())
	assert.False(t, ledger.PaymentMethod("cash").Valid())
}
