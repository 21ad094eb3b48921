package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flipBit(s string) string {
	b := []byte(s)
	b[len(b)-1] ^= 0x01
	return string(b)
}

func TestVerifySignature(t *testing.T) {
	const secret = "rzp_test_secret"
	orderID, paymentID := "order_9A33XWu170gUtm", "pay_29QQoUBi66xm2f"
	sig := Sign(secret, orderID, paymentID)

	assert.Len(t, sig, 64)
	assert.True(t, VerifySignature(secret, orderID, paymentID, sig))
	assert.Equal(t, sig, Sign(secret, orderID, paymentID))

	assert.False(t, VerifySignature(secret, flipBit(orderID), paymentID, sig))
	assert.False(t, VerifySignature(secret, orderID, flipBit(paymentID), sig))
	assert.False(t, VerifySignature(secret, orderID, paymentID, flipBit(sig)))
	assert.False(t, VerifySignature("other", orderID, paymentID, sig))
	assert.False(t, VerifySignature(secret, orderID, paymentID, ""))
	assert.False(t, VerifySignature("", orderID, paymentID, Sign("", orderID, paymentID)))
}

func TestSignSeparatorIsSignificant(t *testing.T) {
	assert.NotEqual(t, Sign("k", "ab", "c"), Sign("k", "a", "bc"))
}

func TestSignKnownVector(t *testing.T) {
	got := Sign("rzp_test_secret", "order_9A33XWu170gUtm", "pay_29QQoUBi66xm2f")
	assert.Equal(t, "3260a4f62b64907cfd92766c15dea1480ad753cedc90248b8346f48f243993c1", got)
}
