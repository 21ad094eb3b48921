package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "+919876543210", want: "+919876543210"},
		{in: " +91 98765 43210 ", want: "+919876543210"},
		{in: "9876543210", want: "+919876543210"},
		{in: "", wantErr: true},
		{in: "12345", wantErr: true},
		{in: "+14155552671", wantErr: true},
		{in: "not a phone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if tt.wantErr {
				assert.True(t, httperr.Is(err, "invalid_phone"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegisterBindingTags(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())

	type req struct {
		Phone string `binding:"required,in_phone"`
		Code  string `binding:"required,otp_code"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(req{Phone: "+919876543210", Code: "123456"}))
	assert.Error(t, binding.Validator.ValidateStruct(req{Phone: "+1415555", Code: "123456"}))
	assert.Error(t, binding.Validator.ValidateStruct(req{Phone: "+919876543210", Code: "12ab"}))
}
