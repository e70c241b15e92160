package http

import (
	"net/http"
	"testing"

	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr error
	}{
		{name: "integer", in: "600", want: 60000},
		{name: "two decimals", in: "599.99", want: 59999},
		{name: "one decimal", in: "9.9", want: 990},
		{name: "zero", in: "0", want: 0},
		{name: "empty means absent", in: "", want: 0},
		{name: "blank means absent", in: "   ", want: 0},
		{name: "three decimals", in: "9.999", wantErr: e.ErrPricePrecision},
		{name: "negative", in: "-1", wantErr: e.ErrInvalidPrice},
		{name: "garbage", in: "abc", wantErr: e.ErrInvalidPrice},
		{name: "too large", in: "100000000001", wantErr: e.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePriceToCents(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentsToPrice(t *testing.T) {
	assert.InDelta(t, 5.99, centsToPrice(599), 0.0001)
	assert.InDelta(t, 600.0, centsToPrice(60000), 0.0001)
	assert.Zero(t, centsToPrice(0))
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
	}{
		{err: e.ErrProductNotFound, wantCode: http.StatusNotFound},
		{err: e.Wrap("ProductUseCase.GetProduct", e.ErrProductNotFound), wantCode: http.StatusNotFound},
		{err: e.ErrProductExists, wantCode: http.StatusBadRequest},
		{err: e.ErrAddProductFailed, wantCode: http.StatusBadRequest},
		{err: e.ErrQuantityNegative, wantCode: http.StatusBadRequest},
		{err: assert.AnError, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		code, msg := ToHTTPResponse(tt.err)
		assert.Equal(t, tt.wantCode, code)
		assert.NotEmpty(t, msg)
	}

	// внутренние детали не протекают в сообщение
	_, msg := ToHTTPResponse(assert.AnError)
	assert.Equal(t, e.ErrInternalServerError.Error(), msg)
}
