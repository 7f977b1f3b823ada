package transport

import (
	"net/http/httptest"
	"testing"

	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashCodec(t *testing.T) {
	notices := []model.Notice{
		{Category: constant.NoticeSuccess, Message: "Welcome back Alice"},
		{Category: constant.NoticeDanger, Message: "Comma, semicolon; and \"quotes\""},
	}

	value, err := encodeFlash(notices)
	require.NoError(t, err)
	assert.NotContains(t, value, ";")

	got, err := decodeFlash(value)
	require.NoError(t, err)
	assert.Equal(t, notices, got)
}

func TestReadFlash_MalformedIsEmpty(t *testing.T) {
	tests := []string{"%%%", "bm90LWpzb24"}
	for _, value := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Cookie", flashCookie+"="+value)
		assert.Empty(t, readFlash(r), value)
	}
}
