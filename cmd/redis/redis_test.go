package redisclient

import (
	"testing"

	"github.com/muhammadheryan/car-traders/cmd/config"
	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	cfg := &config.Config{Redis: config.RedisConfig{Host: "cache", Port: 6380, Password: "pw", DB: 2}}

	opt := Options(cfg)

	assert.Equal(t, "cache:6380", opt.Addr)
	assert.Equal(t, "pw", opt.Password)
	assert.Equal(t, 2, opt.DB)
	assert.Equal(t, clientName, opt.ClientName)
}

func TestNew_NilConfig(t *testing.T) {
	client, err := New(nil)
	assert.Error(t, err)
	assert.Nil(t, client)
}
