package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHOP_INVENTORY_FILE", DefaultInventoryFile)
	t.Setenv("SHOP_RECEIPT_DIR", DefaultReceiptDir)
	t.Setenv("SHOP_DATABASE_DSN", "")
	t.Setenv("SHOP_HTTP_ADDR", "")
	t.Setenv("SHOP_LOG_LEVEL", DefaultLogLevel)

	c, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{
		InventoryFile: DefaultInventoryFile,
		ReceiptDir:    DefaultReceiptDir,
		LogLevel:      DefaultLogLevel,
	}, c)
}

func TestEnvThenFlags(t *testing.T) {
	t.Setenv("SHOP_INVENTORY_FILE", "/data/env.json")
	t.Setenv("SHOP_HTTP_ADDR", ":9000")

	c, err := Load([]string{"--inventory-file", "/data/flag.json", "--receipt-dir=/tmp/r"})
	require.NoError(t, err)
	assert.Equal(t, "/data/flag.json", c.InventoryFile)
	assert.Equal(t, "/tmp/r", c.ReceiptDir)
	assert.Equal(t, ":9000", c.HTTPAddr)
}

func TestUnknownFlag(t *testing.T) {
	_, err := Load([]string{"--nope"})
	assert.Error(t, err)
}
