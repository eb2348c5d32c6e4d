package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSensitiveDomainsNotEmpty(t *testing.T) {
	domains := SensitiveDomains()
	assert.NotEmpty(t, domains)
	assert.Contains(t, domains, "paypal.com")
	assert.Contains(t, domains, "1password.com")
}

func TestExcludedDomains(t *testing.T) {
	cfg := DefaultConfig()
	cfg.History.ExcludeDomains = []string{"intranet.example"}

	assert.Equal(t, []string{"intranet.example"}, cfg.ExcludedDomains())

	cfg.History.HideSensitive = true
	got := cfg.ExcludedDomains()
	assert.Equal(t, "intranet.example", got[0])
	assert.Contains(t, got, "chase.com")
	assert.Len(t, got, len(SensitiveDomains())+1)

	// The configured slice is not modified.
	assert.Len(t, cfg.History.ExcludeDomains, 1)
}
