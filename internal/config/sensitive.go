package config

// SensitiveDomains lists sites hidden from results when
// history.hide_sensitive is set: banking, password managers, identity
// providers, healthcare and tax portals.
func SensitiveDomains() []string {
	return []string{
		// Banking & payments
		"chase.com",
		"bankofamerica.com",
		"wellsfargo.com",
		"citi.com",
		"capitalone.com",
		"schwab.com",
		"fidelity.com",
		"vanguard.com",
		"paypal.com",
		"venmo.com",

		// Password managers
		"1password.com",
		"bitwarden.com",
		"lastpass.com",
		"dashlane.com",

		// Identity
		"accounts.google.com",
		"login.microsoftonline.com",
		"login.live.com",
		"appleid.apple.com",
		"okta.com",
		"auth0.com",

		// Healthcare
		"mychart.com",
		"patient.portal.athenahealth.com",

		// Government & tax
		"irs.gov",
		"ssa.gov",
		"turbotax.intuit.com",
	}
}

// ExcludedDomains returns the configured exclusions, plus the sensitive list
// when hide_sensitive is enabled.
func (c *Config) ExcludedDomains() []string {
	domains := append([]string(nil), c.History.ExcludeDomains...)
	if c.History.HideSensitive {
		domains = append(domains, SensitiveDomains()...)
	}
	return domains
}
