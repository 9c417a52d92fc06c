package sample

import "strings"

// whitelistConfig holds the allow-list for inbound connections.
type whitelistConfig struct {
	entries []string
}

func newWhitelistConfig(entries []string) *whitelistConfig {
	return &whitelistConfig{entries: entries}
}

func (w *whitelistConfig) isAllowed(ip string) bool {
	for _, entry := range w.entries {
		if strings.EqualFold(entry, ip) {
			return true
		}
	}
	return false
}
