package transport

import (
	"crypto/tls"
	"strings"
)

func standardTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
}

// for our older or poorly configured server friends:
// TLS 1.0 floor, pre-1.3 suites without RC4, and no certificate verification
func compatTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion:         tls.VersionTLS10,
		CipherSuites:       compatCipherSuites(),
		InsecureSkipVerify: true, //nolint:gosec // opt-in legacy mode
	}
}

func compatCipherSuites() []uint16 {
	var ids []uint16
	suites := append(tls.CipherSuites(), tls.InsecureCipherSuites()...)
	for _, s := range suites {
		if strings.Contains(s.Name, "RC4") || !supportsPre13(s) {
			continue
		}
		ids = append(ids, s.ID)
	}
	return ids
}

func supportsPre13(s *tls.CipherSuite) bool {
	for _, v := range s.SupportedVersions {
		if v <= tls.VersionTLS12 {
			return true
		}
	}
	return false
}
