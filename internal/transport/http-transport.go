package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/RassulYunussov/forgeclient/common"
	internal_common "github.com/RassulYunussov/forgeclient/internal/common"
)

type httpTransport struct {
	standard *http.Client
	compat   *http.Client
}

// CreateHttpTransport returns a transport that opens one connection per exchange
// and hands 3xx responses back instead of following them.
// A zero timeout leaves single exchanges unbounded.
func CreateHttpTransport(timeout time.Duration) internal_common.Transport {
	return &httpTransport{
		standard: newClient(timeout, standardTLSConfig()),
		compat:   newClient(timeout, compatTLSConfig()),
	}
}

func newClient(timeout time.Duration, tlsConfig *tls.Config) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: 30 * time.Second,
			}).DialContext,
			TLSClientConfig:     tlsConfig,
			TLSHandshakeTimeout: 10 * time.Second,
			DisableKeepAlives:   true,
		},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (t *httpTransport) Send(ctx context.Context, spec common.RequestSpec) internal_common.Outcome {
	var body io.Reader
	if spec.HasBody() {
		body = bytes.NewReader(spec.Body())
	}
	r, err := http.NewRequestWithContext(ctx, spec.Method(), spec.URL(), body)
	if err != nil {
		return internal_common.Outcome{Err: err}
	}
	r.Header = spec.Headers()

	client := t.standard
	if spec.SSLCompatMode() {
		client = t.compat
	}
	resp, err := client.Do(r)
	if err != nil {
		return internal_common.Outcome{Err: err}
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return internal_common.Outcome{Err: err}
	}
	return internal_common.Outcome{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       payload,
	}
}
