package common

import (
	"bytes"
	"maps"
	"net/http"
	"slices"
)

const (
	ContentTypeHeader  = "Content-Type"
	DefaultContentType = "application/json; charset=utf8"
	DefaultRetryBudget = 3
)

// Immutable description of one logical HTTP call.
// Accessors hand out copies, so a spec can be shared between goroutines.
type RequestSpec struct {
	url           string
	method        string
	body          []byte
	headers       http.Header
	retryBudget   int
	sslCompatMode bool
}

type RequestOption func(*RequestSpec)

// NewRequestSpec builds a spec for url. Content-Type defaults to
// application/json; charset=utf8 unless one of the options sets it.
func NewRequestSpec(url string, opts ...RequestOption) RequestSpec {
	spec := RequestSpec{
		url:         url,
		headers:     make(http.Header),
		retryBudget: DefaultRetryBudget,
	}
	for _, o := range opts {
		o(&spec)
	}
	if spec.headers.Get(ContentTypeHeader) == "" {
		spec.headers.Set(ContentTypeHeader, DefaultContentType)
	}
	return spec
}

// Request payload. A non-nil body makes POST the default method.
func WithBody(body []byte) RequestOption {
	return func(s *RequestSpec) {
		if body == nil {
			s.body = nil
			return
		}
		s.body = bytes.Clone(body)
	}
}

// Adds headers, replacing values of keys already present.
// Keys are applied in sorted order, so when one header appears in several casings
// the casing sorting last wins.
func WithHeaders(headers map[string]string) RequestOption {
	return func(s *RequestSpec) {
		for _, k := range slices.Sorted(maps.Keys(headers)) {
			s.headers.Set(k, headers[k])
		}
	}
}

func WithHeader(key, value string) RequestOption {
	return func(s *RequestSpec) {
		s.headers.Set(key, value)
	}
}

func WithMethod(method string) RequestOption {
	return func(s *RequestSpec) {
		s.method = method
	}
}

// Number of retries permitted after the first attempt, negative values are treated as 0.
func WithRetryBudget(budget int) RequestOption {
	return func(s *RequestSpec) {
		s.retryBudget = max(budget, 0)
	}
}

// Legacy TLS configuration for outdated servers. Weakens security, off by default.
func WithSSLCompatMode(enabled bool) RequestOption {
	return func(s *RequestSpec) {
		s.sslCompatMode = enabled
	}
}

func (s RequestSpec) URL() string {
	return s.url
}

// Method returns the effective method: the explicit one if set, otherwise POST with a body and GET without.
func (s RequestSpec) Method() string {
	if s.method != "" {
		return s.method
	}
	if s.body != nil {
		return http.MethodPost
	}
	return http.MethodGet
}

func (s RequestSpec) Body() []byte {
	return bytes.Clone(s.body)
}

func (s RequestSpec) HasBody() bool {
	return s.body != nil
}

func (s RequestSpec) Headers() http.Header {
	return s.headers.Clone()
}

func (s RequestSpec) RetryBudget() int {
	return s.retryBudget
}

func (s RequestSpec) SSLCompatMode() bool {
	return s.sslCompatMode
}

// WithURL returns a copy of the spec pointed at url. Method, body, headers,
// retry budget and TLS mode are shared with the original.
func (s RequestSpec) WithURL(url string) RequestSpec {
	next := s
	next.url = url
	return next
}
