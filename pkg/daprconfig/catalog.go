// Package daprconfig declares the configuration properties understood by the
// Dapr SDK and a holder that resolves them with per-client overrides.
package daprconfig

import (
	"time"

	"github.com/ytimocin/dapr-sdk-go/pkg/property"
)

// Protocols accepted by APIProtocol.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http"
)

var (
	// SidecarIP is the address of the Dapr sidecar.
	SidecarIP = property.NewString("dapr.sidecar.ip", "DAPR_SIDECAR_IP", "127.0.0.1")

	// HTTPPort is the sidecar's HTTP port.
	HTTPPort = property.NewInt("dapr.http.port", "DAPR_HTTP_PORT", 3500)

	// GRPCPort is the sidecar's gRPC port.
	GRPCPort = property.NewInt("dapr.grpc.port", "DAPR_GRPC_PORT", 50001)

	GRPCTLSCertPath = property.NewString("dapr.grpc.tls.cert.path", "DAPR_GRPC_TLS_CERT_PATH", "")
	GRPCTLSKeyPath  = property.NewString("dapr.grpc.tls.key.path", "DAPR_GRPC_TLS_KEY_PATH", "")
	GRPCTLSCAPath   = property.NewString("dapr.grpc.tls.ca.path", "DAPR_GRPC_TLS_CA_PATH", "")

	// GRPCTLSInsecure disables server certificate verification.
	GRPCTLSInsecure = property.NewBool("dapr.grpc.tls.insecure", "DAPR_GRPC_TLS_INSECURE", false)

	GRPCEnableKeepAlive = property.NewBool("dapr.grpc.enable.keep.alive", "DAPR_GRPC_ENABLE_KEEP_ALIVE", false)

	GRPCKeepAliveTime = property.NewSeconds(
		"dapr.grpc.keep.alive.time.seconds", "DAPR_GRPC_KEEP_ALIVE_TIME_SECONDS", 10*time.Second)

	GRPCKeepAliveTimeout = property.NewSeconds(
		"dapr.grpc.keep.alive.timeout.seconds", "DAPR_GRPC_KEEP_ALIVE_TIMEOUT_SECONDS", 5*time.Second)

	GRPCKeepAliveWithoutCalls = property.NewBool(
		"dapr.grpc.keep.alive.without.calls", "DAPR_GRPC_KEEP_ALIVE_WITHOUT_CALLS", true)

	// APIProtocol selects the transport used to talk to the sidecar.
	APIProtocol = property.NewEnum("dapr.api.protocol", "DAPR_API_PROTOCOL", ProtocolGRPC,
		[]string{ProtocolGRPC, ProtocolHTTP})

	// APIToken is sent with every request when set.
	APIToken = property.NewString("dapr.api.token", "DAPR_API_TOKEN", "")

	// HTTPEndpoint and GRPCEndpoint take precedence over SidecarIP and the
	// port properties when set.
	HTTPEndpoint = property.NewString("dapr.http.endpoint", "DAPR_HTTP_ENDPOINT", "")
	GRPCEndpoint = property.NewString("dapr.grpc.endpoint", "DAPR_GRPC_ENDPOINT", "")

	APIMaxRetries = property.NewInt("dapr.api.maxretries", "DAPR_API_MAX_RETRIES", 0)

	// APITimeout bounds each API call; zero means no timeout.
	APITimeout = property.NewMilliseconds("dapr.api.timeoutMilliseconds", "DAPR_API_TIMEOUT_MILLISECONDS", 0)

	StringCharset = property.NewString("dapr.string.charset", "DAPR_STRING_CHARSET", "UTF-8")

	HTTPClientReadTimeout = property.NewSeconds(
		"dapr.http.client.readTimeoutSeconds", "DAPR_HTTP_CLIENT_READ_TIMEOUT_SECONDS", 60*time.Second)

	HTTPClientMaxRequests = property.NewInt(
		"dapr.http.client.maxRequests", "DAPR_HTTP_CLIENT_MAX_REQUESTS", 1024)

	HTTPClientMaxIdleConnections = property.NewInt(
		"dapr.http.client.maxIdleConnections", "DAPR_HTTP_CLIENT_MAX_IDLE_CONNECTIONS", 128)
)

var catalog = []property.Inspector{
	SidecarIP,
	HTTPPort,
	GRPCPort,
	GRPCTLSCertPath,
	GRPCTLSKeyPath,
	GRPCTLSCAPath,
	GRPCTLSInsecure,
	GRPCEnableKeepAlive,
	GRPCKeepAliveTime,
	GRPCKeepAliveTimeout,
	GRPCKeepAliveWithoutCalls,
	APIProtocol,
	APIToken,
	HTTPEndpoint,
	GRPCEndpoint,
	APIMaxRetries,
	APITimeout,
	StringCharset,
	HTTPClientReadTimeout,
	HTTPClientMaxRequests,
	HTTPClientMaxIdleConnections,
}

// All returns every known property in declaration order.
func All() []property.Inspector {
	out := make([]property.Inspector, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a property by its property name or environment variable name.
func Lookup(key string) (property.Inspector, bool) {
	for _, p := range catalog {
		if p.Name() == key || p.EnvName() == key {
			return p, true
		}
	}
	return nil, false
}
