package httpapi

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
// Default is 1 MiB.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// CORS configuration. Enabled for any origin unless reconfigured.
var (
	corsEnabled        = true
	corsAllowedOrigins = []string{"*"}
	corsAllowedMethods = []string{"GET", "POST", "OPTIONS"}
	corsAllowedHeaders = []string{"Content-Type", "X-Request-Id", "X-Log-Level"}
)

// SetCORSOptions configures CORS behavior for the HTTP server. Empty slices
// keep the current value.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	if len(origins) > 0 {
		corsAllowedOrigins = append([]string(nil), origins...)
	}
	if len(methods) > 0 {
		corsAllowedMethods = append([]string(nil), methods...)
	}
	if len(headers) > 0 {
		corsAllowedHeaders = append([]string(nil), headers...)
	}
}
