package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/limitkit/limitkit/pkg/clientip"

	"github.com/stretchr/testify/assert"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "203.0.113.7:54321",
			want:       "203.0.113.7",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "cloudflare header wins",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Forwarded-For": "192.0.2.1"},
			remoteAddr: "203.0.113.7:80",
			want:       "198.51.100.1",
		},
		{
			name:       "forwarded-for first valid entry",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip, 192.0.2.1, 10.0.0.1"},
			remoteAddr: "203.0.113.7:80",
			want:       "192.0.2.1",
		},
		{
			name:       "real-ip fallback",
			headers:    map[string]string{"X-Real-IP": "192.0.2.44"},
			remoteAddr: "203.0.113.7:80",
			want:       "192.0.2.44",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "invalid header values fall through",
			headers:    map[string]string{"CF-Connecting-IP": "garbage", "X-Forwarded-For": "also-garbage"},
			remoteAddr: "203.0.113.7:80",
			want:       "203.0.113.7",
		},
		{
			name:       "nothing valid yields empty",
			remoteAddr: "not-an-address",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}
