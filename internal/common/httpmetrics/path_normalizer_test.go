package httpmetrics

import "testing"

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"/api/stories", "/api/stories"},
		{"/api/stories/", "/api/stories/"},
		{"/api/stories/64f1b2a4e13a4c0001a1b2c3", "/api/stories/{id}"},
		{"/api/subscribe", "/api/subscribe"},
		{"/api/send-newsletter", "/api/send-newsletter"},
		{"/health", "/health"},
	}

	for _, tc := range testCases {
		if got := NormalizePath(tc.path); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
