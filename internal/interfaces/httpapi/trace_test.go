package httpapi

import "testing"

func TestSpanFilter_HandlersOnly(t *testing.T) {
	traced := []string{
		"httpapi.Handler.Analyze",
		"httpapi.Handler.SetFixtures",
		"httpapi.Handler.EvaluateFixture",
		"httpapi.Handler.PatchHistory",
	}
	for _, name := range traced {
		if !shouldCreateHTTPAPISpan(name) {
			t.Fatalf("%s should open a span", name)
		}
	}

	skipped := []string{
		"httpapi.RequestLogging",
		"httpapi.decodeJSON",
		"httpapi.writeError",
		"httpapi.recoverPanic",
		"Handler.Analyze",
	}
	for _, name := range skipped {
		if shouldCreateHTTPAPISpan(name) {
			t.Fatalf("%s should not open a span", name)
		}
	}
}
