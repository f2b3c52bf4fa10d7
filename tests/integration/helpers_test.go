package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"testing"
	"time"
)

// storefrontPort is the HTTP port of a locally running storefront instance.
const storefrontPort = 8080

// baseURL returns the base URL for the storefront service.
func baseURL() string {
	return fmt.Sprintf("http://localhost:%d", storefrontPort)
}

// uniqueProductID generates a product ID unlikely to collide with earlier
// test runs against the same instance.
func uniqueProductID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), rand.Intn(100000))
}

// skipIfNotRunning performs a quick health check against the storefront.
// If the service is unreachable, the test is skipped (not failed).
func skipIfNotRunning(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL() + "/health/live")
	if err != nil {
		t.Skipf("storefront on port %d not reachable (Docker not running?): %v", storefrontPort, err)
	}
	resp.Body.Close()
}

// httpGet performs an HTTP GET request and returns the status code and decoded JSON body.
func httpGet(t *testing.T, url string) (int, map[string]interface{}) {
	t.Helper()
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

// httpPost performs an HTTP POST request with a JSON body.
func httpPost(t *testing.T, url string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	return doJSONRequest(t, http.MethodPost, url, body)
}

// httpPut performs an HTTP PUT request with a JSON body.
func httpPut(t *testing.T, url string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	return doJSONRequest(t, http.MethodPut, url, body)
}

// httpDelete performs an HTTP DELETE request.
func httpDelete(t *testing.T, url string) (int, map[string]interface{}) {
	t.Helper()
	return doJSONRequest(t, http.MethodDelete, url, nil)
}

func doJSONRequest(t *testing.T, method, url string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body for %s %s failed: %v", method, url, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("creating %s request for %s failed: %v", method, url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

// decodeBody decodes a JSON response body into a generic map. An empty or
// non-JSON body yields nil rather than failing the test.
func decodeBody(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading response body failed: %v", err)
	}
	if len(data) == 0 {
		return nil
	}
	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return result
}

// requireStatus fails the test if the status code does not match.
func requireStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("unexpected status: got %d, want %d", got, want)
	}
}

// extractField returns a named field from a decoded JSON object, or nil.
func extractField(data map[string]interface{}, field string) interface{} {
	if data == nil {
		return nil
	}
	return data[field]
}

// dataObject returns the envelope's data field as an object.
func dataObject(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	obj, ok := extractField(resp, "data").(map[string]interface{})
	if !ok {
		t.Fatalf("expected object in data field, got %T", extractField(resp, "data"))
	}
	return obj
}

// dataArray returns the envelope's data field as an array.
func dataArray(t *testing.T, resp map[string]interface{}) []interface{} {
	t.Helper()
	arr, ok := extractField(resp, "data").([]interface{})
	if !ok {
		t.Fatalf("expected array in data field, got %T", extractField(resp, "data"))
	}
	return arr
}
