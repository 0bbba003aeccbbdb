package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/umuthan/devreg/internal/device"
)

// doJSON performs a request against the router and returns the recorder.
func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeDevice unmarshals a response body into a Device.
func decodeDevice(t *testing.T, w *httptest.ResponseRecorder) device.Device {
	t.Helper()

	var d device.Device
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("unmarshal device: %v (body: %s)", err, w.Body.String())
	}
	return d
}

// decodeDevices unmarshals a response body into a device slice.
func decodeDevices(t *testing.T, w *httptest.ResponseRecorder) []device.Device {
	t.Helper()

	var devices []device.Device
	if err := json.Unmarshal(w.Body.Bytes(), &devices); err != nil {
		t.Fatalf("unmarshal devices: %v (body: %s)", err, w.Body.String())
	}
	return devices
}

// decodeError unmarshals an error response body.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) Error {
	t.Helper()

	var e Error
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal error: %v (body: %s)", err, w.Body.String())
	}
	return e
}

func TestCreateDevice(t *testing.T) {
	t.Run("assigns id and default status", func(t *testing.T) {
		srv, _ := testServer(t)
		router := srv.buildRouter()

		w := doJSON(t, router, http.MethodPost, "/api/devices",
			`{"mac_address": "AA:BB:CC:DD:EE:01", "username": "bob"}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusCreated, w.Body.String())
		}

		d := decodeDevice(t, w)
		if d.ID == 0 {
			t.Error("id not assigned")
		}
		if d.Status != "active" {
			t.Errorf("status = %q, want active", d.Status)
		}
		if d.CreatedAt != nil {
			t.Errorf("created_at = %v, want null", d.CreatedAt)
		}
	})

	t.Run("preserves explicit status", func(t *testing.T) {
		srv, _ := testServer(t)
		router := srv.buildRouter()

		w := doJSON(t, router, http.MethodPost, "/api/devices",
			`{"mac_address": "AA:BB:CC:DD:EE:02", "username": "bob", "status": "disabled"}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
		}
		if d := decodeDevice(t, w); d.Status != "disabled" {
			t.Errorf("status = %q, want disabled", d.Status)
		}
	})

	t.Run("missing username is a validation error", func(t *testing.T) {
		srv, _ := testServer(t)
		router := srv.buildRouter()

		w := doJSON(t, router, http.MethodPost, "/api/devices",
			`{"mac_address": "AA:BB:CC:DD:EE:03"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if e := decodeError(t, w); e.Message == "" {
			t.Error("error message is empty")
		}
	})

	t.Run("missing mac_address is a validation error", func(t *testing.T) {
		srv, _ := testServer(t)
		router := srv.buildRouter()

		w := doJSON(t, router, http.MethodPost, "/api/devices", `{"username": "bob"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		srv, _ := testServer(t)
		router := srv.buildRouter()

		w := doJSON(t, router, http.MethodPost, "/api/devices", `{"mac_address": `)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("duplicate mac conflicts", func(t *testing.T) {
		srv, _ := testServer(t)
		router := srv.buildRouter()

		body := `{"mac_address": "AA:BB:CC:DD:EE:04", "username": "bob"}`
		if w := doJSON(t, router, http.MethodPost, "/api/devices", body); w.Code != http.StatusCreated {
			t.Fatalf("first create status = %d, want %d", w.Code, http.StatusCreated)
		}

		w := doJSON(t, router, http.MethodPost, "/api/devices",
			`{"mac_address": "AA:BB:CC:DD:EE:04", "username": "carol"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
		}
		if e := decodeError(t, w); e.Message == "" {
			t.Error("error message is empty")
		}
	})
}

func TestGetDevice(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doJSON(t, router, http.MethodPost, "/api/devices",
		`{"mac_address": "AA:BB:CC:DD:EE:10", "username": "alice", "device_name": "laptop"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	created := decodeDevice(t, w)

	t.Run("found", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/devices/1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}

		d := decodeDevice(t, w)
		if d.ID != created.ID {
			t.Errorf("id = %d, want %d", d.ID, created.ID)
		}
		if d.MACAddress != "AA:BB:CC:DD:EE:10" {
			t.Errorf("mac_address = %q", d.MACAddress)
		}
		if d.DeviceName == nil || *d.DeviceName != "laptop" {
			t.Errorf("device_name = %v, want laptop", d.DeviceName)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/devices/9999", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("non-integer id", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/devices/abc", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestListDevices(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	t.Run("empty registry returns empty array", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/devices", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("body = %s, want []", body)
		}
	})

	t.Run("returns devices in id order", func(t *testing.T) {
		for _, mac := range []string{"AA:BB:CC:DD:EE:20", "AA:BB:CC:DD:EE:21"} {
			w := doJSON(t, router, http.MethodPost, "/api/devices",
				`{"mac_address": "`+mac+`", "username": "bob"}`)
			if w.Code != http.StatusCreated {
				t.Fatalf("create status = %d", w.Code)
			}
		}

		w := doJSON(t, router, http.MethodGet, "/api/devices", "")
		devices := decodeDevices(t, w)
		if len(devices) != 2 {
			t.Fatalf("len = %d, want 2", len(devices))
		}
		if devices[0].ID >= devices[1].ID {
			t.Errorf("devices not in id order: %d, %d", devices[0].ID, devices[1].ID)
		}
	})
}

func TestSearchDevices(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	seed := []string{
		`{"mac_address": "AA:BB:CC:DD:EE:30", "username": "alice", "device_type": "laptop"}`,
		`{"mac_address": "AA:BB:CC:DD:EE:31", "username": "alice", "device_type": "phone"}`,
		`{"mac_address": "AA:BB:CC:DD:EE:32", "username": "bob", "device_type": "laptop"}`,
	}
	for _, body := range seed {
		if w := doJSON(t, router, http.MethodPost, "/api/devices", body); w.Code != http.StatusCreated {
			t.Fatalf("seed create status = %d", w.Code)
		}
	}

	t.Run("single field", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/devices/search?username=alice", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if devices := decodeDevices(t, w); len(devices) != 2 {
			t.Errorf("len = %d, want 2", len(devices))
		}
	})

	t.Run("multiple fields AND", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/devices/search?username=alice&device_type=laptop", "")
		devices := decodeDevices(t, w)
		if len(devices) != 1 {
			t.Fatalf("len = %d, want 1", len(devices))
		}
		if devices[0].MACAddress != "AA:BB:CC:DD:EE:30" {
			t.Errorf("mac_address = %q", devices[0].MACAddress)
		}
	})

	t.Run("exact match only", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/devices/search?username=ali", "")
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("body = %s, want [] (no substring matching)", body)
		}
	})

	t.Run("no parameters equals list", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/devices/search", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if devices := decodeDevices(t, w); len(devices) != 3 {
			t.Errorf("len = %d, want 3", len(devices))
		}
	})

	t.Run("no match returns empty array", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/devices/search?status=disabled", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("body = %s, want []", body)
		}
	})
}

func TestUpdateDevice(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doJSON(t, router, http.MethodPost, "/api/devices",
		`{"mac_address": "AA:BB:CC:DD:EE:40", "username": "bob", "device_name": "desktop", "ip_address": "10.0.0.5"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	t.Run("full replace drops omitted fields", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/devices/1",
			`{"mac_address": "AA:BB:CC:DD:EE:40", "username": "bob", "status": "disabled"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}

		d := decodeDevice(t, w)
		if d.Status != "disabled" {
			t.Errorf("status = %q, want disabled", d.Status)
		}
		if d.DeviceName != nil {
			t.Errorf("device_name = %v, want null after replace", d.DeviceName)
		}
		if d.IPAddress != nil {
			t.Errorf("ip_address = %v, want null after replace", d.IPAddress)
		}

		// The replacement is what subsequent reads observe
		got := decodeDevice(t, doJSON(t, router, http.MethodGet, "/api/devices/1", ""))
		if got.Status != "disabled" || got.DeviceName != nil {
			t.Errorf("stored record = %+v, replace not persisted", got)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/devices/1", `{"username": "bob"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/devices/1", `not json`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/devices/9999",
			`{"mac_address": "AA:BB:CC:DD:EE:41", "username": "bob"}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("non-integer id", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/devices/abc",
			`{"mac_address": "AA:BB:CC:DD:EE:41", "username": "bob"}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("mac collision conflicts", func(t *testing.T) {
		if w := doJSON(t, router, http.MethodPost, "/api/devices",
			`{"mac_address": "AA:BB:CC:DD:EE:42", "username": "carol"}`); w.Code != http.StatusCreated {
			t.Fatalf("create status = %d", w.Code)
		}

		w := doJSON(t, router, http.MethodPut, "/api/devices/1",
			`{"mac_address": "AA:BB:CC:DD:EE:42", "username": "bob"}`)
		if w.Code != http.StatusConflict {
			t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
		}
	})
}

func TestDeleteDevice(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	if w := doJSON(t, router, http.MethodPost, "/api/devices",
		`{"mac_address": "AA:BB:CC:DD:EE:50", "username": "bob"}`); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	t.Run("success", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/devices/1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}

		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp["message"] == "" {
			t.Error("message is empty")
		}
	})

	t.Run("gone after delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/devices/1", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("repeated delete fails", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/devices/1", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("non-integer id", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/devices/abc", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

// TestDeviceLifecycle walks a device through registration, duplicate
// rejection, status change, and removal.
func TestDeviceLifecycle(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doJSON(t, router, http.MethodPost, "/api/devices",
		`{"mac_address": "AA:BB:CC:DD:EE:01", "username": "bob"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", w.Code, http.StatusCreated)
	}
	created := decodeDevice(t, w)
	if created.Status != "active" {
		t.Errorf("status = %q, want active", created.Status)
	}

	w = doJSON(t, router, http.MethodPost, "/api/devices",
		`{"mac_address": "AA:BB:CC:DD:EE:01", "username": "mallory"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate create status = %d, want %d", w.Code, http.StatusConflict)
	}

	w = doJSON(t, router, http.MethodPut, "/api/devices/1",
		`{"mac_address": "AA:BB:CC:DD:EE:01", "username": "bob", "status": "disabled"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d", w.Code, http.StatusOK)
	}
	if d := decodeDevice(t, w); d.Status != "disabled" {
		t.Errorf("status = %q, want disabled", d.Status)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/devices/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusOK)
	}

	w = doJSON(t, router, http.MethodGet, "/api/devices/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
