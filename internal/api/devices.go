package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/umuthan/devreg/internal/device"
)

// deviceIDParam extracts and parses the {id} URL parameter. A non-integer id
// cannot identify any stored device, so it is reported as not found rather
// than as a malformed request.
func deviceIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// handleListDevices returns every registered device in store order.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.registry.List(r.Context())
	if err != nil {
		s.logger.Error("listing devices failed", "error", err)
		writeInternalError(w, "failed to list devices")
		return
	}
	if devices == nil {
		devices = []device.Device{}
	}
	writeJSON(w, http.StatusOK, devices)
}

// handleGetDevice returns a single device by id.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := deviceIDParam(r)
	if !ok {
		writeNotFound(w, "device not found")
		return
	}

	dev, err := s.registry.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			writeNotFound(w, "device not found")
			return
		}
		s.logger.Error("getting device failed", "id", id, "error", err)
		writeInternalError(w, "failed to get device")
		return
	}

	writeJSON(w, http.StatusOK, dev)
}

// handleSearchDevices returns devices matching every supplied query
// parameter exactly. Recognised parameters: device_name, mac_address,
// ip_address, username, device_type, status. Anything else is ignored, and
// no parameters at all is equivalent to listing.
func (s *Server) handleSearchDevices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := device.Filter{
		DeviceName: queryParam(q.Get("device_name")),
		MACAddress: queryParam(q.Get("mac_address")),
		IPAddress:  queryParam(q.Get("ip_address")),
		Username:   queryParam(q.Get("username")),
		DeviceType: queryParam(q.Get("device_type")),
		Status:     queryParam(q.Get("status")),
	}

	devices, err := s.registry.Search(r.Context(), filter)
	if err != nil {
		s.logger.Error("searching devices failed", "error", err)
		writeInternalError(w, "failed to search devices")
		return
	}
	if devices == nil {
		devices = []device.Device{}
	}
	writeJSON(w, http.StatusOK, devices)
}

// handleCreateDevice registers a new device.
func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var dev device.Device
	if err := json.NewDecoder(r.Body).Decode(&dev); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := s.registry.Create(r.Context(), &dev); err != nil {
		switch {
		case errors.Is(err, device.ErrInvalidDevice):
			writeBadRequest(w, err.Error())
		case errors.Is(err, device.ErrDuplicateMAC):
			writeConflict(w, "mac address already registered")
		default:
			s.logger.Error("creating device failed", "mac_address", dev.MACAddress, "error", err)
			writeInternalError(w, "failed to create device")
		}
		return
	}

	writeJSON(w, http.StatusCreated, dev)
}

// handleUpdateDevice replaces a device record with the request body.
// Fields absent from the body become null on the stored record.
func (s *Server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := deviceIDParam(r)
	if !ok {
		writeNotFound(w, "device not found")
		return
	}

	var dev device.Device
	if err := json.NewDecoder(r.Body).Decode(&dev); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	dev.ID = id // The URL, not the body, identifies the record

	if err := s.registry.Update(r.Context(), &dev); err != nil {
		switch {
		case errors.Is(err, device.ErrInvalidDevice):
			writeBadRequest(w, err.Error())
		case errors.Is(err, device.ErrDeviceNotFound):
			writeNotFound(w, "device not found")
		case errors.Is(err, device.ErrDuplicateMAC):
			writeConflict(w, "mac address already registered")
		default:
			s.logger.Error("updating device failed", "id", id, "error", err)
			writeInternalError(w, "failed to update device")
		}
		return
	}

	writeJSON(w, http.StatusOK, dev)
}

// handleDeleteDevice permanently removes a device by id.
func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := deviceIDParam(r)
	if !ok {
		writeNotFound(w, "device not found")
		return
	}

	if err := s.registry.Delete(r.Context(), id); err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			writeNotFound(w, "device not found")
			return
		}
		s.logger.Error("deleting device failed", "id", id, "error", err)
		writeInternalError(w, "failed to delete device")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "device deleted"})
}

// queryParam converts a query value into a filter field, treating an empty
// string as unset.
func queryParam(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
