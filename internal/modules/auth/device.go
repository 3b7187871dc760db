package auth

import (
	"time"

	"github.com/naturals/core/internal/models"
)

// MaxDevices caps how many device entries an account may hold before new,
// unseen devices are refused.
const MaxDevices = 3

// EvaluateDevice decides whether a login from the incoming device is
// permitted. An account under the cap accepts any device; at the cap, only
// a device whose identifier is already remembered may log in again.
func EvaluateDevice(devices models.DeviceList, incoming models.DeviceEntry) bool {
	if len(devices) < MaxDevices {
		return true
	}
	for _, d := range devices {
		if d.DeviceID == incoming.DeviceID {
			return true
		}
	}
	return false
}

// ReconcileDevices returns the device list after a permitted login: any
// entry with the incoming device identifier is replaced, otherwise the
// incoming entry is appended.
func ReconcileDevices(devices models.DeviceList, incoming models.DeviceEntry) models.DeviceList {
	if incoming.Date.IsZero() {
		incoming.Date = time.Now()
	}
	next := make(models.DeviceList, 0, len(devices)+1)
	for _, d := range devices {
		if d.DeviceID != incoming.DeviceID {
			next = append(next, d)
		}
	}
	return append(next, incoming)
}
