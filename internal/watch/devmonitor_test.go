package watch

import (
	"testing"

	"github.com/pilebones/go-udev/netlink"
)

func TestExtractDeviceName(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "devname wins",
			env:  map[string]string{"DEVNAME": "/dev/sdb1", "DEVPATH": "/devices/usb1/block/sdb"},
			want: "/dev/sdb1",
		},
		{
			name: "devpath fallback",
			env:  map[string]string{"DEVPATH": "/devices/pci0000:00/usb1/block/sdc"},
			want: "/dev/sdc",
		},
		{
			name: "no identifiers",
			env:  map[string]string{},
			want: "",
		},
	}
	for _, tc := range cases {
		got := extractDeviceName(netlink.UEvent{Env: tc.env})
		if got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestDeviceMonitorNilSafe(t *testing.T) {
	var m *DeviceMonitor
	if m.Running() {
		t.Fatal("nil monitor should not report running")
	}
	m.Stop()
}
