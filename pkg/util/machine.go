package util

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var machineIDOnce struct {
	sync.Once
	id string
}

// GetMachineID returns a stable identifier of the current machine.
// It prefers the machineid library and falls back to the motherboard
// serial number; an empty string is returned when neither works.
// GetMachineID 获取当前机器的唯一标识符
func GetMachineID() string {
	machineIDOnce.Do(func() {
		if id, err := machineid.ID(); err == nil && id != "" {
			machineIDOnce.id = id
			return
		}
		if id, err := getMotherboardSerial(); err == nil && id != "" {
			machineIDOnce.id = id
		}
	})
	return machineIDOnce.id
}

func getMotherboardSerial() (string, error) {
	switch runtime.GOOS {
	case "linux":
		content, err := os.ReadFile("/sys/class/dmi/id/board_serial")
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(content)), nil
	case "windows":
		out, err := exec.Command("wmic", "baseboard", "get", "serialnumber").Output()
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(string(out), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.EqualFold(line, "SerialNumber") {
				continue
			}
			return line, nil
		}
		return "", errors.New("empty wmic output")
	default:
		return "", errors.New("unsupported os")
	}
}
