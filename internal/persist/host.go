package persist

import (
	"os"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/kayz/questgen/internal/logger"
)

// Host identifies the machine a run was generated on.
type Host struct {
	Name string
	OS   string
}

var (
	hostOnce sync.Once
	hostInfo Host
)

// CurrentHost returns the local host stamp, looked up once per process.
func CurrentHost() Host {
	hostOnce.Do(func() {
		info, err := host.Info()
		if err != nil {
			logger.Debug("[PERSIST] host info unavailable: %v", err)
			name, _ := os.Hostname()
			hostInfo = Host{Name: name, OS: runtime.GOOS}
			return
		}
		osName := info.Platform
		if info.PlatformVersion != "" {
			osName += " " + info.PlatformVersion
		}
		if osName == "" {
			osName = info.OS
		}
		hostInfo = Host{Name: info.Hostname, OS: osName}
	})
	return hostInfo
}
