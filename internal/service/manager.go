// Package service installs "questgen watch" as a background service
// (launchd on macOS, systemd on Linux).
package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

// Unit describes one installed watch service.
type Unit struct {
	Name       string // sanitized, e.g. "mining"
	BinaryPath string
	Args       []string
	LogPath    string
}

var unsafeName = regexp.MustCompile(`[^a-z0-9-]+`)

// SanitizeName lowercases name and replaces anything outside [a-z0-9-].
func SanitizeName(name string) string {
	s := unsafeName.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "default"
	}
	return s
}

// NewWatchUnit builds the unit that runs "questgen watch" for one batch file.
// Relative paths are made absolute since services do not share the caller's
// working directory.
func NewWatchUnit(name, binaryPath, batchPath, schedule, configPath string) (Unit, error) {
	bin, err := filepath.Abs(binaryPath)
	if err != nil {
		return Unit{}, fmt.Errorf("resolve binary: %w", err)
	}
	batch, err := filepath.Abs(batchPath)
	if err != nil {
		return Unit{}, fmt.Errorf("resolve batch file: %w", err)
	}

	args := []string{"watch", "-f", batch}
	if s := strings.TrimSpace(schedule); s != "" {
		args = append(args, "--schedule", s)
	}
	if c := strings.TrimSpace(configPath); c != "" {
		abs, err := filepath.Abs(c)
		if err != nil {
			return Unit{}, fmt.Errorf("resolve config: %w", err)
		}
		args = append(args, "--config", abs)
	}

	n := SanitizeName(name)
	return Unit{
		Name:       n,
		BinaryPath: bin,
		Args:       args,
		LogPath:    filepath.Join(os.TempDir(), "questgen-"+n+".log"),
	}, nil
}

// ID returns the launchd label (darwin) or systemd unit base name (linux).
func ID(goos, name string) (string, error) {
	switch goos {
	case "darwin":
		return "com.questgen.watch." + name, nil
	case "linux":
		return "questgen-" + name, nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", goos)
	}
}

// ConfigPath returns where the service definition is installed.
func ConfigPath(goos, name string) (string, error) {
	id, err := ID(goos, name)
	if err != nil {
		return "", err
	}
	switch goos {
	case "darwin":
		return filepath.Join("/Library/LaunchDaemons", id+".plist"), nil
	default:
		return filepath.Join("/etc/systemd/system", id+".service"), nil
	}
}

const launchdPlistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.ID}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.BinaryPath}}</string>
{{- range .Args}}
        <string>{{.}}</string>
{{- end}}
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <true/>
    <key>StandardOutPath</key>
    <string>{{.LogPath}}</string>
    <key>StandardErrorPath</key>
    <string>{{.LogPath}}</string>
</dict>
</plist>
`

const systemdUnitTemplate = `[Unit]
Description=questgen watch ({{.Name}})
After=network.target

[Service]
Type=simple
ExecStart={{.BinaryPath}}{{range .Args}} {{quote .}}{{end}}
Restart=always
RestartSec=5
StandardOutput=append:{{.LogPath}}
StandardError=append:{{.LogPath}}

[Install]
WantedBy=multi-user.target
`

// Render returns the service definition for goos.
func Render(goos string, u Unit) (string, error) {
	id, err := ID(goos, u.Name)
	if err != nil {
		return "", err
	}
	src := systemdUnitTemplate
	if goos == "darwin" {
		src = launchdPlistTemplate
	}
	tmpl, err := template.New("service").Funcs(template.FuncMap{"quote": systemdQuote}).Parse(src)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	err = tmpl.Execute(&sb, struct {
		Unit
		ID string
	}{u, id})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// systemdQuote double-quotes arguments containing whitespace or quotes.
func systemdQuote(s string) string {
	if !strings.ContainsAny(s, " \t\"'\\") {
		return s
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// Install writes the service definition for the running platform and
// enables it.
func Install(goos string, u Unit) error {
	configPath, err := ConfigPath(goos, u.Name)
	if err != nil {
		return err
	}
	text, err := Render(goos, u)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(configPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to create service config: %w", err)
	}
	if err := enable(goos, u.Name); err != nil {
		return fmt.Errorf("failed to enable service: %w", err)
	}
	return nil
}

// Uninstall stops the service and removes its definition.
func Uninstall(goos, name string) error {
	_ = Stop(goos, name)

	configPath, err := ConfigPath(goos, name)
	if err != nil {
		return err
	}
	id, _ := ID(goos, name)

	switch goos {
	case "darwin":
		exec.Command("launchctl", "unload", configPath).Run()
	case "linux":
		exec.Command("systemctl", "disable", id).Run()
		exec.Command("systemctl", "daemon-reload").Run()
	}

	if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Start starts an installed service.
func Start(goos, name string) error {
	return control(goos, name, "load", "start")
}

// Stop stops a running service.
func Stop(goos, name string) error {
	return control(goos, name, "unload", "stop")
}

// IsInstalled reports whether the service definition exists.
func IsInstalled(goos, name string) bool {
	configPath, err := ConfigPath(goos, name)
	if err != nil {
		return false
	}
	_, err = os.Stat(configPath)
	return err == nil
}

// IsRunning checks whether the service is active.
func IsRunning(goos, name string) bool {
	id, err := ID(goos, name)
	if err != nil {
		return false
	}
	switch goos {
	case "darwin":
		return exec.Command("launchctl", "list", id).Run() == nil
	case "linux":
		return exec.Command("systemctl", "is-active", "--quiet", id).Run() == nil
	}
	return false
}

func control(goos, name, launchctlVerb, systemctlVerb string) error {
	id, err := ID(goos, name)
	if err != nil {
		return err
	}
	configPath, err := ConfigPath(goos, name)
	if err != nil {
		return err
	}
	switch goos {
	case "darwin":
		return exec.Command("launchctl", launchctlVerb, configPath).Run()
	default:
		return exec.Command("systemctl", systemctlVerb, id).Run()
	}
}

func enable(goos, name string) error {
	id, err := ID(goos, name)
	if err != nil {
		return err
	}
	configPath, err := ConfigPath(goos, name)
	if err != nil {
		return err
	}
	switch goos {
	case "darwin":
		return exec.Command("launchctl", "load", configPath).Run()
	default:
		if err := exec.Command("systemctl", "daemon-reload").Run(); err != nil {
			return err
		}
		return exec.Command("systemctl", "enable", id).Run()
	}
}
