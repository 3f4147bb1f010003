// Package player starts an external media player for a video URL.
package player

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mmcdole/vidsearch/internal/domain"
)

// Launcher starts media URLs in an external player
type Launcher struct {
	command string   // configured player command, empty for auto-detect
	args    []string // additional arguments for the player
	goos    string
	logger  *slog.Logger

	// Seams for tests
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // Command path: "mpv", or "open-a:AppName" on macOS
	openFlags []string // For "open-a:" paths only, flags for the open command
}

// playerConfig defines platform-specific launch configurations for a player
type playerConfig struct {
	args      []string                // Always passed before the URL
	platforms map[string][]launchPath // Platform -> launch paths to try in order
}

// players registry - single source of truth for all player configuration
var players = map[string]playerConfig{
	"celluloid": {
		args: []string{"--new-window"},
		platforms: map[string][]launchPath{
			"linux": {{path: "celluloid"}},
		},
	},
	"mpv": {
		args: []string{"--force-window=immediate"},
		platforms: map[string][]launchPath{
			"darwin":  {{path: "mpv"}},
			"linux":   {{path: "mpv"}},
			"windows": {{path: "mpv"}},
		},
	},
	"haruna": {
		platforms: map[string][]launchPath{
			"linux": {{path: "haruna"}},
		},
	},
	"vlc": {
		platforms: map[string][]launchPath{
			"darwin": {
				{path: "vlc"},
				{path: "open-a:VLC"},
			},
			"linux":   {{path: "vlc"}},
			"windows": {{path: "vlc"}},
		},
	},
	"iina": {
		platforms: map[string][]launchPath{
			"darwin": {
				{path: "open-a:IINA", openFlags: []string{"-n"}}, // IINA needs -n for new windows
			},
		},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"celluloid", "mpv", "haruna", "vlc"},
	"windows": {"mpv", "vlc"},
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     append([]string(nil), args...),
		goos:     runtime.GOOS,
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// startDetached spawns the player and reaps it in the background
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// Launch opens url in the configured player, a detected player, or the
// system default handler, in that order.
func (l *Launcher) Launch(url string) error {
	// Tier 1: User configured a specific player
	if l.command != "" {
		l.logger.Info("using configured player", "command", l.command)
		return l.launchConfigured(url)
	}

	// Tier 2: Try candidate chain
	if _, err := l.detectAndLaunch(url); err == nil {
		return nil
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	l.logger.Info("no candidate players found, using system default")
	if err := l.launchDefault(url); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPlayerNotFound, err)
	}
	return nil
}

// launchConfigured launches url with the configured command
func (l *Launcher) launchConfigured(url string) error {
	args := append([]string{}, l.args...)

	if l.goos == "darwin" {
		if _, err := l.lookPath(l.command); err != nil {
			// GUI apps outside PATH go through 'open -a'
			cmdArgs := append(openFlagsFor(l.command), "-a", l.command)
			if len(args) > 0 {
				cmdArgs = append(cmdArgs, "--args")
				cmdArgs = append(cmdArgs, args...)
			}
			cmdArgs = append(cmdArgs, url)
			l.logger.Info("using macOS 'open -a' to launch GUI app", "app", l.command, "args", cmdArgs)
			return l.start("open", cmdArgs...)
		}
	}

	args = append(args, url)
	l.logger.Info("launching player", "command", l.command, "args", args)
	if err := l.start(l.command, args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", l.command, err)
	}
	return nil
}

// openFlagsFor returns the 'open' flags registered for a macOS app
func openFlagsFor(command string) []string {
	base := strings.ToLower(filepath.Base(command))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cfg, ok := players[base]
	if !ok {
		return []string{}
	}
	for _, lp := range cfg.platforms["darwin"] {
		if strings.HasPrefix(lp.path, "open-a:") {
			return append([]string{}, lp.openFlags...)
		}
	}
	return []string{}
}

// detectAndLaunch tries candidate players in order.
// Returns the player name that succeeded.
func (l *Launcher) detectAndLaunch(url string) (string, error) {
	candidates, ok := candidatePlayers[l.goos]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, playerName := range candidates {
		player, exists := players[playerName]
		if !exists {
			continue
		}

		launchPaths, ok := player.platforms[l.goos]
		if !ok {
			l.logger.Debug("player not available on this platform", "player", playerName, "platform", l.goos)
			continue
		}

		for _, lp := range launchPaths {
			var err error
			if strings.HasPrefix(lp.path, "open-a:") {
				appName := strings.TrimPrefix(lp.path, "open-a:")
				cmdArgs := append(append([]string{}, lp.openFlags...), "-a", appName, url)
				err = l.start("open", cmdArgs...)
			} else {
				err = l.tryCommand(lp.path, append(append([]string{}, player.args...), url))
			}

			if err == nil {
				l.logger.Info("launched with detected player", "player", playerName, "path", lp.path)
				return playerName, nil
			}
			l.logger.Debug("launch path not available", "player", playerName, "path", lp.path, "error", err)
		}
	}

	return "", errors.New("no candidate players found")
}

// tryCommand launches a CLI player if it is on PATH
func (l *Launcher) tryCommand(command string, args []string) error {
	if _, err := l.lookPath(command); err != nil {
		return err
	}
	return l.start(command, args...)
}

// launchDefault opens the URL using the system default handler
func (l *Launcher) launchDefault(url string) error {
	l.logger.Info("launching with system default", "os", l.goos, "url", url)

	switch l.goos {
	case "darwin":
		return l.start("open", url)
	case "windows":
		return l.start("cmd", "/c", "start", "", url)
	default:
		return l.tryCommand("xdg-open", []string{url})
	}
}
