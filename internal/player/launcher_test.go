package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/vidsearch/internal/domain"
)

type launchCall struct {
	name string
	args []string
}

// fakeLauncher records launches and pretends only installed commands exist
func fakeLauncher(command string, args []string, goos string, installed ...string) (*Launcher, *[]launchCall) {
	l := NewLauncher(command, args, nil)
	l.goos = goos

	onPath := make(map[string]bool)
	for _, name := range installed {
		onPath[name] = true
	}
	l.lookPath = func(file string) (string, error) {
		if onPath[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}

	calls := &[]launchCall{}
	l.start = func(name string, args ...string) error {
		*calls = append(*calls, launchCall{name: name, args: args})
		return nil
	}
	return l, calls
}

const watchURL = "https://www.youtube.com/watch?v=abc"

func TestLaunch_ConfiguredCommand(t *testing.T) {
	l, calls := fakeLauncher("mpv", []string{"--fs"}, "linux")

	require.NoError(t, l.Launch(watchURL))
	require.Len(t, *calls, 1)
	assert.Equal(t, "mpv", (*calls)[0].name)
	assert.Equal(t, []string{"--fs", watchURL}, (*calls)[0].args)
}

func TestLaunch_ConfiguredMacAppOutsidePath(t *testing.T) {
	l, calls := fakeLauncher("IINA", nil, "darwin")

	require.NoError(t, l.Launch(watchURL))
	require.Len(t, *calls, 1)
	assert.Equal(t, "open", (*calls)[0].name)
	assert.Equal(t, []string{"-n", "-a", "IINA", watchURL}, (*calls)[0].args)
}

func TestLaunch_CandidateOrderLinux(t *testing.T) {
	tests := []struct {
		name      string
		installed []string
		want      string
	}{
		{"celluloid preferred", []string{"celluloid", "mpv", "vlc"}, "celluloid"},
		{"mpv next", []string{"mpv", "vlc"}, "mpv"},
		{"haruna before vlc", []string{"haruna", "vlc"}, "haruna"},
		{"vlc last", []string{"vlc"}, "vlc"},
		{"system opener", []string{"xdg-open"}, "xdg-open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, calls := fakeLauncher("", nil, "linux", tt.installed...)
			require.NoError(t, l.Launch(watchURL))
			require.Len(t, *calls, 1)
			assert.Equal(t, tt.want, (*calls)[0].name)
			args := (*calls)[0].args
			assert.Equal(t, watchURL, args[len(args)-1])
		})
	}
}

func TestLaunch_NothingInstalled(t *testing.T) {
	l, calls := fakeLauncher("", nil, "linux")

	err := l.Launch(watchURL)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	assert.Empty(t, *calls)
}

func TestLaunch_ConfiguredStartFailure(t *testing.T) {
	l, _ := fakeLauncher("mpv", nil, "linux")
	l.start = func(string, ...string) error { return errors.New("exec format error") }

	err := l.Launch(watchURL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mpv")
}
