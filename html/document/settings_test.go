package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/textautosizer/html/autosizer"
	tu "github.com/benoitkugler/textautosizer/utils/testutils"
)

func TestDecodeSettings(t *testing.T) {
	settings, err := DecodeSettings(strings.NewReader(`
	accessibility_font_scale_factor = 1.25
	write_debug_info = true

	[window_size_override]
	width = 360
	height = 640
	`))
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, settings, autosizer.Settings{
		Enabled:                      true,
		WindowSizeOverride:           autosizer.Size{Width: 360, Height: 640},
		AccessibilityFontScaleFactor: 1.25,
		DeviceScaleAdjustment:        1,
		WriteDebugInfo:               true,
	})

	settings, err = DecodeSettings(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, settings, autosizer.DefaultSettings())

	for _, input := range []string{
		"enabled = ",
		"enabled = 1",
		"zoom = 2",
	} {
		if _, err := DecodeSettings(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("enabled = false\ndevice_scale_adjustment = 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, settings.Enabled, false)
	tu.AssertEqual(t, settings.DeviceScaleAdjustment, float32(1.5))
	tu.AssertEqual(t, settings.AccessibilityFontScaleFactor, float32(1))

	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
