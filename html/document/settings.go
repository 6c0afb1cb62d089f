package document

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/benoitkugler/textautosizer/html/autosizer"
)

// DecodeSettings reads TOML settings from [r]. Missing fields keep
// their default value.
//
//	enabled = true
//	accessibility_font_scale_factor = 1.0
//	device_scale_adjustment = 1.0
//	write_debug_info = false
//
//	[window_size_override]
//	width = 320
//	height = 480
func DecodeSettings(r io.Reader) (autosizer.Settings, error) {
	settings := autosizer.DefaultSettings()
	md, err := toml.NewDecoder(r).Decode(&settings)
	if err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return settings, fmt.Errorf("invalid settings: unknown keys %v", undecoded)
	}
	return settings, nil
}

// LoadSettings reads TOML settings from the file at [path].
func LoadSettings(path string) (autosizer.Settings, error) {
	settings := autosizer.DefaultSettings()
	md, err := toml.DecodeFile(path, &settings)
	if err != nil {
		return settings, fmt.Errorf("loading settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return settings, fmt.Errorf("loading settings %s: unknown keys %v", path, undecoded)
	}
	return settings, nil
}
