// Command autosize lays out an HTML file in a narrow window and reports the
// text autosizing multipliers and font sizes.
//
//	autosize --width 320 --layout-width 980 page.html
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benoitkugler/textautosizer/html/autosizer"
	"github.com/benoitkugler/textautosizer/html/document"
	"github.com/benoitkugler/textautosizer/logger"
	"github.com/benoitkugler/textautosizer/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath   string
	width        int
	height       int
	layoutWidth  int
	fontScale    float32
	deviceScale  float32
	debugInfo    bool
	printing     bool
	verbose      bool
	showAllBoxes bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "autosize [flags] <file.html>",
		Short:        "Report the text autosizing of an HTML page",
		Version:      version.VersionString,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.WarnLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetLevel(level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML settings file")
	flags.IntVar(&opts.width, "width", 320, "window width, in CSS pixels")
	flags.IntVar(&opts.height, "height", 480, "window height, in CSS pixels")
	flags.IntVar(&opts.layoutWidth, "layout-width", 980, "width of the layout viewport, in CSS pixels")
	flags.Float32Var(&opts.fontScale, "font-scale", 0, "accessibility font scale factor (overrides the settings)")
	flags.Float32Var(&opts.deviceScale, "device-scale", 0, "device scale adjustment (overrides the settings)")
	flags.BoolVar(&opts.debugInfo, "debug-info", false, "annotate the cluster roots with a data-autosizing attribute")
	flags.BoolVar(&opts.printing, "print", false, "lay out for print, which disables autosizing")
	flags.BoolVarP(&opts.showAllBoxes, "all", "a", false, "report all the boxes, not only the text")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

func (opts options) settings() (autosizer.Settings, error) {
	settings := autosizer.DefaultSettings()
	if opts.configPath != "" {
		var err error
		if settings, err = document.LoadSettings(opts.configPath); err != nil {
			return settings, err
		}
	}
	if opts.fontScale > 0 {
		settings.AccessibilityFontScaleFactor = opts.fontScale
	}
	if opts.deviceScale > 0 {
		settings.DeviceScaleAdjustment = opts.deviceScale
	}
	if opts.debugInfo {
		settings.WriteDebugInfo = true
	}
	return settings, nil
}

func run(cmd *cobra.Command, path string, opts options) error {
	settings, err := opts.settings()
	if err != nil {
		return err
	}

	page := document.NewPage(settings,
		autosizer.Size{Width: opts.width, Height: opts.height},
		autosizer.Size{Width: opts.layoutWidth, Height: opts.height})
	doc, err := document.ParseFile(path, page)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	doc.SetPrinting(opts.printing)
	doc.Layout()

	return writeReport(cmd.OutOrStdout(), doc, opts.showAllBoxes)
}
