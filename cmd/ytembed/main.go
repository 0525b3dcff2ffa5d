package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgonek/editor-embeds/embednode"
	"github.com/rgonek/editor-embeds/mdembed"
	"github.com/rgonek/editor-embeds/videolink"
	"github.com/sirupsen/logrus"
)

const (
	presetDefault = "default"
	presetPrivacy = "privacy"
	presetKiosk   = "kiosk"
	presetLoop    = "loop"
)

var errUnresolved = errors.New("some inputs could not be resolved")

func presetOptions(preset string) (videolink.Options, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetDefault:
		return videolink.Options{}, nil
	case presetPrivacy:
		return videolink.Options{
			NoCookie:       true,
			ModestBranding: true,
			IVLoadPolicy:   videolink.IVLoadPolicyHide,
		}, nil
	case presetKiosk:
		return videolink.Options{
			Autoplay:          true,
			Controls:          videolink.Bool(false),
			DisableKBControls: true,
			AllowFullscreen:   videolink.Bool(false),
		}, nil
	case presetLoop:
		return videolink.Options{
			Autoplay: true,
			Loop:     true,
		}, nil
	default:
		return videolink.Options{}, fmt.Errorf("unknown preset %q (allowed: default, privacy, kiosk, loop)", preset)
	}
}

// resolveOptions starts from the preset and overlays the YAML document in
// config, when given.
func resolveOptions(preset string, config io.Reader) (videolink.Options, error) {
	opts, err := presetOptions(preset)
	if err != nil {
		return videolink.Options{}, err
	}
	if config == nil {
		return opts, nil
	}
	return videolink.DecodeOptions(config, opts)
}

func loadOptions(preset, configPath string) (videolink.Options, error) {
	if configPath == "" {
		return resolveOptions(preset, nil)
	}

	f, err := os.Open(configPath)
	if err != nil {
		return videolink.Options{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	return resolveOptions(preset, f)
}

type runConfig struct {
	options  videolink.Options
	start    int
	html     bool
	markdown bool
}

func run(cfg runConfig, args []string, stdout io.Writer, log logrus.FieldLogger) error {
	ext, err := embednode.New(embednode.Options{Video: cfg.options})
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if cfg.markdown {
		return convertFiles(ext, args, stdout, log)
	}
	return resolveURLs(ext, cfg, args, stdout, log)
}

func resolveURLs(ext *embednode.Extension, cfg runConfig, args []string, stdout io.Writer, log logrus.FieldLogger) error {
	failed := false
	for _, arg := range args {
		entry := log.WithField("url", arg)

		node, ok := ext.Insert(embednode.Attrs{Src: arg, Start: cfg.start})
		view := ext.NodeView(node, nil)
		if !ok || view.Fallback() {
			entry.Error("not a supported video url")
			failed = true
			continue
		}

		if !cfg.html {
			fmt.Fprintln(stdout, view.Src())
			entry.WithField("src", view.Src()).Debug("resolved")
			continue
		}

		out, err := view.RenderHTML()
		if err != nil {
			return fmt.Errorf("failed to render %q: %w", arg, err)
		}
		fmt.Fprintln(stdout, out)
		entry.WithField("src", view.Src()).Debug("rendered")
	}

	if failed {
		return errUnresolved
	}
	return nil
}

func convertFiles(ext *embednode.Extension, paths []string, stdout io.Writer, log logrus.FieldLogger) error {
	conv, err := mdembed.New(mdembed.Config{Embed: ext.Options()})
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		result, err := conv.Convert(string(data))
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", path, err)
		}
		for _, warning := range result.Warnings {
			log.WithFields(logrus.Fields{
				"file": path,
				"type": warning.Type,
			}).Warn(warning.Message)
		}

		fmt.Fprint(stdout, result.HTML)
		log.WithField("file", path).Debug("converted")
	}
	return nil
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func main() {
	preset := flag.String("preset", presetDefault, "Preset: default|privacy|kiosk|loop")
	configPath := flag.String("config", "", "YAML file with player options, applied over the preset")
	start := flag.Int("start", 0, "Start offset in seconds")
	html := flag.Bool("html", false, "Print iframe HTML instead of the embed URL")
	markdown := flag.Bool("markdown", false, "Treat arguments as markdown files and print HTML")
	verbose := flag.Bool("verbose", false, "Log debug output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytembed [options] <url|file>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := newLogger(*verbose)

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	opts, err := loadOptions(*preset, *configPath)
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	cfg := runConfig{
		options:  opts,
		start:    *start,
		html:     *html,
		markdown: *markdown,
	}
	if err := run(cfg, args, os.Stdout, log); err != nil {
		log.WithError(err).Error("ytembed failed")
		os.Exit(1)
	}
}
