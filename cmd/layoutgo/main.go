// Copyright 2025-2026 肖其顿 (XIAO QI DUN)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xiaoqidun/layoutgo"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type options struct {
	inputs   []string
	output   string
	viewPath string
	dpi      int
	zoom     int
	check    bool
	verbose  bool
}

func main() {
	var inputs stringList
	var opts options
	var configPath string
	var watch bool

	flag.Var(&inputs, "i", "Input template (.json), repeat for a multi-page PDF")
	flag.StringVar(&opts.output, "o", "", "Output file (.pdf, .svg, .eps or .png)")
	flag.StringVar(&opts.viewPath, "view", "", "Write the editing view with rulers to this PNG")
	flag.StringVar(&configPath, "config", "layoutgo.toml", "Path to config file (TOML)")
	flag.IntVar(&opts.dpi, "dpi", 0, "Export resolution, overrides [export] dpi")
	flag.IntVar(&opts.zoom, "zoom", 0, "View zoom percentage, overrides [screen] zoom")
	flag.BoolVar(&opts.check, "check", false, "Validate the exported PDF and its page size")
	flag.BoolVar(&watch, "watch", false, "Re-export whenever an input template changes")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.Parse()
	opts.inputs = inputs

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	layoutgo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if opts.dpi > 0 {
		cfg.Export.DPI = opts.dpi
	}
	if opts.zoom > 0 {
		cfg.Screen.Zoom = opts.zoom
	}
	if opts.check {
		cfg.Export.CheckPDF = true
	}

	if len(opts.inputs) == 0 || (opts.output == "" && opts.viewPath == "") {
		fmt.Fprintln(os.Stderr, "Usage: layoutgo -i <template.json> [-i ...] -o <output> [-view view.png] [-config layoutgo.toml]")
		fmt.Fprintln(os.Stderr, "       layoutgo -watch -i <template.json> -o <output>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(opts, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !watch {
			os.Exit(1)
		}
	}
	if watch {
		if err := runWatchMode(opts, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// run renders every input once.
func run(opts options, cfg *Config) error {
	start := time.Now()
	sessions := make([]*layoutgo.Session, 0, len(opts.inputs))
	defer func() {
		for _, s := range sessions {
			s.Close()
		}
	}()
	for _, in := range opts.inputs {
		s, err := loadSession(in, cfg)
		if err != nil {
			return err
		}
		sessions = append(sessions, s)
	}
	if opts.viewPath != "" {
		if err := writeView(sessions[0], opts.viewPath, cfg); err != nil {
			return err
		}
	}
	if opts.output != "" {
		if err := export(sessions, opts.output, cfg); err != nil {
			return err
		}
		fmt.Printf("Exported %d page(s) -> '%s' (%.2fs)\n", len(sessions), filepath.Base(opts.output), time.Since(start).Seconds())
	}
	return nil
}

func newSession(cfg *Config) (*layoutgo.Session, error) {
	return layoutgo.NewSession(
		layoutgo.WithScreen(cfg.Screen.WidthPx, cfg.Screen.HeightPx),
		layoutgo.WithDPI(cfg.Screen.DpiX, cfg.Screen.DpiY),
		layoutgo.WithZoom(cfg.Screen.Zoom),
		layoutgo.WithLabelFont(cfg.Export.LabelFont),
		layoutgo.WithFontDirs(cfg.Export.FontDirs...),
	)
}

func loadSession(path string, cfg *Config) (*layoutgo.Session, error) {
	tpl, err := layoutgo.OpenTemplate(path)
	if err != nil {
		return nil, err
	}
	if tpl.Paper.Type == "" {
		tpl.Paper = cfg.Paper.Properties()
	}
	s, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	if err := tpl.Build(s); err != nil {
		s.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func writeView(s *layoutgo.Session, path string, cfg *Config) error {
	v, err := s.View()
	if err != nil {
		return err
	}
	h, vr := v.Rulers()
	cfg.Ruler.Apply(h)
	cfg.Ruler.Apply(vr)
	v.SetRulersVisible(cfg.Ruler.Visible)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := v.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func export(sessions []*layoutgo.Session, path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory '%s': %w", dir, err)
		}
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		ext = cfg.Export.Format
	}
	if len(sessions) > 1 && ext != "pdf" {
		return fmt.Errorf("%d inputs need a .pdf output, got .%s", len(sessions), ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeOutput(f, sessions, ext, cfg); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func writeOutput(f *os.File, sessions []*layoutgo.Session, ext string, cfg *Config) error {
	if len(sessions) > 1 {
		scenes := make([]*layoutgo.Scene, 0, len(sessions))
		for _, s := range sessions {
			sc, err := s.Scene()
			if err != nil {
				return err
			}
			scenes = append(scenes, sc)
		}
		return layoutgo.ExportScenesToPDF(f, cfg.Export.DPI, scenes...)
	}
	p, err := sessions[0].Printer()
	if err != nil {
		return err
	}
	switch ext {
	case "pdf":
		pdfOpts := []layoutgo.PDFOption{layoutgo.WithPDFDPI(cfg.Export.DPI)}
		if cfg.Export.CheckPDF {
			pdfOpts = append(pdfOpts, layoutgo.WithPDFCheck())
		}
		return p.ExportToPDF(f, pdfOpts...)
	case "svg":
		return p.ExportVector(f, layoutgo.FormatSVG, cfg.Export.DPI)
	case "eps":
		return p.ExportVector(f, layoutgo.FormatEPS, cfg.Export.DPI)
	case "png":
		return p.ExportToImage(f, cfg.Export.DPI)
	}
	return fmt.Errorf("unsupported output format %q", ext)
}
