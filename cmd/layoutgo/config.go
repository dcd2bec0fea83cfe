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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xiaoqidun/layoutgo"
)

type PaperConfig struct {
	Type        string  `toml:"type"`
	Orientation string  `toml:"orientation"`
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
}

// Properties converts the section to template paper properties.
func (p PaperConfig) Properties() layoutgo.PaperProperties {
	return layoutgo.PaperProperties{Type: p.Type, Orientation: p.Orientation, Width: p.Width, Height: p.Height}
}

type ScreenConfig struct {
	DpiX     int `toml:"dpi_x"`
	DpiY     int `toml:"dpi_y"`
	WidthPx  int `toml:"width_px"`
	HeightPx int `toml:"height_px"`
	Zoom     int `toml:"zoom"`
}

type RulerConfig struct {
	Visible         bool    `toml:"visible"`
	BlockSize       int     `toml:"block_size"`
	MiddleBlockSize int     `toml:"middle_block_size"`
	SmallBlockSize  int     `toml:"small_block_size"`
	LongLine        float64 `toml:"long_line"`
	MediumLine      float64 `toml:"medium_line"`
	SmallLine       float64 `toml:"small_line"`
	FontSize        float64 `toml:"font_size"`
}

// Apply copies the configured values onto r.
func (c RulerConfig) Apply(r *layoutgo.Ruler) {
	r.BlockSize = c.BlockSize
	r.MiddleBlockSize = c.MiddleBlockSize
	r.SmallBlockSize = c.SmallBlockSize
	r.LongLine = c.LongLine
	r.MediumLine = c.MediumLine
	r.SmallLine = c.SmallLine
	r.FontSize = c.FontSize
}

type ExportConfig struct {
	DPI       int      `toml:"dpi"`
	Format    string   `toml:"format"`
	CheckPDF  bool     `toml:"check_pdf"`
	LabelFont string   `toml:"label_font"`
	FontDirs  []string `toml:"font_dirs"`
}

type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms"` // 0 = default (500ms)
}

func (w WatchConfig) Debounce() time.Duration {
	if w.DebounceMS > 0 {
		return time.Duration(w.DebounceMS) * time.Millisecond
	}
	return 500 * time.Millisecond
}

type Config struct {
	Paper  PaperConfig  `toml:"paper"`
	Screen ScreenConfig `toml:"screen"`
	Ruler  RulerConfig  `toml:"ruler"`
	Export ExportConfig `toml:"export"`
	Watch  WatchConfig  `toml:"watch"`
}

func defaultConfig() *Config {
	return &Config{
		Paper: PaperConfig{Type: "A4", Orientation: "portrait"},
		Screen: ScreenConfig{
			DpiX:     layoutgo.DefaultScreenDPI,
			DpiY:     layoutgo.DefaultScreenDPI,
			WidthPx:  1280,
			HeightPx: 800,
			Zoom:     layoutgo.DefaultZoom,
		},
		Ruler: RulerConfig{
			Visible:         true,
			BlockSize:       10,
			MiddleBlockSize: 5,
			SmallBlockSize:  1,
			LongLine:        3.5,
			MediumLine:      2.25,
			SmallLine:       1.25,
			FontSize:        6,
		},
		Export: ExportConfig{DPI: layoutgo.DefaultPrintDPI, Format: "pdf"},
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Screen.DpiX <= 0 || c.Screen.DpiY <= 0 {
		return fmt.Errorf("[screen] dpi must be positive, got %dx%d", c.Screen.DpiX, c.Screen.DpiY)
	}
	if c.Screen.WidthPx <= 0 || c.Screen.HeightPx <= 0 {
		return fmt.Errorf("[screen] size must be positive, got %dx%d", c.Screen.WidthPx, c.Screen.HeightPx)
	}
	if c.Screen.Zoom < layoutgo.MinZoom || c.Screen.Zoom > layoutgo.MaxZoom {
		return fmt.Errorf("[screen] zoom %d: %w", c.Screen.Zoom, layoutgo.ErrZoomLimit)
	}
	if c.Export.DPI <= 0 {
		return fmt.Errorf("[export] dpi must be positive, got %d", c.Export.DPI)
	}
	if _, err := layoutgo.ConvertToPaperConfig(c.Paper.Properties()); err != nil {
		return fmt.Errorf("[paper]: %w", err)
	}
	return nil
}
