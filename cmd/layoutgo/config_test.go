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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xiaoqidun/layoutgo"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layoutgo.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(defaultConfig(), cfg); d != "" {
		t.Errorf("config mismatch (-want +got):\n%s", d)
	}
}

func TestLoadConfigDecode(t *testing.T) {
	path := writeConfig(t, `
[paper]
type = "A3"
orientation = "landscape"

[screen]
dpi_x = 120
dpi_y = 120
zoom = 100

[ruler]
visible = false
block_size = 20

[export]
dpi = 150
check_pdf = true
font_dirs = ["/usr/share/fonts"]

[watch]
debounce_ms = 250
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := defaultConfig()
	want.Paper = PaperConfig{Type: "A3", Orientation: "landscape"}
	want.Screen.DpiX, want.Screen.DpiY, want.Screen.Zoom = 120, 120, 100
	want.Ruler.Visible, want.Ruler.BlockSize = false, 20
	want.Export.DPI, want.Export.CheckPDF = 150, true
	want.Export.FontDirs = []string{"/usr/share/fonts"}
	want.Watch.DebounceMS = 250
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("config mismatch (-want +got):\n%s", d)
	}
	if got := cfg.Watch.Debounce(); got != 250*time.Millisecond {
		t.Errorf("Debounce() = %v", got)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[paper\n", "parsing config"},
		{"zoom", "[screen]\nzoom = 5\n", "zoom"},
		{"dpi", "[screen]\ndpi_x = 0\n", "dpi"},
		{"export_dpi", "[export]\ndpi = -1\n", "[export]"},
		{"paper", "[paper]\ntype = \"B5\"\n", "[paper]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("LoadConfig() = %v, want error containing %q", err, tc.want)
			}
		})
	}
	_, err := LoadConfig(writeConfig(t, "[screen]\nzoom = 900\n"))
	if !errors.Is(err, layoutgo.ErrZoomLimit) {
		t.Errorf("zoom 900 = %v", err)
	}
	_, err = LoadConfig(writeConfig(t, "[paper]\ntype = \"B5\"\n"))
	if !errors.Is(err, layoutgo.ErrUnknownEnumValue) {
		t.Errorf("paper B5 = %v", err)
	}
}

func TestWatchDebounceDefault(t *testing.T) {
	if got := (WatchConfig{}).Debounce(); got != 500*time.Millisecond {
		t.Errorf("Debounce() = %v", got)
	}
}

func TestRulerConfigApply(t *testing.T) {
	r := layoutgo.NewRuler(layoutgo.RulerHorizontal)
	c := defaultConfig().Ruler
	c.BlockSize, c.FontSize = 20, 9
	c.Apply(r)
	if r.BlockSize != 20 || r.FontSize != 9 || r.MiddleBlockSize != 5 {
		t.Errorf("ruler after Apply = %+v", r)
	}
}
