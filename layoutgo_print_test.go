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

package layoutgo

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// recordDevice 记录打印过程的设备
type recordDevice struct {
	dpi      int
	paper    Envelope
	printer  *PrintScene
	scene    *Scene
	beginErr error

	size    [2]int
	state   PrintState
	ctx     ContextObject
	surface *recordSurface
	ended   int
}

func (d *recordDevice) LogicalDPI() (int, int) { return d.dpi, d.dpi }

func (d *recordDevice) PaperRect() Envelope { return d.paper }

func (d *recordDevice) Begin(w, h int) (Surface, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	d.size = [2]int{w, h}
	d.state = d.printer.State()
	d.ctx = d.scene.Context()
	d.surface = newRecordSurface(float64(w), float64(h))
	return d.surface, nil
}

func (d *recordDevice) End() error {
	d.ended++
	return nil
}

func newPrintFixture(t *testing.T, dpi int) (*Scene, *PrintScene, *recordDevice) {
	t.Helper()
	s := newTestScene(t)
	p := NewPrintScene(s)
	dev := &recordDevice{dpi: dpi, paper: NewEnvelope(0, 0, 210, 297), printer: p, scene: s}
	return s, p, dev
}

func TestPrintPaperState(t *testing.T) {
	for _, tc := range []struct {
		intent Intent
		want   PrintState
	}{
		{IntentPreview, PreviewScene},
		{IntentCommit, PrintingScene},
	} {
		t.Run(tc.intent.String(), func(t *testing.T) {
			s, p, dev := newPrintFixture(t, 300)
			saved := s.Context()
			if err := p.PrintPaper(dev, tc.intent); err != nil {
				t.Fatal(err)
			}
			if dev.state != tc.want {
				t.Errorf("state during Begin = %v, want %v", dev.state, tc.want)
			}
			if p.State() != NoPrinter {
				t.Errorf("state after print = %v", p.State())
			}
			if dev.ctx.Zoom != 100 || dev.ctx.DpiX != 300 || dev.ctx.Mode != ModePrinter {
				t.Errorf("print context = %+v", dev.ctx)
			}
			if got := s.Context(); got != saved {
				t.Errorf("context after print = %+v, want %+v", got, saved)
			}
			if d := cmp.Diff([2]int{2480, 3507}, dev.size); d != "" {
				t.Errorf("page size mismatch (-want +got):\n%s", d)
			}
			if dev.ended != 1 {
				t.Errorf("End called %d times", dev.ended)
			}
		})
	}
}

func TestPrintPaperErrors(t *testing.T) {
	s, p, dev := newPrintFixture(t, 300)
	saved := s.Context()
	if err := p.PrintPaper(nil, IntentCommit); !errors.Is(err, ErrDeviceUnavailable) {
		t.Errorf("nil device = %v", err)
	}
	dev.dpi = 0
	if err := p.PrintPaper(dev, IntentCommit); !errors.Is(err, ErrDeviceUnavailable) {
		t.Errorf("zero dpi = %v", err)
	}
	dev.dpi = 300
	dev.beginErr = errors.New("out of paper")
	if err := p.PrintPaper(dev, IntentCommit); !errors.Is(err, dev.beginErr) {
		t.Errorf("begin failure = %v", err)
	}
	if p.State() != NoPrinter {
		t.Errorf("state after failure = %v", p.State())
	}
	if got := s.Context(); got != saved {
		t.Errorf("context after failure = %+v", got)
	}
	if err := NewPrintScene(nil).PrintPaper(dev, IntentCommit); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("nil scene = %v", err)
	}
}

func TestPrintPaperItems(t *testing.T) {
	s, p, dev := newPrintFixture(t, 254)
	visible := NewRectangle("visible", NewEnvelope(0, 0, 10, 10))
	hidden := NewRectangle("hidden", NewEnvelope(20, 20, 30, 30))
	hidden.Printable = false
	for _, it := range []*Item{visible, hidden} {
		if err := s.AddItem(it); err != nil {
			t.Fatal(err)
		}
	}
	s.SelectItems("visible")
	if err := p.PrintPaper(dev, IntentCommit); err != nil {
		t.Fatal(err)
	}
	// the paper fills the page and mm y grows upwards on it
	w, h := float64(dev.size[0]), float64(dev.size[1])
	sx, sy := w/210, h/297
	want := []Envelope{
		NewEnvelope(0, 0, w, h),
		NewEnvelope(0, h-10*sy, 10*sx, h),
	}
	if d := cmp.Diff(want, dev.surface.rects, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("printed rects mismatch (-want +got):\n%s", d)
	}
}

func TestExportToPDF(t *testing.T) {
	s, p, _ := newPrintFixture(t, 300)
	if err := s.AddItem(NewRectangle("frame", NewEnvelope(10, 10, 200, 287))); err != nil {
		t.Fatal(err)
	}
	if err := s.AddItem(NewLine("diag", Point{10, 10}, Point{200, 287})); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := p.ExportToPDF(&buf, WithPDFCheck(), WithPDFDPI(300)); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
	info, err := InspectPDF(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if info.Pages != 1 {
		t.Fatalf("pages = %d", info.Pages)
	}
	if err := info.CheckPageSize(210, 297); err != nil {
		t.Error(err)
	}
	if err := info.CheckPageSize(297, 210); err == nil {
		t.Error("landscape size accepted for a portrait page")
	}
}

func TestExportScenesToPDF(t *testing.T) {
	a := newTestScene(t)
	ctx := testContext().WithPaper(NewPaperConfig(PaperA5, Landscape))
	b := must[*Scene](t)(NewScene(ctx))
	var buf bytes.Buffer
	if err := ExportScenesToPDF(&buf, 150, a, b); err != nil {
		t.Fatal(err)
	}
	info, err := InspectPDF(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if info.Pages != 2 {
		t.Fatalf("pages = %d, want 2", info.Pages)
	}
	got := [][2]float64{{info.Widths[0], info.Heights[0]}, {info.Widths[1], info.Heights[1]}}
	want := [][2]float64{{210, 297}, {210, 148}}
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 0.5)); d != "" {
		t.Errorf("page sizes mismatch (-want +got):\n%s", d)
	}
	if err := ExportScenesToPDF(&buf, 150); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("no scenes = %v", err)
	}
}

func TestExportVectorAndImage(t *testing.T) {
	s, p, _ := newPrintFixture(t, 96)
	if err := s.AddItem(NewRectangle("r", NewEnvelope(10, 10, 50, 50))); err != nil {
		t.Fatal(err)
	}
	var svg bytes.Buffer
	if err := p.ExportVector(&svg, FormatSVG, 96); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Errorf("ExportVector(svg) = %.80s", svg.String())
	}
	if err := p.ExportVector(&svg, VectorFormat(9), 96); !errors.Is(err, ErrUnknownEnumValue) {
		t.Errorf("unknown format = %v", err)
	}

	var img bytes.Buffer
	if err := p.ExportToImage(&img, 72); err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(&img)
	if err != nil {
		t.Fatal(err)
	}
	// 210x297 mm at 72 dpi is 595x841 px
	if cfg.Width < 594 || cfg.Width > 596 || cfg.Height < 841 || cfg.Height > 842 {
		t.Errorf("image size %dx%d", cfg.Width, cfg.Height)
	}

	var raster bytes.Buffer
	paper := must[Envelope](t)(s.PaperBox())
	if err := p.PrintPaper(NewRasterDevice(&raster, 72, paper), IntentCommit); err != nil {
		t.Fatal(err)
	}
	cfg, err = png.DecodeConfig(&raster)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 595 || cfg.Height != 841 {
		t.Errorf("raster size %dx%d, want 595x841", cfg.Width, cfg.Height)
	}
}

func TestPDFInfoCheckPageSize(t *testing.T) {
	info := &PDFInfo{}
	if err := info.CheckPageSize(210, 297); err == nil {
		t.Error("empty PDF accepted")
	}
	info = &PDFInfo{Pages: 2, Widths: []float64{210.2, 210}, Heights: []float64{296.8, 300}}
	err := info.CheckPageSize(210, 297)
	if err == nil || !strings.Contains(err.Error(), "page 2") {
		t.Errorf("CheckPageSize() = %v, want a page 2 error", err)
	}
}
