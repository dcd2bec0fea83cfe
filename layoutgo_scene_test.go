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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func must[T any](t *testing.T) func(T, error) T {
	return func(v T, err error) T {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
}

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	s := must[*Scene](t)(NewScene(testContext()))
	if err := s.Init(300, 200); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCalculateWindow(t *testing.T) {
	cases := []struct {
		name         string
		pw, ph, w, h float64
		first, want  Envelope
	}{
		{"screen_larger", 210, 297, 400, 500, NewEnvelope(-95, -101.5, 305, 398.5), NewEnvelope(-95, -101.5, 305, 398.5)},
		{"paper_larger", 210, 297, 100, 100, NewEnvelope(-55, -98.5, 155, 198.5), NewEnvelope(0, 0, 210, 297)},
		{"mixed", 210, 297, 300, 200, NewEnvelope(-45, -48.5, 255, 248.5), NewEnvelope(-45, 0, 255, 297)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first := calculateWindow(tc.pw, tc.ph, tc.w, tc.h)
			if d := cmp.Diff(tc.first, first, cmpopts.EquateApprox(0, 1e-9)); d != "" {
				t.Errorf("calculateWindow mismatch (-want +got):\n%s", d)
			}
			got := sceneWindow(tc.pw, tc.ph, tc.w, tc.h)
			if d := cmp.Diff(tc.want, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
				t.Errorf("sceneWindow mismatch (-want +got):\n%s", d)
			}
			// the paper is centred in the window
			cx, cy := got.Center()
			if math.Abs(cx-tc.pw/2) > 1e-9 || math.Abs(cy-tc.ph/2) > 1e-9 {
				t.Errorf("window centre (%g, %g), paper centre (%g, %g)", cx, cy, tc.pw/2, tc.ph/2)
			}
		})
	}
}

func TestSceneInitWindow(t *testing.T) {
	s := newTestScene(t)
	want := NewEnvelope(-45, 0, 255, 297)
	if d := cmp.Diff(want, s.SceneBox(), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("SceneBox mismatch (-want +got):\n%s", d)
	}
}

func TestSceneInitErrors(t *testing.T) {
	if _, err := NewScene(ContextObject{}); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("NewScene(zero) = %v", err)
	}
	s := must[*Scene](t)(NewScene(testContext()))
	if err := s.Init(0, 100); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("Init(0, 100) = %v", err)
	}
	bad := testContext().WithPaper(NewPaperConfig(PaperType(77), Portrait))
	s = must[*Scene](t)(NewScene(bad))
	if err := s.Init(100, 100); !errors.Is(err, ErrUnknownEnumValue) {
		t.Errorf("Init(unknown paper) = %v", err)
	}
}

func TestSceneMatrixCorners(t *testing.T) {
	s := newTestScene(t)
	box := s.SceneBox()
	if x, y := s.SceneToView(box.LLx, box.URy); math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("top-left corner -> (%g, %g), want (0, 0)", x, y)
	}
	wantX := MM2Pixel(box.Width(), 96)
	wantY := MM2Pixel(box.Height(), 96)
	if x, y := s.SceneToView(box.URx, box.LLy); !closeTo(x, wantX, 1e-9) || !closeTo(y, wantY, 1e-9) {
		t.Errorf("bottom-right corner -> (%g, %g), want (%g, %g)", x, y, wantX, wantY)
	}
	for _, p := range []Point{{0, 0}, {105, 148.5}, {-3, 250}} {
		vx, vy := s.SceneToView(p.X, p.Y)
		x, y, err := s.ViewToScene(vx, vy)
		if err != nil {
			t.Fatal(err)
		}
		if !closeTo(x, p.X, 1e-9) || !closeTo(y, p.Y, 1e-9) {
			t.Errorf("ViewToScene(SceneToView(%v)) = (%g, %g)", p, x, y)
		}
	}
}

func TestInvertMatrixSingular(t *testing.T) {
	s := newTestScene(t)
	s.transform[0], s.transform[3] = 0, 0
	if _, _, err := s.ViewToScene(1, 1); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("ViewToScene(singular) = %v", err)
	}
}

func TestViewportBoxFromMM(t *testing.T) {
	ctx := testContext()
	paper := NewEnvelope(0, 0, 210, 297)

	base := must[Envelope](t)(ViewportBoxFromMM(ctx.WithZoom(100), paper, true))
	want := NewEnvelope(0, 0, 793, 1122)
	if d := cmp.Diff(want, base, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("100%% viewport mismatch (-want +got):\n%s", d)
	}

	// an unzoomed box never depends on the context zoom
	for _, zoom := range []int{10, 50, 200, 800} {
		got := must[Envelope](t)(ViewportBoxFromMM(ctx.WithZoom(zoom), paper, false))
		if got != base {
			t.Errorf("zoom %d without applyZoom = %v, want %v", zoom, got, base)
		}
	}

	// a larger zoom never gives a smaller box
	prev := Envelope{}
	for _, zoom := range []int{10, 25, 50, 100, 150, 400, 800} {
		got := must[Envelope](t)(ViewportBoxFromMM(ctx.WithZoom(zoom), paper, true))
		if got.Width() < prev.Width() || got.Height() < prev.Height() {
			t.Errorf("zoom %d box %v smaller than %v", zoom, got, prev)
		}
		prev = got
	}

	if _, err := ViewportBoxFromMM(ctx, NewEnvelope(0, 0, 0, 10), false); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("degenerate box = %v", err)
	}
	if _, err := ViewportBoxFromMM(ctx, NewEnvelope(0, 0, 0.01, 0.01), false); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("sub-pixel box = %v", err)
	}
	if _, err := ViewportBoxFromMM(ctx.WithDPI(0, 0), paper, false); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("zero dpi = %v", err)
	}
}

func TestSceneWithContextRestores(t *testing.T) {
	s := newTestScene(t)
	saved := s.Context()
	savedMatrix := s.SceneTransform()
	printing := saved.WithZoom(100).WithDPI(300, 300).WithMode(ModePrinter)

	var seen ContextObject
	boom := errors.New("boom")
	err := s.WithContext(printing, func() error {
		seen = s.Context()
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("WithContext() = %v, want boom", err)
	}
	if seen.Mode != ModePrinter || seen.DpiX != 300 {
		t.Errorf("context inside fn = %+v", seen)
	}
	if got := s.Context(); got != saved {
		t.Errorf("context after = %+v, want %+v", got, saved)
	}
	if got := s.SceneTransform(); got != savedMatrix {
		t.Errorf("matrix after = %v, want %v", got, savedMatrix)
	}

	if err := s.WithContext(ContextObject{}, func() error { return nil }); err == nil {
		t.Error("invalid temporary context must fail")
	}
	if got := s.Context(); got != saved {
		t.Errorf("context after failed swap = %+v", got)
	}
}

func TestSceneListeners(t *testing.T) {
	s := newTestScene(t)
	var zooms []int
	l := ContextListenerFunc(func(ctx ContextObject) { zooms = append(zooms, ctx.Zoom) })
	s.AddListener(l)
	if err := s.OnChangeZoom(150); err != nil {
		t.Fatal(err)
	}
	if err := s.OnChangeMode(ModePan); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]int{150, 150}, zooms); d != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", d)
	}
	if err := s.OnChangeZoom(0); err == nil {
		t.Error("OnChangeZoom(0) must fail")
	}
	if s.Context().Zoom != 150 {
		t.Errorf("failed change altered zoom to %d", s.Context().Zoom)
	}
}

func TestSceneItems(t *testing.T) {
	s := newTestScene(t)
	a := NewRectangle("a", NewEnvelope(10, 10, 50, 50))
	b := NewLine("b", Point{0, 0}, Point{100, 100})
	c := NewMapFrame("c", NewEnvelope(20, 20, 190, 200), NewEnvelope(-54, -33, -35, 5))
	c.Printable = false
	for _, it := range []*Item{a, b, c} {
		if err := s.AddItem(it); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AddItem(NewRectangle("a", NewEnvelope(0, 0, 1, 1))); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("duplicate name = %v", err)
	}
	if err := s.AddItem(NewRectangle("flat", NewEnvelope(0, 0, 0, 1))); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("flat rectangle = %v", err)
	}
	if err := s.AddItem(NewLine("dot", Point{1, 1})); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("one-point line = %v", err)
	}

	names := func(items []*Item) []string {
		var out []string
		for _, it := range items {
			out = append(out, it.Name)
		}
		return out
	}
	if d := cmp.Diff([]string{"a", "b", "c"}, names(s.Items())); d != "" {
		t.Errorf("items mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"a", "b"}, names(s.PrintableItems())); d != "" {
		t.Errorf("printable mismatch (-want +got):\n%s", d)
	}

	s.BringToFront("a")
	if d := cmp.Diff([]string{"b", "c", "a"}, names(s.Items())); d != "" {
		t.Errorf("after BringToFront (-want +got):\n%s", d)
	}
	s.SendToBack("c")
	if d := cmp.Diff([]string{"c", "b", "a"}, names(s.Items())); d != "" {
		t.Errorf("after SendToBack (-want +got):\n%s", d)
	}
	if s.BringToFront("missing") {
		t.Error("BringToFront(missing) = true")
	}

	s.SelectItems("a", "missing", "c")
	if d := cmp.Diff([]string{"c", "a"}, names(s.SelectedItems())); d != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", d)
	}
	if removed := s.RemoveItem("a"); removed != a {
		t.Errorf("RemoveItem(a) = %v", removed)
	}
	if d := cmp.Diff([]string{"c"}, names(s.SelectedItems())); d != "" {
		t.Errorf("selection after remove (-want +got):\n%s", d)
	}
	if s.RemoveItem("a") != nil {
		t.Error("second RemoveItem(a) returned an item")
	}
	s.DeselectAll()
	if len(s.SelectedItems()) != 0 {
		t.Error("DeselectAll left a selection")
	}
}

func TestApplyPaperProportion(t *testing.T) {
	s := newTestScene(t)
	r := NewRectangle("r", NewEnvelope(10, 20, 110, 220))
	l := NewLine("l", Point{0, 0}, Point{210, 297})
	if err := s.AddItem(r); err != nil {
		t.Fatal(err)
	}
	if err := s.AddItem(l); err != nil {
		t.Fatal(err)
	}

	if err := s.ApplyPaperProportion(210, 297, 420, 594); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(NewEnvelope(20, 40, 220, 440), r.Box, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("scaled box mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]Point{{0, 0}, {420, 594}}, l.Points, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("scaled points mismatch (-want +got):\n%s", d)
	}
	if err := s.ApplyPaperProportion(0, 297, 420, 594); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("zero width = %v", err)
	}
}
