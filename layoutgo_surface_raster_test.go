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
	"image/color"
	"log/slog"
	"strings"
	"testing"
)

func TestRasterSurfaceImage(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	s := newRasterSurface(20, 10, 96)
	defer s.Close()
	s.Clear(color.White)
	img := s.Image()
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("image bounds %v", b)
	}
	if strings.Contains(buf.String(), "op=flush") {
		t.Errorf("flush error logged without an accelerator: %q", buf.String())
	}

	s.logErr("flush", errors.New("device lost"))
	if out := buf.String(); !strings.Contains(out, "op=flush") || !strings.Contains(out, "device lost") {
		t.Errorf("flush error not logged: %q", out)
	}
}
