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

func TestTransformToMM(t *testing.T) {
	tr := must[*WorldTransformer](t)(GeoTransformer(NewEnvelope(-54, -33, -35, 5), NewEnvelope(10, 10, 200, 390)))
	got := must[Envelope](t)(TransformToMM(tr, NewEnvelope(-54, -33, -44.5, -14)))
	want := NewEnvelope(10, 10, 105, 200)
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("TransformToMM mismatch (-want +got):\n%s", d)
	}
	if _, err := TransformToMM(nil, got); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("nil transformer = %v", err)
	}
	if _, err := ConvertToMillimeter(&WorldTransformer{}, []Point{{1, 1}}); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("zero transformer = %v", err)
	}
}

func TestAddCoords(t *testing.T) {
	box := NewEnvelope(0, 0, 10, 20)
	x := AddCoordsInX(box, 5, 8)
	if len(x) != 7 || x[0] != (Point{0, 5}) || x[len(x)-1] != (Point{10, 5}) {
		t.Errorf("AddCoordsInX = %v", x)
	}
	y := AddCoordsInY(box, 3, 40)
	if len(y) != 4 || y[0] != (Point{3, 0}) || y[len(y)-1] != (Point{3, 20}) {
		t.Errorf("AddCoordsInY = %v", y)
	}
	if got := AddCoordsInX(box, 1, 0); len(got) != 2 {
		t.Errorf("zero gap gives %d points", len(got))
	}
}

func TestDecimalToDegree(t *testing.T) {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	for _, tc := range []struct {
		value         float64
		deg, min, sec bool
		want          string
	}{
		{rad(45), false, false, false, "45°0' 0''"},
		{rad(30.5), false, false, false, "30°30' 0''"},
		{rad(-12.25), false, false, false, "12°15' 0''"},
		{rad(45), true, false, false, "45"},
		{rad(30.5), true, true, false, "30°30"},
	} {
		if got := DecimalToDegree(tc.value, tc.deg, tc.min, tc.sec); got != tc.want {
			t.Errorf("DecimalToDegree(%g, %t, %t, %t) = %q, want %q", tc.value, tc.deg, tc.min, tc.sec, got, tc.want)
		}
	}
}

func TestRoundNumberAndZone(t *testing.T) {
	for in, want := range map[float64]int{2.4: 2, 2.5: 3, -2.5: -3, -2.4: -2, 0: 0} {
		if got := RoundNumber(in); got != want {
			t.Errorf("RoundNumber(%g) = %d, want %d", in, got, want)
		}
	}
	for _, tc := range []struct {
		lon  float64
		zone int
	}{
		{-45, 23},
		{3, 31},
		{-180, 1},
		{180, 60},
	} {
		box := NewEnvelope(tc.lon-1, -10, tc.lon+1, 10)
		if got := PlanarZone(box); got != tc.zone {
			t.Errorf("PlanarZone(lon %g) = %d, want %d", tc.lon, got, tc.zone)
		}
	}
}
