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
	"fmt"
	"math"
)

// maxGridLines 单个方向允许的最大网格线数
const maxGridLines = 2000

// GridSettings 平面网格设置, Gap 为世界单位
type GridSettings struct {
	Gap       float64
	LineWidth float64
	Stroke    string
	Visible   bool
}

// GridOverlay 地图框上的平面网格, 上下文变化时失效重算
type GridOverlay struct {
	item  *Item
	lines [][]Point
	dirty bool
}

// newGridOverlay 为地图框创建网格
func newGridOverlay(item *Item) *GridOverlay {
	return &GridOverlay{item: item, dirty: true}
}

// ContextChanged 实现 ContextListener
func (g *GridOverlay) ContextChanged(ContextObject) {
	g.dirty = true
}

// Invalidate 标记网格需要重算
func (g *GridOverlay) Invalidate() {
	g.dirty = true
}

// Lines 获取毫米坐标下的网格线
// 返回: [][]Point 网格线, error 错误信息
func (g *GridOverlay) Lines() ([][]Point, error) {
	if !g.dirty {
		return g.lines, nil
	}
	m := g.item.Map
	if m == nil || m.Grid == nil {
		return nil, fmt.Errorf("grid on %q: %w", g.item.Name, ErrMissingCollaborator)
	}
	lines, err := PlanarGridLines(g.item.Box, m.WorldBox, m.Grid.Gap)
	if err != nil {
		return nil, err
	}
	g.lines, g.dirty = lines, false
	return lines, nil
}

// PlanarGridLines 计算平面网格线
// 入参: boxMM 地图框毫米区域, world 世界区域, gap 世界单位间隔
// 返回: [][]Point 毫米坐标下的网格线, error 错误信息
func PlanarGridLines(boxMM, world Envelope, gap float64) ([][]Point, error) {
	if gap <= 0 || math.IsNaN(gap) {
		return nil, fmt.Errorf("grid gap %g: %w", gap, ErrDegenerateGeometry)
	}
	if world.Width()/gap > maxGridLines || world.Height()/gap > maxGridLines {
		return nil, fmt.Errorf("grid gap %g too small for %v: %w", gap, world, ErrDegenerateGeometry)
	}
	t, err := GeoTransformer(world, boxMM)
	if err != nil {
		return nil, err
	}
	var lines [][]Point
	for x := math.Ceil(world.LLx/gap) * gap; x <= world.URx; x += gap {
		line, err := ConvertToMillimeter(t, AddCoordsInY(world, x, gap))
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	for y := math.Ceil(world.LLy/gap) * gap; y <= world.URy; y += gap {
		line, err := ConvertToMillimeter(t, AddCoordsInX(world, y, gap))
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
