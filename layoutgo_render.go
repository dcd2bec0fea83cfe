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
	"image/color"
)

var (
	paperBorder   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	selectionTint = color.RGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0xff}
	mapFrameFill  = color.RGBA{R: 0xf4, G: 0xf8, B: 0xfc, A: 0xff}
	gridStroke    = color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}
)

// drawOptions 图元绘制选项
type drawOptions struct {
	printableOnly bool
	selected      map[string]bool
	grids         map[string]*GridOverlay
}

// projectBox 投影毫米区域
func projectBox(p Projector, box Envelope) Envelope {
	x1, y1 := p.Project(box.LLx, box.LLy)
	x2, y2 := p.Project(box.URx, box.URy)
	return NewEnvelope(x1, y1, x2, y2).Normalize()
}

// projectPoints 投影毫米坐标点
func projectPoints(p Projector, pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, pt := range pts {
		out[i].X, out[i].Y = p.Project(pt.X, pt.Y)
	}
	return out
}

// drawPaper 绘制纸张
// 入参: s 绘制表面, p 投影, paper 纸张毫米区域, border 是否绘制边框
func drawPaper(s Surface, p Projector, paper Envelope, border bool) {
	st := Style{Fill: color.White}
	if border {
		st.Stroke = paperBorder
	}
	s.DrawRect(projectBox(p, paper), st)
}

// drawItems 按层级顺序绘制图元
// 入参: s 绘制表面, p 投影, items 已排序图元, opts 绘制选项
func drawItems(s Surface, p Projector, items []*Item, opts drawOptions) {
	for _, it := range items {
		if opts.printableOnly && !it.Printable {
			continue
		}
		drawItem(s, p, it, opts)
		if opts.selected[it.Name] {
			s.DrawRect(projectBox(p, it.Box), Style{Stroke: selectionTint, LineWidth: 1})
		}
	}
}

// drawItem 绘制单个图元
func drawItem(s Surface, p Projector, it *Item, opts drawOptions) {
	lw := p.ScaleLength(it.LineWidth)
	switch it.Kind {
	case ItemRectangle:
		s.DrawRect(projectBox(p, it.Box), Style{
			Stroke:    colorOr(it.Stroke, color.Black),
			Fill:      colorOr(it.Fill, nil),
			LineWidth: lw,
		})
	case ItemLine:
		s.DrawPolyline(projectPoints(p, it.Points), Style{Stroke: colorOr(it.Stroke, color.Black), LineWidth: lw})
	case ItemMapFrame:
		box := projectBox(p, it.Box)
		s.DrawRect(box, Style{Fill: colorOr(it.Fill, mapFrameFill)})
		if g, ok := opts.grids[it.Name]; ok && it.Map.Grid != nil && it.Map.Grid.Visible {
			drawGrid(s, p, g, it.Map.Grid)
		}
		if len(it.Map.Layers) > 0 {
			_, h := s.TextSize(it.Map.Layers[0], 0)
			s.DrawText(box.LLx+h/2, box.LLy+h*1.5, it.Map.Layers[0], Style{Fill: paperBorder})
		}
		s.DrawRect(box, Style{Stroke: colorOr(it.Stroke, color.Black), LineWidth: lw})
	default:
		Logger().Warn("skip item", "name", it.Name, "kind", it.Kind)
	}
}

// drawGrid 绘制地图框网格
func drawGrid(s Surface, p Projector, g *GridOverlay, gs *GridSettings) {
	lines, err := g.Lines()
	if err != nil {
		Logger().Warn("grid", "item", g.item.Name, "err", err)
		return
	}
	st := Style{Stroke: colorOr(gs.Stroke, gridStroke), LineWidth: p.ScaleLength(gs.LineWidth)}
	for _, line := range lines {
		s.DrawPolyline(projectPoints(p, line), st)
	}
}
