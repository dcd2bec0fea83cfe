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
	"github.com/tdewolff/canvas"
)

// canvasSurface 基于矢量画布的绘制表面, 像素按 dpmm 换算为毫米
type canvasSurface struct {
	c     *canvas.Canvas
	ctx   *canvas.Context
	dpmm  float64
	wPx   float64
	hPx   float64
	fonts *labelFonts
}

// newCanvasSurface 创建矢量绘制表面
// 入参: wPx 宽度像素, hPx 高度像素, dpi 设备分辨率, fonts 标注字体
// 返回: *canvasSurface 绘制表面
func newCanvasSurface(wPx, hPx float64, dpi int, fonts *labelFonts) *canvasSurface {
	dpmm := float64(dpi) / MillimetersPerInch
	c := canvas.New(wPx/dpmm, hPx/dpmm)
	if fonts == nil {
		fonts = newLabelFonts("", nil, nil)
	}
	return &canvasSurface{c: c, ctx: canvas.NewContext(c), dpmm: dpmm, wPx: wPx, hPx: hPx, fonts: fonts}
}

// mm 设备像素转画布毫米坐标
func (s *canvasSurface) mm(x, y float64) (float64, float64) {
	return x / s.dpmm, s.c.H - y/s.dpmm
}

// Size 获取表面像素尺寸
func (s *canvasSurface) Size() (float64, float64) {
	return s.wPx, s.hPx
}

// DrawLine 绘制线段
func (s *canvasSurface) DrawLine(x1, y1, x2, y2 float64, st Style) {
	s.DrawPolyline([]Point{{X: x1, Y: y1}, {X: x2, Y: y2}}, st)
}

// DrawPolyline 绘制折线
func (s *canvasSurface) DrawPolyline(pts []Point, st Style) {
	if len(pts) < 2 {
		return
	}
	p := &canvas.Path{}
	for i, pt := range pts {
		x, y := s.mm(pt.X, pt.Y)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	s.ctx.Push()
	s.ctx.SetFillColor(canvas.Transparent)
	s.ctx.SetStrokeColor(colorOrDefault(st.Stroke, canvas.Black))
	s.ctx.SetStrokeWidth(s.strokeWidth(st))
	s.ctx.DrawPath(0, 0, p)
	s.ctx.Pop()
}

// DrawRect 绘制矩形
func (s *canvasSurface) DrawRect(box Envelope, st Style) {
	box = box.Normalize()
	x, y := s.mm(box.LLx, box.URy)
	w, h := box.Width()/s.dpmm, box.Height()/s.dpmm
	s.ctx.Push()
	if st.Fill != nil {
		s.ctx.SetFillColor(st.Fill)
	} else {
		s.ctx.SetFillColor(canvas.Transparent)
	}
	if st.Stroke != nil {
		s.ctx.SetStrokeColor(st.Stroke)
		s.ctx.SetStrokeWidth(s.strokeWidth(st))
	} else {
		s.ctx.SetStrokeColor(canvas.Transparent)
	}
	s.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
	s.ctx.Pop()
}

// DrawText 绘制文本, 坐标为左侧基线位置
func (s *canvasSurface) DrawText(x, y float64, str string, st Style) {
	if str == "" {
		return
	}
	face := s.fonts.face(fontSizeOr(st.FontSize), colorOrDefault(st.Fill, canvas.Black))
	mx, my := s.mm(x, y)
	s.ctx.DrawText(mx, my, canvas.NewTextLine(face, str, canvas.Left))
}

// TextSize 测量文本像素尺寸
func (s *canvasSurface) TextSize(str string, fontSize float64) (float64, float64) {
	size := fontSizeOr(fontSize)
	face := s.fonts.face(size, canvas.Black)
	return face.TextWidth(str) * s.dpmm, size * mmPerPoint * s.dpmm
}

func (s *canvasSurface) strokeWidth(st Style) float64 {
	if st.LineWidth <= 0 {
		return 1 / s.dpmm
	}
	return st.LineWidth / s.dpmm
}

// Canvas 获取底层画布
func (s *canvasSurface) Canvas() *canvas.Canvas {
	return s.c
}

// fontSizeOr 字号缺省为 8 磅
func fontSizeOr(size float64) float64 {
	if size <= 0 {
		return 8
	}
	return size
}
