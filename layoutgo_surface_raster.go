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
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	rasterFontOnce   sync.Once
	rasterFontSource *text.FontSource
	rasterFontErr    error
)

// rasterFont 获取光栅标注字体源
func rasterFont() (*text.FontSource, error) {
	rasterFontOnce.Do(func() {
		rasterFontSource, rasterFontErr = text.NewFontSource(goregular.TTF)
	})
	return rasterFontSource, rasterFontErr
}

// rasterSurface 基于光栅画布的绘制表面
type rasterSurface struct {
	dc  *gg.Context
	dpi int
}

// newRasterSurface 创建光栅绘制表面
// 入参: wPx 宽度像素, hPx 高度像素, dpi 设备分辨率
// 返回: *rasterSurface 绘制表面
func newRasterSurface(wPx, hPx, dpi int) *rasterSurface {
	return &rasterSurface{dc: gg.NewContext(wPx, hPx), dpi: dpi}
}

// Size 获取表面像素尺寸
func (s *rasterSurface) Size() (float64, float64) {
	return float64(s.dc.Width()), float64(s.dc.Height())
}

// Clear 填充背景色
func (s *rasterSurface) Clear(bg color.Color) {
	w, h := s.Size()
	s.dc.DrawRectangle(0, 0, w, h)
	s.dc.SetColor(bg)
	s.logErr("fill", s.dc.Fill())
}

// DrawLine 绘制线段
func (s *rasterSurface) DrawLine(x1, y1, x2, y2 float64, st Style) {
	s.dc.DrawLine(x1, y1, x2, y2)
	s.stroke(st)
}

// DrawPolyline 绘制折线
func (s *rasterSurface) DrawPolyline(pts []Point, st Style) {
	if len(pts) < 2 {
		return
	}
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		s.dc.LineTo(pt.X, pt.Y)
	}
	s.stroke(st)
}

// DrawRect 绘制矩形
func (s *rasterSurface) DrawRect(box Envelope, st Style) {
	box = box.Normalize()
	if st.Fill != nil {
		s.dc.DrawRectangle(box.LLx, box.LLy, box.Width(), box.Height())
		s.dc.SetColor(st.Fill)
		s.logErr("fill", s.dc.Fill())
	}
	if st.Stroke != nil {
		s.dc.DrawRectangle(box.LLx, box.LLy, box.Width(), box.Height())
		s.stroke(st)
	}
}

// DrawText 绘制文本, 坐标为左侧基线位置
func (s *rasterSurface) DrawText(x, y float64, str string, st Style) {
	if str == "" || !s.setFont(st.FontSize) {
		return
	}
	s.dc.SetColor(colorOrDefault(st.Fill, color.Black))
	s.dc.DrawString(str, x, y)
}

// TextSize 测量文本像素尺寸
func (s *rasterSurface) TextSize(str string, fontSize float64) (float64, float64) {
	if !s.setFont(fontSize) {
		return 0, 0
	}
	return s.dc.MeasureString(str)
}

// Image 获取渲染结果
func (s *rasterSurface) Image() image.Image {
	s.logErr("flush", s.dc.FlushGPU())
	return s.dc.Image()
}

// EncodePNG 编码为PNG
func (s *rasterSurface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// Close 释放画布资源
func (s *rasterSurface) Close() error {
	return s.dc.Close()
}

func (s *rasterSurface) setFont(sizePt float64) bool {
	src, err := rasterFont()
	if err != nil {
		Logger().Warn("raster font", "err", err)
		return false
	}
	s.dc.SetFont(src.Face(fontSizeOr(sizePt) * float64(s.dpi) / 72))
	return true
}

func (s *rasterSurface) stroke(st Style) {
	w := st.LineWidth
	if w <= 0 {
		w = 1
	}
	s.dc.SetLineWidth(w)
	s.dc.SetColor(colorOrDefault(st.Stroke, color.Black))
	s.logErr("stroke", s.dc.Stroke())
}

func (s *rasterSurface) logErr(op string, err error) {
	if err != nil {
		Logger().Debug("raster draw", "op", op, "err", err)
	}
}
