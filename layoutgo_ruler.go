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
	"image/color"
	"math"
	"strconv"
)

// maxRulerMarks 单次计算的最大刻度数
const maxRulerMarks = 100000

// RulerOrientation 标尺方向
type RulerOrientation int

const (
	RulerHorizontal RulerOrientation = iota
	RulerVertical
)

// String 标尺方向名称
func (o RulerOrientation) String() string {
	if o == RulerVertical {
		return "vertical"
	}
	return "horizontal"
}

// TickKind 刻度类型
type TickKind int

const (
	TickNone TickKind = iota
	TickMinor
	TickMedium
	TickMajor
)

// String 刻度类型名称
func (k TickKind) String() string {
	switch k {
	case TickMinor:
		return "minor"
	case TickMedium:
		return "medium"
	case TickMajor:
		return "major"
	}
	return "none"
}

// Mark 标尺刻度, Length 为场景毫米
type Mark struct {
	Pos    int
	Kind   TickKind
	Length float64
	Label  string
	LabelW float64
	LabelH float64
}

// Ruler 标尺, 刻度长度与带宽按 100% 缩放时的毫米给出
// Unit 为标注显示单位, 刻度位置始终按毫米计算
type Ruler struct {
	Orientation     RulerOrientation
	BlockSize       int
	MiddleBlockSize int
	SmallBlockSize  int
	LongLine        float64
	MediumLine      float64
	SmallLine       float64
	Height          float64
	FontSize        float64
	Background      color.Color
	Unit            Unit
	ctx             ContextObject
	zoomFactor      float64
}

// NewRuler 创建默认标尺, 分块 10/5/1 毫米
// 入参: o 方向
// 返回: *Ruler 标尺
func NewRuler(o RulerOrientation) *Ruler {
	return &Ruler{
		Orientation:     o,
		BlockSize:       10,
		MiddleBlockSize: 5,
		SmallBlockSize:  1,
		LongLine:        3.5,
		MediumLine:      2.25,
		SmallLine:       1.25,
		Height:          6,
		FontSize:        6,
		Background:      color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
		zoomFactor:      1,
	}
}

// ContextChanged 实现 ContextListener
func (r *Ruler) ContextChanged(ctx ContextObject) {
	r.ctx = ctx
	if f := ctx.ZoomFactor(); f > 0 {
		r.zoomFactor = f
	}
}

// ZoomFactor 当前缩放系数
func (r *Ruler) ZoomFactor() float64 {
	return r.zoomFactor
}

// ClassifyTick 按主、中、小分块优先级判定刻度类型
// 入参: pos 毫米位置
// 返回: TickKind 刻度类型
func (r *Ruler) ClassifyTick(pos int) TickKind {
	switch {
	case r.BlockSize > 0 && pos%r.BlockSize == 0:
		return TickMajor
	case r.MiddleBlockSize > 0 && pos%r.MiddleBlockSize == 0:
		return TickMedium
	case r.SmallBlockSize > 0 && pos%r.SmallBlockSize == 0:
		return TickMinor
	}
	return TickNone
}

// TickLength 刻度长度(场景毫米), 除以缩放系数以保持屏幕长度不变
func (r *Ruler) TickLength(k TickKind) float64 {
	var l float64
	switch k {
	case TickMajor:
		l = r.LongLine
	case TickMedium:
		l = r.MediumLine
	case TickMinor:
		l = r.SmallLine
	}
	return l / r.zoomFactor
}

// Marks 计算可见区域内的刻度, 只在主刻度处生成标注
// 入参: visible 可见场景区域(毫米), m 文本测量, 可为空
// 返回: []Mark 刻度, error 错误信息
func (r *Ruler) Marks(visible Envelope, m TextMeasurer) ([]Mark, error) {
	visible = visible.Normalize()
	lo, hi := visible.LLx, visible.URx
	if r.Orientation == RulerVertical {
		lo, hi = visible.LLy, visible.URy
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("ruler range %v: %w", visible, ErrDegenerateGeometry)
	}
	first, last := int(math.Ceil(lo)), int(math.Floor(hi))
	if last-first > maxRulerMarks {
		return nil, fmt.Errorf("ruler range %d..%d too wide: %w", first, last, ErrDegenerateGeometry)
	}
	var marks []Mark
	for pos := first; pos <= last; pos++ {
		k := r.ClassifyTick(pos)
		if k == TickNone {
			continue
		}
		mk := Mark{Pos: pos, Kind: k, Length: r.TickLength(k)}
		if k == TickMajor {
			label, err := r.label(pos)
			if err != nil {
				return nil, err
			}
			mk.Label = label
			if m != nil {
				mk.LabelW, mk.LabelH = m.TextSize(mk.Label, r.FontSize)
			}
		}
		marks = append(marks, mk)
	}
	return marks, nil
}

// label 将毫米位置格式化为显示单位的标注, 保留两位小数
func (r *Ruler) label(pos int) (string, error) {
	if r.Unit == UnitMillimeter {
		return strconv.Itoa(pos), nil
	}
	v, err := r.ctx.FromMM(float64(pos), r.Unit)
	if err != nil {
		return "", fmt.Errorf("ruler label: %w", err)
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64), nil
}

// LabelOrigin 标注文本基线起点, 相对刻度居中
// 入参: mk 刻度, tickX, tickY 刻度在设备上的位置, band 标尺带宽(像素)
// 返回: float64 X, float64 Y
func (r *Ruler) LabelOrigin(mk Mark, tickX, tickY, band float64) (float64, float64) {
	if r.Orientation == RulerVertical {
		return 1, tickY + mk.LabelH/2
	}
	return tickX - mk.LabelW/2, mk.LabelH
}

// Draw 在设备表面绘制标尺
// 入参: s 绘制表面, p 场景到设备的投影, visible 可见场景区域
// 返回: error 错误信息
func (r *Ruler) Draw(s Surface, p Projector, visible Envelope) error {
	marks, err := r.Marks(visible, s)
	if err != nil {
		return err
	}
	w, h := s.Size()
	band := p.ScaleLength(r.Height / r.zoomFactor)
	tick := Style{Stroke: color.Black, LineWidth: 1}
	label := Style{Fill: color.Black, FontSize: r.FontSize}
	if r.Orientation == RulerVertical {
		s.DrawRect(NewEnvelope(0, 0, band, h), Style{Fill: r.Background, Stroke: paperBorder})
	} else {
		s.DrawRect(NewEnvelope(0, 0, w, band), Style{Fill: r.Background, Stroke: paperBorder})
	}
	for _, mk := range marks {
		l := p.ScaleLength(mk.Length)
		if r.Orientation == RulerVertical {
			_, y := p.Project(visible.LLx, float64(mk.Pos))
			s.DrawLine(band, y, band-l, y, tick)
			if mk.Label != "" {
				lx, ly := r.LabelOrigin(mk, 0, y, band)
				s.DrawText(lx, ly, mk.Label, label)
			}
			continue
		}
		x, _ := p.Project(float64(mk.Pos), visible.URy)
		s.DrawLine(x, band, x, band-l, tick)
		if mk.Label != "" {
			lx, ly := r.LabelOrigin(mk, x, 0, band)
			s.DrawText(lx, ly, mk.Label, label)
		}
	}
	return nil
}

// CalculateRulerZoomFactor 按纸张与画布高度计算标尺比例
// 入参: paper 纸张, canvasHeightPx 画布高度像素
// 返回: float64 纸张比例, float64 视图比例, error 错误信息
func CalculateRulerZoomFactor(paper *PaperConfig, canvasHeightPx float64) (float64, float64, error) {
	w, h, err := paper.Size()
	if err != nil {
		return 0, 0, err
	}
	if !(canvasHeightPx > 0) {
		return 0, 0, fmt.Errorf("canvas height %g: %w", canvasHeightPx, ErrDegenerateGeometry)
	}
	page := 210.0
	if paper.PaperOrientation() != Portrait {
		page = 297
	}
	factor := math.Trunc(math.Max(w, h) / page)
	if factor < 1 {
		factor = 1
	}
	view := 733 / (0.5 * canvasHeightPx)
	if view < 1 {
		view = 1
	}
	return factor, view, nil
}
