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
	"strings"
)

// Mode 交互模式, 零值表示未设置
type Mode int

const (
	ModeNone Mode = iota + 1
	ModeSelect
	ModeSelectByBox
	ModePan
	ModeZoomIn
	ModeZoomOut
	ModeSceneZoom
	ModeRecompose
	ModePageConfig
	ModePrinter
	ModeExportToPDF
	ModeAlignLeft
	ModeAlignRight
	ModeAlignTop
	ModeAlignBottom
	ModeAlignCenterHorizontal
	ModeAlignCenterVertical
	modeCount
)

var modeNames = [...]string{
	ModeNone:                  "None",
	ModeSelect:                "Select",
	ModeSelectByBox:           "SelectByBox",
	ModePan:                   "Pan",
	ModeZoomIn:                "ZoomIn",
	ModeZoomOut:               "ZoomOut",
	ModeSceneZoom:             "SceneZoom",
	ModeRecompose:             "Recompose",
	ModePageConfig:            "PageConfig",
	ModePrinter:               "Printer",
	ModeExportToPDF:           "ExportToPDF",
	ModeAlignLeft:             "AlignLeft",
	ModeAlignRight:            "AlignRight",
	ModeAlignTop:              "AlignTop",
	ModeAlignBottom:           "AlignBottom",
	ModeAlignCenterHorizontal: "AlignCenterHorizontal",
	ModeAlignCenterVertical:   "AlignCenterVertical",
}

// IsValid 是否为已知模式
func (m Mode) IsValid() bool {
	return m >= ModeNone && m < modeCount
}

// String 模式名称
func (m Mode) String() string {
	if m.IsValid() {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Unit 长度单位
type Unit int

const (
	UnitMillimeter Unit = iota
	UnitCentimeter
	UnitInch
	UnitPoint
	UnitPixel
)

// mmPerUnit 每单位毫米数, 像素单位在上下文DPI下换算
var mmPerUnit = map[Unit]float64{
	UnitMillimeter: 1,
	UnitCentimeter: 10,
	UnitInch:       MillimetersPerInch,
	UnitPoint:      MillimetersPerInch / 72,
}

// String 单位名称
func (u Unit) String() string {
	switch u {
	case UnitMillimeter:
		return "mm"
	case UnitCentimeter:
		return "cm"
	case UnitInch:
		return "in"
	case UnitPoint:
		return "pt"
	case UnitPixel:
		return "px"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ContextObject 渲染上下文快照, 值语义, 修改通过 With* 返回新值
type ContextObject struct {
	Zoom  int
	DpiX  int
	DpiY  int
	Paper *PaperConfig
	Mode  Mode
}

// NewContextObject 创建渲染上下文
// 入参: zoom 缩放百分比, dpiX 水平DPI, dpiY 垂直DPI, paper 纸张, mode 模式
// 返回: ContextObject 渲染上下文
func NewContextObject(zoom, dpiX, dpiY int, paper *PaperConfig, mode Mode) ContextObject {
	return ContextObject{Zoom: zoom, DpiX: dpiX, DpiY: dpiY, Paper: paper, Mode: mode}
}

// IsValid 缩放与DPI均为正, 纸张与模式已设置
func (c ContextObject) IsValid() bool {
	return c.Validate() == nil
}

// Validate 校验上下文
// 返回: error 错误信息
func (c ContextObject) Validate() error {
	if c.Zoom <= 0 || c.DpiX <= 0 || c.DpiY <= 0 {
		return fmt.Errorf("context zoom=%d dpi=%dx%d: %w", c.Zoom, c.DpiX, c.DpiY, ErrDegenerateGeometry)
	}
	if c.Paper == nil {
		return fmt.Errorf("context paper: %w", ErrMissingCollaborator)
	}
	if c.Mode == 0 {
		return fmt.Errorf("context mode: %w", ErrMissingCollaborator)
	}
	if !c.Mode.IsValid() {
		return fmt.Errorf("context mode %v: %w", c.Mode, ErrUnknownEnumValue)
	}
	return nil
}

// ZoomFactor 缩放系数, 即 Zoom/100
func (c ContextObject) ZoomFactor() float64 {
	return float64(c.Zoom) / 100.0
}

// WithZoom 返回替换缩放后的上下文
func (c ContextObject) WithZoom(zoom int) ContextObject {
	c.Zoom = zoom
	return c
}

// WithDPI 返回替换DPI后的上下文
func (c ContextObject) WithDPI(dpiX, dpiY int) ContextObject {
	c.DpiX, c.DpiY = dpiX, dpiY
	return c
}

// WithMode 返回替换模式后的上下文
func (c ContextObject) WithMode(mode Mode) ContextObject {
	c.Mode = mode
	return c
}

// WithPaper 返回替换纸张后的上下文
func (c ContextObject) WithPaper(paper *PaperConfig) ContextObject {
	c.Paper = paper
	return c
}

// MM2Pixel 按水平DPI将毫米换算为整数像素(截断)
// 入参: mm 毫米
// 返回: int 像素, 上下文无效时为 InvalidPixel, error 错误信息
func (c ContextObject) MM2Pixel(mm float64) (int, error) {
	if c.DpiX <= 0 {
		return InvalidPixel, fmt.Errorf("mm2pixel dpi %d: %w", c.DpiX, ErrMissingCollaborator)
	}
	return int(MM2Pixel(mm, float64(c.DpiX))), nil
}

// Pixel2MM 按水平DPI将像素换算为毫米
// 入参: px 像素
// 返回: float64 毫米, 上下文无效时为 InvalidPixel, error 错误信息
func (c ContextObject) Pixel2MM(px float64) (float64, error) {
	if c.DpiX <= 0 {
		return InvalidPixel, fmt.Errorf("pixel2mm dpi %d: %w", c.DpiX, ErrMissingCollaborator)
	}
	return Pixel2MM(px, float64(c.DpiX)), nil
}

// ToMM 将指定单位的长度换算为毫米
// 入参: v 长度, u 单位
// 返回: float64 毫米, error 错误信息
func (c ContextObject) ToMM(v float64, u Unit) (float64, error) {
	if u == UnitPixel {
		return c.Pixel2MM(v)
	}
	f, ok := mmPerUnit[u]
	if !ok {
		return math.NaN(), fmt.Errorf("unit %v: %w", u, ErrUnknownEnumValue)
	}
	return v * f, nil
}

// FromMM 将毫米换算为指定单位
// 入参: mm 毫米, u 单位
// 返回: float64 长度, error 错误信息
func (c ContextObject) FromMM(mm float64, u Unit) (float64, error) {
	if u == UnitPixel {
		if c.DpiX <= 0 {
			return InvalidPixel, fmt.Errorf("from mm dpi %d: %w", c.DpiX, ErrMissingCollaborator)
		}
		return MM2Pixel(mm, float64(c.DpiX)), nil
	}
	f, ok := mmPerUnit[u]
	if !ok {
		return math.NaN(), fmt.Errorf("unit %v: %w", u, ErrUnknownEnumValue)
	}
	return mm / f, nil
}

// ParseUnit 解析单位名称
// 入参: s 名称
// 返回: Unit 单位, error 错误信息
func ParseUnit(s string) (Unit, error) {
	for u := UnitMillimeter; u <= UnitPixel; u++ {
		if strings.EqualFold(u.String(), strings.TrimSpace(s)) {
			return u, nil
		}
	}
	return 0, fmt.Errorf("unit %q: %w", s, ErrUnknownEnumValue)
}
