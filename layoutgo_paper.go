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
	"strings"
)

// PaperType 纸张类型
type PaperType int

const (
	PaperLetter PaperType = iota
	PaperLegal
	PaperExecutive
	PaperA0
	PaperA1
	PaperA2
	PaperA3
	PaperA4
	PaperA5
	PaperA6
	PaperA7
	PaperA8
	PaperA9
	PaperCustom
)

// paperSizes 纸张物理尺寸(毫米), 纵向
var paperSizes = map[PaperType][2]float64{
	PaperLetter:    {215.9, 279.4},
	PaperLegal:     {215.9, 355.6},
	PaperExecutive: {184.15, 266.7},
	PaperA0:        {841, 1189},
	PaperA1:        {594, 841},
	PaperA2:        {420, 594},
	PaperA3:        {297, 420},
	PaperA4:        {210, 297},
	PaperA5:        {148, 210},
	PaperA6:        {105, 148},
	PaperA7:        {74, 105},
	PaperA8:        {52, 74},
	PaperA9:        {37, 52},
}

var paperNames = map[PaperType]string{
	PaperLetter:    "Letter",
	PaperLegal:     "Legal",
	PaperExecutive: "Executive",
	PaperA0:        "A0",
	PaperA1:        "A1",
	PaperA2:        "A2",
	PaperA3:        "A3",
	PaperA4:        "A4",
	PaperA5:        "A5",
	PaperA6:        "A6",
	PaperA7:        "A7",
	PaperA8:        "A8",
	PaperA9:        "A9",
	PaperCustom:    "Custom",
}

// String 纸张类型名称
func (t PaperType) String() string {
	if name, ok := paperNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PaperType(%d)", int(t))
}

// ParsePaperType 解析纸张类型名称, 不区分大小写
// 入参: s 名称
// 返回: PaperType 纸张类型, error 错误信息
func ParsePaperType(s string) (PaperType, error) {
	for t, name := range paperNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("paper type %q: %w", s, ErrUnknownEnumValue)
}

// Orientation 纸张方向
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// String 方向名称
func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "Portrait"
	case Landscape:
		return "Landscape"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation 解析方向名称, 不区分大小写
// 入参: s 名称
// 返回: Orientation 方向, error 错误信息
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	}
	return 0, fmt.Errorf("orientation %q: %w", s, ErrUnknownEnumValue)
}

// PaperConfig 纸张配置
type PaperConfig struct {
	paperType    PaperType
	orientation  Orientation
	customWidth  float64
	customHeight float64
}

// NewPaperConfig 创建纸张配置
// 入参: t 纸张类型, o 方向
// 返回: *PaperConfig 纸张配置
func NewPaperConfig(t PaperType, o Orientation) *PaperConfig {
	return &PaperConfig{paperType: t, orientation: o}
}

// SetPaperType 设置纸张类型
func (p *PaperConfig) SetPaperType(t PaperType) {
	p.paperType = t
}

// PaperType 获取纸张类型
func (p *PaperConfig) PaperType() PaperType {
	return p.paperType
}

// SetPaperOrientation 设置纸张方向
func (p *PaperConfig) SetPaperOrientation(o Orientation) {
	p.orientation = o
}

// PaperOrientation 获取纸张方向
func (p *PaperConfig) PaperOrientation() Orientation {
	return p.orientation
}

// SetCustomSize 设置自定义尺寸(毫米), 仅在 PaperCustom 下生效, 不校验正负
// 入参: width 宽度, height 高度
func (p *PaperConfig) SetCustomSize(width, height float64) {
	p.customWidth = width
	p.customHeight = height
}

// PaperSize 获取纸张尺寸(毫米), 横向时交换宽高
// 未知类型返回 (0, 0), 调用方需自行判断
// 返回: float64 宽度, float64 高度
func (p *PaperConfig) PaperSize() (float64, float64) {
	var w, h float64
	if p.paperType == PaperCustom {
		w, h = p.customWidth, p.customHeight
	} else if size, ok := paperSizes[p.paperType]; ok {
		w, h = size[0], size[1]
	}
	if p.orientation == Landscape {
		w, h = h, w
	}
	return w, h
}

// Size 获取纸张尺寸并校验
// 返回: float64 宽度, float64 高度, error 未知类型或非正尺寸
func (p *PaperConfig) Size() (float64, float64, error) {
	if p == nil {
		return 0, 0, fmt.Errorf("paper config: %w", ErrMissingCollaborator)
	}
	if _, ok := paperNames[p.paperType]; !ok {
		return 0, 0, fmt.Errorf("paper %v: %w", p.paperType, ErrUnknownEnumValue)
	}
	if p.orientation != Portrait && p.orientation != Landscape {
		return 0, 0, fmt.Errorf("paper %v: %w", p.orientation, ErrUnknownEnumValue)
	}
	w, h := p.PaperSize()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("paper %v %gx%g: %w", p.paperType, w, h, ErrDegenerateGeometry)
	}
	return w, h, nil
}

// Envelope 获取以原点为左下角的纸张区域
// 返回: Envelope 纸张区域, error 错误信息
func (p *PaperConfig) Envelope() (Envelope, error) {
	w, h, err := p.Size()
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{URx: w, URy: h}, nil
}

// Clone 复制纸张配置
func (p *PaperConfig) Clone() *PaperConfig {
	c := *p
	return &c
}
