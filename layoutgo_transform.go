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

import "fmt"

// MillimetersPerInch 每英寸毫米数
const MillimetersPerInch = 25.4

// InvalidPixel 无法换算时返回的像素值
const InvalidPixel = -1

// WorldTransformer 系统1(世界或毫米)与系统2(设备或毫米)之间的仿射变换
// 零值无效, 需通过 SetTransformationParameters 初始化
type WorldTransformer struct {
	s1, s2     Envelope
	scaleX     float64
	scaleY     float64
	translateX float64
	translateY float64
	mirroring  bool
	valid      bool
}

// NewWorldTransformer 创建系统1到系统2的变换
// 入参: system1 系统1区域, system2 系统2区域
// 返回: *WorldTransformer 变换器, error 任一区域退化时返回 ErrDegenerateGeometry
func NewWorldTransformer(system1, system2 Envelope) (*WorldTransformer, error) {
	t := &WorldTransformer{}
	if err := t.SetTransformationParameters(system1, system2); err != nil {
		return nil, err
	}
	return t, nil
}

// NewDeviceTransformer 创建世界区域到以原点为起点的设备区域的变换
// 入参: llx, lly, urx, ury 世界区域, width 设备宽度, height 设备高度
// 返回: *WorldTransformer 变换器, error 错误信息
func NewDeviceTransformer(llx, lly, urx, ury, width, height float64) (*WorldTransformer, error) {
	return NewWorldTransformer(NewEnvelope(llx, lly, urx, ury), NewEnvelope(0, 0, width, height))
}

// SetTransformationParameters 设置变换参数
// 入参: system1 系统1区域, system2 系统2区域
// 返回: error 任一区域退化时返回 ErrDegenerateGeometry, 此时变换器不可用
func (t *WorldTransformer) SetTransformationParameters(system1, system2 Envelope) error {
	t.valid = false
	if !system1.IsValid() {
		return fmt.Errorf("system1 box %v: %w", system1, ErrDegenerateGeometry)
	}
	if !system2.IsValid() {
		return fmt.Errorf("system2 box %v: %w", system2, ErrDegenerateGeometry)
	}
	t.s1, t.s2 = system1, system2
	t.scaleX = system2.Width() / system1.Width()
	t.scaleY = system2.Height() / system1.Height()
	t.translateX = system2.LLx - system1.LLx*t.scaleX
	t.translateY = system2.LLy - system1.LLy*t.scaleY
	t.valid = true
	return nil
}

// SetMirroring 设置是否在系统2内翻转Y轴
func (t *WorldTransformer) SetMirroring(mirror bool) {
	t.mirroring = mirror
}

// IsMirroring 是否翻转Y轴
func (t *WorldTransformer) IsMirroring() bool {
	return t.mirroring
}

// IsValid 变换参数是否有效
func (t *WorldTransformer) IsValid() bool {
	return t != nil && t.valid
}

// System1ToSystem2 系统1坐标转系统2坐标
// 入参: wx X坐标, wy Y坐标
// 返回: float64 系统2 X, float64 系统2 Y
func (t *WorldTransformer) System1ToSystem2(wx, wy float64) (float64, float64) {
	dx := t.scaleX*wx + t.translateX
	dy := t.scaleY*wy + t.translateY
	if t.mirroring {
		dy = t.s2.LLy + t.s2.URy - dy
	}
	return dx, dy
}

// System2ToSystem1 系统2坐标转系统1坐标, System1ToSystem2 的逆变换
// 入参: dx X坐标, dy Y坐标
// 返回: float64 系统1 X, float64 系统1 Y
func (t *WorldTransformer) System2ToSystem1(dx, dy float64) (float64, float64) {
	if t.mirroring {
		dy = t.s2.LLy + t.s2.URy - dy
	}
	return (dx - t.translateX) / t.scaleX, (dy - t.translateY) / t.scaleY
}

// World2Device 世界坐标转设备坐标
func (t *WorldTransformer) World2Device(wx, wy float64) (float64, float64) {
	return t.System1ToSystem2(wx, wy)
}

// Device2World 设备坐标转世界坐标
func (t *WorldTransformer) Device2World(px, py float64) (float64, float64) {
	return t.System2ToSystem1(px, py)
}

// Project 实现 Projector, 等同于 World2Device
func (t *WorldTransformer) Project(x, y float64) (float64, float64) {
	return t.System1ToSystem2(x, y)
}

// ScaleLength 实现 Projector, 按X方向比例换算长度
func (t *WorldTransformer) ScaleLength(v float64) float64 {
	return v * t.scaleX
}

// TransformEnvelope 变换矩形的两个角点并规范化Y方向
// 入参: box 系统1矩形
// 返回: Envelope 系统2矩形
func (t *WorldTransformer) TransformEnvelope(box Envelope) Envelope {
	px1, py1 := t.System1ToSystem2(box.LLx, box.LLy)
	px2, py2 := t.System1ToSystem2(box.URx, box.URy)
	if py1 > py2 {
		py1, py2 = py2, py1
	}
	return Envelope{LLx: px1, LLy: py1, URx: px2, URy: py2}
}

// InverseEnvelope 将系统2矩形变换回系统1并规范化Y方向
// 入参: box 系统2矩形
// 返回: Envelope 系统1矩形
func (t *WorldTransformer) InverseEnvelope(box Envelope) Envelope {
	x1, y1 := t.System2ToSystem1(box.LLx, box.LLy)
	x2, y2 := t.System2ToSystem1(box.URx, box.URy)
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Envelope{LLx: x1, LLy: y1, URx: x2, URy: y2}
}

// ScaleX X方向比例
func (t *WorldTransformer) ScaleX() float64 { return t.scaleX }

// ScaleY Y方向比例
func (t *WorldTransformer) ScaleY() float64 { return t.scaleY }

// TranslateX X方向平移
func (t *WorldTransformer) TranslateX() float64 { return t.translateX }

// TranslateY Y方向平移
func (t *WorldTransformer) TranslateY() float64 { return t.translateY }

// System1 系统1区域
func (t *WorldTransformer) System1() Envelope { return t.s1 }

// System2 系统2区域
func (t *WorldTransformer) System2() Envelope { return t.s2 }

// MM2Pixel 毫米转像素
// 入参: mm 毫米, dpi 设备DPI
// 返回: float64 像素
func MM2Pixel(mm, dpi float64) float64 {
	return mm / MillimetersPerInch * dpi
}

// Pixel2MM 像素转毫米
// 入参: px 像素, dpi 设备DPI
// 返回: float64 毫米
func Pixel2MM(px, dpi float64) float64 {
	return px / dpi * MillimetersPerInch
}
