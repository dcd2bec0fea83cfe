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
	"strconv"
	"strings"
)

// Envelope 矩形区域, 以左下角与右上角表示
type Envelope struct {
	LLx, LLy, URx, URy float64
}

// NewEnvelope 创建矩形区域
// 入参: llx 左下X, lly 左下Y, urx 右上X, ury 右上Y
// 返回: Envelope 矩形区域
func NewEnvelope(llx, lly, urx, ury float64) Envelope {
	return Envelope{LLx: llx, LLy: lly, URx: urx, URy: ury}
}

// ParseEnvelope 解析 "llx lly urx ury" 形式的字符串
// 入参: s 字符串, 分隔符可为空格或逗号
// 返回: Envelope 矩形区域, error 错误信息
func ParseEnvelope(s string) (Envelope, error) {
	floats := parseFloats(s)
	if len(floats) != 4 {
		return Envelope{}, fmt.Errorf("envelope %q: want 4 numbers, got %d", s, len(floats))
	}
	return Envelope{LLx: floats[0], LLy: floats[1], URx: floats[2], URy: floats[3]}, nil
}

// Width 宽度
func (e Envelope) Width() float64 {
	return e.URx - e.LLx
}

// Height 高度
func (e Envelope) Height() float64 {
	return e.URy - e.LLy
}

// Center 中心点
// 返回: float64 中心X, float64 中心Y
func (e Envelope) Center() (float64, float64) {
	return (e.LLx + e.URx) / 2, (e.LLy + e.URy) / 2
}

// IsValid 判断是否为非退化矩形
// 返回: bool 宽高均为正且坐标有限
func (e Envelope) IsValid() bool {
	return e.IsFinite() && e.URx > e.LLx && e.URy > e.LLy
}

// IsFinite 判断四个坐标是否均为有限值
func (e Envelope) IsFinite() bool {
	for _, v := range [...]float64{e.LLx, e.LLy, e.URx, e.URy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Normalize 交换坐标使左下角不大于右上角
// 返回: Envelope 规范化后的矩形
func (e Envelope) Normalize() Envelope {
	if e.LLx > e.URx {
		e.LLx, e.URx = e.URx, e.LLx
	}
	if e.LLy > e.URy {
		e.LLy, e.URy = e.URy, e.LLy
	}
	return e
}

// Contains 判断点是否位于矩形内(含边界)
func (e Envelope) Contains(x, y float64) bool {
	return x >= e.LLx && x <= e.URx && y >= e.LLy && y <= e.URy
}

// Intersects 判断两个矩形是否相交
func (e Envelope) Intersects(o Envelope) bool {
	return e.LLx <= o.URx && o.LLx <= e.URx && e.LLy <= o.URy && o.LLy <= e.URy
}

// Union 合并两个矩形, 无效矩形被忽略
// 入参: o 另一个矩形
// 返回: Envelope 外包矩形
func (e Envelope) Union(o Envelope) Envelope {
	if !e.IsValid() {
		return o
	}
	if !o.IsValid() {
		return e
	}
	return Envelope{
		LLx: math.Min(e.LLx, o.LLx),
		LLy: math.Min(e.LLy, o.LLy),
		URx: math.Max(e.URx, o.URx),
		URy: math.Max(e.URy, o.URy),
	}
}

// Extend 合并两个矩形, 宽或高为零的矩形(如水平线)同样计入
// 入参: o 另一个矩形
// 返回: Envelope 规范化后的外包矩形
func (e Envelope) Extend(o Envelope) Envelope {
	e, o = e.Normalize(), o.Normalize()
	return Envelope{
		LLx: math.Min(e.LLx, o.LLx),
		LLy: math.Min(e.LLy, o.LLy),
		URx: math.Max(e.URx, o.URx),
		URy: math.Max(e.URy, o.URy),
	}
}

// Translate 平移矩形
// 入参: dx X偏移, dy Y偏移
// 返回: Envelope 平移后的矩形
func (e Envelope) Translate(dx, dy float64) Envelope {
	return Envelope{LLx: e.LLx + dx, LLy: e.LLy + dy, URx: e.URx + dx, URy: e.URy + dy}
}

// String 输出 "llx lly urx ury"
func (e Envelope) String() string {
	parts := make([]string, 0, 4)
	for _, v := range [...]float64{e.LLx, e.LLy, e.URx, e.URy} {
		parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}

// Point 二维点
type Point struct {
	X, Y float64
}

// parseFloats 解析浮点数数组
// 入参: s 字符串
// 返回: []float64 浮点数数组
func parseFloats(s string) []float64 {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", " ")
	parts := strings.Fields(s)
	result := make([]float64, 0, len(parts))
	for _, p := range parts {
		if v, err := strconv.ParseFloat(p, 64); err == nil {
			result = append(result, v)
		}
	}
	return result
}
