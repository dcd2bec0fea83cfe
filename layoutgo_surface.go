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

import "image/color"

// mmPerPoint 每磅毫米数
const mmPerPoint = MillimetersPerInch / 72

// Style 绘制样式, LineWidth 为设备单位, FontSize 为磅
type Style struct {
	Stroke    color.Color
	Fill      color.Color
	LineWidth float64
	FontSize  float64
}

// Surface 设备绘制表面, 坐标为设备像素, 原点在左上角, Y轴向下
type Surface interface {
	Size() (float64, float64)
	DrawLine(x1, y1, x2, y2 float64, st Style)
	DrawPolyline(pts []Point, st Style)
	DrawRect(box Envelope, st Style)
	DrawText(x, y float64, s string, st Style)
	TextSize(s string, fontSize float64) (float64, float64)
}

// TextMeasurer 文本尺寸查询
type TextMeasurer interface {
	TextSize(s string, fontSize float64) (float64, float64)
}

// Projector 将场景毫米坐标投影到设备坐标
type Projector interface {
	Project(x, y float64) (float64, float64)
	ScaleLength(v float64) float64
}
