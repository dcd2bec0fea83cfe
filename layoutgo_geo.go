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
)

// GeoTransformer 创建世界区域到毫米区域的变换(不翻转Y轴)
// 入参: boxGeo 世界区域, boxMM 毫米区域
// 返回: *WorldTransformer 变换器, error 错误信息
func GeoTransformer(boxGeo, boxMM Envelope) (*WorldTransformer, error) {
	return NewWorldTransformer(boxGeo, boxMM)
}

// TransformToMM 将世界矩形变换为毫米矩形
// 入参: t 变换器, boxGeo 世界矩形
// 返回: Envelope 毫米矩形, error 变换器无效时返回错误
func TransformToMM(t *WorldTransformer, boxGeo Envelope) (Envelope, error) {
	if !t.IsValid() {
		return Envelope{}, fmt.Errorf("transform to mm: %w", ErrMissingCollaborator)
	}
	return t.TransformEnvelope(boxGeo), nil
}

// ConvertToMillimeter 将世界坐标点逐个变换为毫米
// 入参: t 变换器, line 世界坐标点
// 返回: []Point 毫米坐标点, error 错误信息
func ConvertToMillimeter(t *WorldTransformer, line []Point) ([]Point, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("convert to mm: %w", ErrMissingCollaborator)
	}
	out := make([]Point, len(line))
	for i, p := range line {
		out[i].X, out[i].Y = t.System1ToSystem2(p.X, p.Y)
	}
	return out, nil
}

// AddCoordsInX 沿X轴生成加密的水平线, 步长为 gap/4
// 入参: box 区域, axisCoord 线所在Y坐标, gap 间隔
// 返回: []Point 坐标点, 首尾为区域边界
func AddCoordsInX(box Envelope, axisCoord, gap float64) []Point {
	line := []Point{{X: box.LLx, Y: axisCoord}}
	if step := gap / 4; step > 0 {
		for x := box.LLx; x < box.URx; x += step {
			line = append(line, Point{X: x, Y: axisCoord})
		}
	}
	return append(line, Point{X: box.URx, Y: axisCoord})
}

// AddCoordsInY 沿Y轴生成加密的垂直线, 步长为 gap/4
// 入参: box 区域, axisCoord 线所在X坐标, gap 间隔
// 返回: []Point 坐标点, 首尾为区域边界
func AddCoordsInY(box Envelope, axisCoord, gap float64) []Point {
	line := []Point{{X: axisCoord, Y: box.LLy}}
	if step := gap / 4; step > 0 {
		for y := box.LLy; y < box.URy; y += step {
			line = append(line, Point{X: axisCoord, Y: y})
		}
	}
	return append(line, Point{X: axisCoord, Y: box.URy})
}

// RoundNumber 四舍五入到整数, 负数向远离零的方向
func RoundNumber(value float64) int {
	if value >= 0 {
		return int(value + .5)
	}
	return int(value - .5)
}

// DecimalToDegree 将弧度值格式化为度分秒
// 入参: value 弧度, degrees 输出度, minutes 输出分, seconds 输出秒, 三者皆false时输出完整形式
// 返回: string 格式化文本
func DecimalToDegree(value float64, degrees, minutes, seconds bool) string {
	deg := math.Abs(180 * value / math.Pi)
	minute := math.Abs((deg - math.Trunc(deg)) * 60)
	sec := math.Abs((minute - math.Trunc(minute)) * 60)
	if RoundNumber(sec) >= 60 {
		minute++
		sec = 0
	}
	minute = math.Floor(minute)
	if minute >= 60 {
		minute = 0
		deg++
	}
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	if !degrees && !minutes && !seconds {
		return format(math.Floor(deg)) + "°" + format(minute) + "' " + format(sec) + "''"
	}
	var s string
	if degrees {
		s = format(math.Floor(deg))
	}
	if minutes {
		s += "°" + format(minute)
	}
	if seconds {
		s += "' " + format(sec) + "''"
	}
	return s
}

// PlanarZone 根据经纬度区域中心计算UTM带号
// 入参: latLongBox 经纬度区域(度)
// 返回: int 带号, 取值 1..60
func PlanarZone(latLongBox Envelope) int {
	longitude, _ := latLongBox.Center()
	zone := int(math.Floor((longitude+180)/6)) + 1
	return min(max(zone, 1), 60)
}
