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
	"strconv"
	"strings"
)

// parseColor 解析颜色字符串
// 入参: val 颜色值, 支持 "R G B"、"R G B A"、"#RRGGBB" 与 "#RGB"
// 返回: color.Color 颜色对象, 空串返回nil
func parseColor(val string) (color.Color, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil, nil
	}
	if strings.HasPrefix(val, "#") {
		return parseHexColor(val)
	}
	parts := strings.Fields(strings.ReplaceAll(val, ",", " "))
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid color %q", val)
	}
	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(parts) && i < 4; i++ {
		v, err := strconv.ParseUint(parts[i], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", val, err)
		}
		rgba[i] = uint8(v)
	}
	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}

// parseHexColor 解析 "#RRGGBB" 或 "#RGB" 颜色
// 入参: hex 颜色值
// 返回: color.Color 颜色对象, error 错误信息
func parseHexColor(hex string) (color.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid hex color: #%s (expected 3 or 6 hex digits)", hex)
	}
	var rgb [3]uint8
	for i := range 3 {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex color: #%s: %w", hex, err)
		}
		rgb[i] = uint8(v)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

// colorOr 解析颜色, 失败或为空时使用默认值
func colorOr(val string, def color.Color) color.Color {
	c, err := parseColor(val)
	if err != nil {
		Logger().Warn("invalid color, using default", "value", val, "err", err)
		return def
	}
	if c == nil {
		return def
	}
	return c
}

// colorOrDefault 颜色为空时返回默认颜色
func colorOrDefault(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}
