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

// ItemKind 图元类型
type ItemKind int

const (
	ItemRectangle ItemKind = iota + 1
	ItemLine
	ItemMapFrame
)

// String 图元类型名称
func (k ItemKind) String() string {
	switch k {
	case ItemRectangle:
		return "rectangle"
	case ItemLine:
		return "line"
	case ItemMapFrame:
		return "map"
	}
	return fmt.Sprintf("ItemKind(%d)", int(k))
}

// ParseItemKind 解析图元类型名称
// 入参: s 名称
// 返回: ItemKind 图元类型, error 错误信息
func ParseItemKind(s string) (ItemKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect":
		return ItemRectangle, nil
	case "line":
		return ItemLine, nil
	case "map", "mapframe":
		return ItemMapFrame, nil
	}
	return 0, fmt.Errorf("item kind %q: %w", s, ErrUnknownEnumValue)
}

// Item 场景图元, Kind 决定哪些字段有效
type Item struct {
	Kind      ItemKind
	Name      string
	Box       Envelope
	Points    []Point
	ZOrder    int
	Printable bool
	Stroke    string
	Fill      string
	LineWidth float64
	Map       *MapFrame
}

// MapFrame 地图框, 将世界区域映射到图元的毫米区域
type MapFrame struct {
	Layers   []string
	WorldBox Envelope
	SRID     int
	Grid     *GridSettings
}

// NewRectangle 创建矩形图元
// 入参: name 名称, box 毫米区域
// 返回: *Item 图元
func NewRectangle(name string, box Envelope) *Item {
	return &Item{Kind: ItemRectangle, Name: name, Box: box.Normalize(), Printable: true}
}

// NewLine 创建折线图元
// 入参: name 名称, points 毫米坐标点
// 返回: *Item 图元
func NewLine(name string, points ...Point) *Item {
	it := &Item{Kind: ItemLine, Name: name, Points: append([]Point(nil), points...), Printable: true}
	it.Box = pointsEnvelope(it.Points)
	return it
}

// NewMapFrame 创建地图框图元
// 入参: name 名称, box 毫米区域, world 世界区域
// 返回: *Item 图元
func NewMapFrame(name string, box, world Envelope) *Item {
	return &Item{
		Kind:      ItemMapFrame,
		Name:      name,
		Box:       box.Normalize(),
		Printable: true,
		Map:       &MapFrame{WorldBox: world.Normalize()},
	}
}

// Validate 校验图元
// 返回: error 错误信息
func (it *Item) Validate() error {
	if it.Name == "" {
		return fmt.Errorf("item without name: %w", ErrMissingCollaborator)
	}
	switch it.Kind {
	case ItemRectangle:
	case ItemLine:
		if len(it.Points) < 2 {
			return fmt.Errorf("line %q needs 2 points: %w", it.Name, ErrDegenerateGeometry)
		}
		return nil
	case ItemMapFrame:
		if it.Map == nil {
			return fmt.Errorf("map %q: %w", it.Name, ErrMissingCollaborator)
		}
		if !it.Map.WorldBox.IsValid() {
			return fmt.Errorf("map %q world %v: %w", it.Name, it.Map.WorldBox, ErrDegenerateGeometry)
		}
	default:
		return fmt.Errorf("item %q kind %v: %w", it.Name, it.Kind, ErrUnknownEnumValue)
	}
	if !it.Box.IsValid() {
		return fmt.Errorf("item %q box %v: %w", it.Name, it.Box, ErrDegenerateGeometry)
	}
	return nil
}

// MoveBy 平移图元
// 入参: dx X偏移(毫米), dy Y偏移(毫米)
func (it *Item) MoveBy(dx, dy float64) {
	it.Box = it.Box.Translate(dx, dy)
	for i := range it.Points {
		it.Points[i].X += dx
		it.Points[i].Y += dy
	}
}

// Clone 深拷贝图元
func (it *Item) Clone() *Item {
	c := *it
	c.Points = append([]Point(nil), it.Points...)
	if it.Map != nil {
		m := *it.Map
		m.Layers = append([]string(nil), it.Map.Layers...)
		if it.Map.Grid != nil {
			g := *it.Map.Grid
			m.Grid = &g
		}
		c.Map = &m
	}
	return &c
}

// pointsEnvelope 计算点集外包矩形
func pointsEnvelope(pts []Point) Envelope {
	if len(pts) == 0 {
		return Envelope{}
	}
	e := Envelope{LLx: pts[0].X, LLy: pts[0].Y, URx: pts[0].X, URy: pts[0].Y}
	for _, p := range pts[1:] {
		e.LLx = min(e.LLx, p.X)
		e.LLy = min(e.LLy, p.Y)
		e.URx = max(e.URx, p.X)
		e.URy = max(e.URy, p.Y)
	}
	return e
}
