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
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// PaperProperties 模板中的纸张属性, 宽高为按方向的毫米尺寸
type PaperProperties struct {
	Type        string  `json:"type"`
	Orientation string  `json:"orientation"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

// GridProperties 模板中的网格属性
type GridProperties struct {
	Gap       float64 `json:"gap"`
	LineWidth float64 `json:"line_width,omitempty"`
	Stroke    string  `json:"stroke,omitempty"`
	Visible   bool    `json:"visible"`
}

// MapProperties 模板中的地图框属性
type MapProperties struct {
	Layers []string        `json:"layers,omitempty"`
	World  [4]float64      `json:"world"`
	SRID   int             `json:"srid,omitempty"`
	Grid   *GridProperties `json:"grid,omitempty"`
}

// ItemProperties 模板中的图元属性
type ItemProperties struct {
	Kind      string         `json:"kind"`
	Name      string         `json:"name"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	ZOrder    int            `json:"zorder"`
	Stroke    string         `json:"stroke,omitempty"`
	Fill      string         `json:"fill,omitempty"`
	LineWidth float64        `json:"line_width,omitempty"`
	Points    [][2]float64   `json:"points,omitempty"`
	Map       *MapProperties `json:"map,omitempty"`
}

// Template 版面模板
type Template struct {
	Paper PaperProperties  `json:"paper"`
	Items []ItemProperties `json:"items"`
}

// ConvertToProperties 打包纸张的类型、方向与宽高
// 入参: p 纸张配置
// 返回: PaperProperties 纸张属性, error 错误信息
func ConvertToProperties(p *PaperConfig) (PaperProperties, error) {
	w, h, err := p.Size()
	if err != nil {
		return PaperProperties{}, err
	}
	return PaperProperties{
		Type:        p.PaperType().String(),
		Orientation: p.PaperOrientation().String(),
		Width:       w,
		Height:      h,
	}, nil
}

// ConvertToPaperConfig 由纸张属性还原纸张配置
// 入参: props 纸张属性
// 返回: *PaperConfig 纸张配置, error 未知类型或方向返回 ErrUnknownEnumValue
func ConvertToPaperConfig(props PaperProperties) (*PaperConfig, error) {
	t, err := ParsePaperType(props.Type)
	if err != nil {
		return nil, err
	}
	o, err := ParseOrientation(props.Orientation)
	if err != nil {
		return nil, err
	}
	p := NewPaperConfig(t, o)
	if t == PaperCustom {
		w, h := props.Width, props.Height
		if o == Landscape {
			w, h = h, w
		}
		p.SetCustomSize(w, h)
	}
	if _, _, err := p.Size(); err != nil {
		return nil, err
	}
	return p, nil
}

// itemToProperties 打包图元属性
func itemToProperties(it *Item) ItemProperties {
	props := ItemProperties{
		Kind:      it.Kind.String(),
		Name:      it.Name,
		X:         it.Box.LLx,
		Y:         it.Box.LLy,
		Width:     it.Box.Width(),
		Height:    it.Box.Height(),
		ZOrder:    it.ZOrder,
		Stroke:    it.Stroke,
		Fill:      it.Fill,
		LineWidth: it.LineWidth,
	}
	for _, pt := range it.Points {
		props.Points = append(props.Points, [2]float64{pt.X, pt.Y})
	}
	if m := it.Map; m != nil {
		mp := &MapProperties{
			Layers: append([]string(nil), m.Layers...),
			World:  [4]float64{m.WorldBox.LLx, m.WorldBox.LLy, m.WorldBox.URx, m.WorldBox.URy},
			SRID:   m.SRID,
		}
		if g := m.Grid; g != nil {
			mp.Grid = &GridProperties{Gap: g.Gap, LineWidth: g.LineWidth, Stroke: g.Stroke, Visible: g.Visible}
		}
		props.Map = mp
	}
	return props
}

// Item 由属性还原图元
// 返回: *Item 图元, error 错误信息
func (props ItemProperties) Item() (*Item, error) {
	kind, err := ParseItemKind(props.Kind)
	if err != nil {
		return nil, err
	}
	it := &Item{
		Kind:      kind,
		Name:      props.Name,
		Box:       NewEnvelope(props.X, props.Y, props.X+props.Width, props.Y+props.Height),
		ZOrder:    props.ZOrder,
		Printable: true,
		Stroke:    props.Stroke,
		Fill:      props.Fill,
		LineWidth: props.LineWidth,
	}
	for _, pt := range props.Points {
		it.Points = append(it.Points, Point{X: pt[0], Y: pt[1]})
	}
	if kind == ItemLine && len(it.Points) > 0 {
		it.Box = pointsEnvelope(it.Points)
	}
	if mp := props.Map; mp != nil {
		it.Map = &MapFrame{
			Layers:   append([]string(nil), mp.Layers...),
			WorldBox: NewEnvelope(mp.World[0], mp.World[1], mp.World[2], mp.World[3]),
			SRID:     mp.SRID,
		}
		if g := mp.Grid; g != nil {
			it.Map.Grid = &GridSettings{Gap: g.Gap, LineWidth: g.LineWidth, Stroke: g.Stroke, Visible: g.Visible}
		}
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

// NewTemplate 由场景生成模板, 只包含可打印图元
// 入参: scene 场景
// 返回: *Template 模板, error 错误信息
func NewTemplate(scene *Scene) (*Template, error) {
	if scene == nil {
		return nil, fmt.Errorf("template: %w", ErrMissingCollaborator)
	}
	paper, err := ConvertToProperties(scene.Paper())
	if err != nil {
		return nil, err
	}
	t := &Template{Paper: paper, Items: []ItemProperties{}}
	for _, it := range scene.PrintableItems() {
		t.Items = append(t.Items, itemToProperties(it))
	}
	return t, nil
}

// ExportTemplate 导出场景模板为JSON
// 入参: w 输出, scene 场景
// 返回: error 错误信息
func ExportTemplate(w io.Writer, scene *Scene) error {
	t, err := NewTemplate(scene)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// ReadTemplate 从流读取模板
// 入参: r 输入
// 返回: *Template 模板, error 错误信息
func ReadTemplate(r io.Reader) (*Template, error) {
	var t Template
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	return &t, nil
}

// OpenTemplate 打开模板文件
// 入参: path 文件路径
// 返回: *Template 模板, error 错误信息
func OpenTemplate(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTemplate(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// PaperConfig 模板纸张配置
// 返回: *PaperConfig 纸张配置, error 错误信息
func (t *Template) PaperConfig() (*PaperConfig, error) {
	return ConvertToPaperConfig(t.Paper)
}

// BuildItems 还原模板图元
// 返回: []*Item 图元, error 错误信息
func (t *Template) BuildItems() ([]*Item, error) {
	items := make([]*Item, 0, len(t.Items))
	for i, props := range t.Items {
		it, err := props.Item()
		if err != nil {
			return nil, fmt.Errorf("template item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// Build 将模板载入会话, 替换纸张并添加图元
// 模板无效或图元重名时会话保持不变
// 入参: s 会话
// 返回: error 错误信息
func (t *Template) Build(s *Session) error {
	paper, err := t.PaperConfig()
	if err != nil {
		return err
	}
	items, err := t.BuildItems()
	if err != nil {
		return err
	}
	scene, err := s.Scene()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.Name] || scene.Item(it.Name) != nil {
			return fmt.Errorf("template item %q: %w", it.Name, ErrDuplicateItem)
		}
		seen[it.Name] = true
	}
	if err := s.ResetPaper(paper); err != nil {
		return err
	}
	for _, it := range items {
		s.checkLayers(it)
		if err := scene.AddItem(it); err != nil {
			return err
		}
	}
	return nil
}
