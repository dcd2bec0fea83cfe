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

import "slices"

// Layer 宿主项目中的图层
type Layer struct {
	Name  string
	Title string
	SRID  int
	Box   Envelope
}

// LayerProvider 宿主项目的只读图层查询
type LayerProvider interface {
	AllLayers() []Layer
	SelectedLayers() []Layer
	Contains(name string) bool
}

// StaticProject 内存中的图层来源
type StaticProject struct {
	layers   []Layer
	selected []string
}

// NewStaticProject 创建内存图层来源
// 入参: layers 图层
// 返回: *StaticProject 图层来源
func NewStaticProject(layers ...Layer) *StaticProject {
	return &StaticProject{layers: slices.Clone(layers)}
}

// Select 设置选中图层
func (p *StaticProject) Select(names ...string) {
	p.selected = slices.Clone(names)
}

// AllLayers 实现 LayerProvider
func (p *StaticProject) AllLayers() []Layer {
	return slices.Clone(p.layers)
}

// SelectedLayers 实现 LayerProvider
func (p *StaticProject) SelectedLayers() []Layer {
	var out []Layer
	for _, l := range p.layers {
		if slices.Contains(p.selected, l.Name) {
			out = append(out, l)
		}
	}
	return out
}

// Contains 实现 LayerProvider
func (p *StaticProject) Contains(name string) bool {
	return slices.ContainsFunc(p.layers, func(l Layer) bool { return l.Name == name })
}
