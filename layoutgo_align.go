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

// AlignOffsets 计算对齐每个图元所需的平移量
// 单个图元对齐到纸张, 多个图元对齐到它们的外包矩形
// 入参: paper 纸张区域, items 图元, mode 对齐模式
// 返回: []Point 与 items 对应的平移量, error 错误信息
func AlignOffsets(paper Envelope, items []*Item, mode Mode) ([]Point, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("align: no items: %w", ErrMissingCollaborator)
	}
	target := paper
	if len(items) > 1 {
		target = items[0].Box.Normalize()
		for _, it := range items[1:] {
			target = target.Extend(it.Box)
		}
		if !target.IsFinite() {
			return nil, fmt.Errorf("align target %v: %w", target, ErrDegenerateGeometry)
		}
	} else if !target.IsValid() {
		return nil, fmt.Errorf("align target %v: %w", target, ErrDegenerateGeometry)
	}
	tcx, tcy := target.Center()
	offsets := make([]Point, len(items))
	for i, it := range items {
		cx, cy := it.Box.Center()
		switch mode {
		case ModeAlignLeft:
			offsets[i].X = target.LLx - it.Box.LLx
		case ModeAlignRight:
			offsets[i].X = target.URx - it.Box.URx
		case ModeAlignTop:
			offsets[i].Y = target.URy - it.Box.URy
		case ModeAlignBottom:
			offsets[i].Y = target.LLy - it.Box.LLy
		case ModeAlignCenterHorizontal:
			offsets[i].X = tcx - cx
		case ModeAlignCenterVertical:
			offsets[i].Y = tcy - cy
		default:
			return nil, fmt.Errorf("align mode %v: %w", mode, ErrUnknownEnumValue)
		}
	}
	return offsets, nil
}

// AlignItems 按模式对齐场景中的图元, 未给出名称时对齐已选图元
// 入参: scene 场景, mode 对齐模式, names 图元名称
// 返回: error 错误信息
func AlignItems(scene *Scene, mode Mode, names ...string) error {
	items, err := lookupItems(scene, names)
	if err != nil {
		return err
	}
	paper, err := scene.PaperBox()
	if err != nil {
		return err
	}
	offsets, err := AlignOffsets(paper, items, mode)
	if err != nil {
		return err
	}
	for i, it := range items {
		it.MoveBy(offsets[i].X, offsets[i].Y)
		scene.ItemChanged(it.Name)
	}
	return nil
}

// lookupItems 按名称查找图元, 名称为空时返回已选图元
func lookupItems(scene *Scene, names []string) ([]*Item, error) {
	if scene == nil {
		return nil, fmt.Errorf("lookup items: %w", ErrMissingCollaborator)
	}
	if len(names) == 0 {
		return scene.SelectedItems(), nil
	}
	items := make([]*Item, 0, len(names))
	for _, n := range names {
		it := scene.Item(n)
		if it == nil {
			return nil, fmt.Errorf("item %q: %w", n, ErrMissingCollaborator)
		}
		items = append(items, it)
	}
	return items, nil
}
