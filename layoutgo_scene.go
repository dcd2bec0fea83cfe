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
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
)

// ContextListener 上下文变化监听者, 如标尺与网格
type ContextListener interface {
	ContextChanged(ctx ContextObject)
}

// ContextListenerFunc 函数形式的上下文监听者
type ContextListenerFunc func(ctx ContextObject)

// ContextChanged 实现 ContextListener
func (f ContextListenerFunc) ContextChanged(ctx ContextObject) {
	f(ctx)
}

// Scene 毫米纸张空间中的场景, 持有图元与当前上下文
type Scene struct {
	ctx       ContextObject
	box       Envelope
	transform matrix.Matrix
	items     []*Item
	selected  map[string]bool
	grids     map[string]*GridOverlay
	listeners []ContextListener
	nextZ     int
}

// NewScene 创建场景
// 入参: ctx 渲染上下文
// 返回: *Scene 场景, error 错误信息
func NewScene(ctx ContextObject) (*Scene, error) {
	if err := ctx.Validate(); err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	s := &Scene{
		ctx:       ctx,
		transform: matrix.Identity,
		selected:  make(map[string]bool),
		grids:     make(map[string]*GridOverlay),
	}
	return s, nil
}

// Init 按屏幕毫米尺寸计算场景窗口与场景矩阵
// 入参: screenWMM 屏幕宽度(毫米), screenHMM 屏幕高度(毫米)
// 返回: error 错误信息
func (s *Scene) Init(screenWMM, screenHMM float64) error {
	pw, ph, err := s.ctx.Paper.Size()
	if err != nil {
		return fmt.Errorf("scene init: %w", err)
	}
	if !(screenWMM > 0) || !(screenHMM > 0) {
		return fmt.Errorf("scene init: screen %gx%g mm: %w", screenWMM, screenHMM, ErrDegenerateGeometry)
	}
	box := sceneWindow(pw, ph, screenWMM, screenHMM)
	s.box = box
	s.calculateMatrix()
	Logger().Debug("scene window", "box", box.String(), "dpiX", s.ctx.DpiX, "dpiY", s.ctx.DpiY)
	return nil
}

// calculateWindow 计算场景窗口, 纸张在窗口中居中
func calculateWindow(paperW, paperH, wMM, hMM float64) Envelope {
	maxX := math.Max(paperW, wMM)
	padX := (maxX - math.Min(paperW, wMM)) / 2
	maxY := math.Max(paperH, hMM)
	padY := (maxY - math.Min(paperH, hMM)) / 2
	return Envelope{LLx: -padX, LLy: -padY, URx: maxX - padX, URy: maxY - padY}
}

// sceneWindow 两次计算窗口, 首次结果的宽高作为第二次的屏幕尺寸
func sceneWindow(paperW, paperH, wMM, hMM float64) Envelope {
	box := calculateWindow(paperW, paperH, wMM, hMM)
	return calculateWindow(paperW, paperH, box.Width(), box.Height())
}

// calculateMatrix 计算场景到屏幕像素的矩阵, Y轴反向
func (s *Scene) calculateMatrix() {
	fx := float64(s.ctx.DpiX) / MillimetersPerInch
	fy := float64(s.ctx.DpiY) / MillimetersPerInch
	s.transform = matrix.Translate(-s.box.LLx, -s.box.URy).Mul(matrix.Matrix{fx, 0, 0, -fy, 0, 0})
}

// SceneBox 获取场景窗口(毫米)
func (s *Scene) SceneBox() Envelope {
	return s.box
}

// SceneTransform 获取场景矩阵
func (s *Scene) SceneTransform() matrix.Matrix {
	return s.transform
}

// SceneToView 场景毫米坐标转屏幕像素
func (s *Scene) SceneToView(x, y float64) (float64, float64) {
	return s.transform.Apply(x, y)
}

// ViewToScene 屏幕像素转场景毫米坐标
// 返回: float64 X, float64 Y, error 错误信息
func (s *Scene) ViewToScene(px, py float64) (float64, float64, error) {
	inv, err := invertMatrix(s.transform)
	if err != nil {
		return 0, 0, err
	}
	x, y := inv.Apply(px, py)
	return x, y, nil
}

// invertMatrix 求仿射矩阵的逆
func invertMatrix(m matrix.Matrix) (matrix.Matrix, error) {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return matrix.Matrix{}, fmt.Errorf("singular matrix %v: %w", m, ErrDegenerateGeometry)
	}
	a, b, c, d := m[3]/det, -m[1]/det, -m[2]/det, m[0]/det
	return matrix.Matrix{a, b, c, d, -(m[4]*a + m[5]*c), -(m[4]*b + m[5]*d)}, nil
}

// Context 获取当前上下文
func (s *Scene) Context() ContextObject {
	return s.ctx
}

// Paper 获取纸张配置
func (s *Scene) Paper() *PaperConfig {
	return s.ctx.Paper
}

// SetContext 替换上下文, 重算场景矩阵并通知监听者
// 入参: ctx 新上下文
// 返回: error 错误信息
func (s *Scene) SetContext(ctx ContextObject) error {
	if err := ctx.Validate(); err != nil {
		return fmt.Errorf("set context: %w", err)
	}
	s.ctx = ctx
	s.calculateMatrix()
	s.contextUpdated()
	return nil
}

// WithContext 临时替换上下文执行 fn, 结束后总是恢复原上下文
// 入参: ctx 临时上下文, fn 执行函数
// 返回: error 错误信息
func (s *Scene) WithContext(ctx ContextObject, fn func() error) (err error) {
	saved := s.ctx
	if err := s.SetContext(ctx); err != nil {
		return err
	}
	defer func() {
		if rerr := s.SetContext(saved); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()
	return fn()
}

// OnChangeZoom 缩放变化
// 入参: zoom 缩放百分比
// 返回: error 错误信息
func (s *Scene) OnChangeZoom(zoom int) error {
	return s.SetContext(s.ctx.WithZoom(zoom))
}

// OnChangeMode 模式变化
// 入参: mode 模式
// 返回: error 错误信息
func (s *Scene) OnChangeMode(mode Mode) error {
	return s.SetContext(s.ctx.WithMode(mode))
}

// AddListener 注册上下文监听者
func (s *Scene) AddListener(l ContextListener) {
	s.listeners = append(s.listeners, l)
}

// RemoveListener 注销上下文监听者
func (s *Scene) RemoveListener(l ContextListener) {
	s.listeners = slices.DeleteFunc(s.listeners, func(o ContextListener) bool { return o == l })
}

func (s *Scene) contextUpdated() {
	for _, l := range s.listeners {
		l.ContextChanged(s.ctx)
	}
	for _, g := range s.grids {
		g.ContextChanged(s.ctx)
	}
}

// AddItem 添加图元, 名称必须唯一
// 入参: it 图元
// 返回: error 错误信息
func (s *Scene) AddItem(it *Item) error {
	if it == nil {
		return fmt.Errorf("add item: %w", ErrMissingCollaborator)
	}
	if err := it.Validate(); err != nil {
		return err
	}
	if s.Item(it.Name) != nil {
		return fmt.Errorf("item %q: %w", it.Name, ErrDuplicateItem)
	}
	if it.ZOrder == 0 {
		s.nextZ++
		it.ZOrder = s.nextZ
	} else {
		s.nextZ = max(s.nextZ, it.ZOrder)
	}
	s.items = append(s.items, it)
	s.sortItems()
	if it.Kind == ItemMapFrame && it.Map.Grid != nil {
		s.grids[it.Name] = newGridOverlay(it)
	}
	return nil
}

// RemoveItem 删除图元
// 入参: name 图元名称
// 返回: *Item 被删除图元, 不存在时为 nil
func (s *Scene) RemoveItem(name string) *Item {
	i := slices.IndexFunc(s.items, func(it *Item) bool { return it.Name == name })
	if i < 0 {
		return nil
	}
	it := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	delete(s.selected, name)
	delete(s.grids, name)
	return it
}

// Item 按名称查找图元
func (s *Scene) Item(name string) *Item {
	for _, it := range s.items {
		if it.Name == name {
			return it
		}
	}
	return nil
}

// Items 按层级从低到高返回全部图元
func (s *Scene) Items() []*Item {
	return slices.Clone(s.items)
}

// PrintableItems 返回可打印图元
func (s *Scene) PrintableItems() []*Item {
	var out []*Item
	for _, it := range s.items {
		if it.Printable {
			out = append(out, it)
		}
	}
	return out
}

// Grid 获取地图框网格
func (s *Scene) Grid(name string) *GridOverlay {
	return s.grids[name]
}

// ItemChanged 图元几何变化后使其网格失效
func (s *Scene) ItemChanged(name string) {
	if g, ok := s.grids[name]; ok {
		g.Invalidate()
	}
}

// SelectItems 选择图元, 替换当前选择
// 入参: names 图元名称
func (s *Scene) SelectItems(names ...string) {
	clear(s.selected)
	for _, n := range names {
		if s.Item(n) != nil {
			s.selected[n] = true
		}
	}
}

// DeselectAll 取消全部选择
func (s *Scene) DeselectAll() {
	clear(s.selected)
}

// SelectedItems 按层级返回已选图元
func (s *Scene) SelectedItems() []*Item {
	var out []*Item
	for _, it := range s.items {
		if s.selected[it.Name] {
			out = append(out, it)
		}
	}
	return out
}

// BringToFront 将图元置于最上层
func (s *Scene) BringToFront(name string) bool {
	it := s.Item(name)
	if it == nil {
		return false
	}
	s.nextZ++
	it.ZOrder = s.nextZ
	s.sortItems()
	return true
}

// SendToBack 将图元置于最下层
func (s *Scene) SendToBack(name string) bool {
	it := s.Item(name)
	if it == nil {
		return false
	}
	lowest := it.ZOrder
	for _, o := range s.items {
		lowest = min(lowest, o.ZOrder)
	}
	it.ZOrder = lowest - 1
	s.sortItems()
	return true
}

func (s *Scene) sortItems() {
	slices.SortStableFunc(s.items, func(a, b *Item) int { return a.ZOrder - b.ZOrder })
}

// ApplyPaperProportion 纸张尺寸变化后按比例缩放全部图元
// 入参: oldW, oldH 原纸张尺寸, newW, newH 新纸张尺寸(毫米)
// 返回: error 错误信息
func (s *Scene) ApplyPaperProportion(oldW, oldH, newW, newH float64) error {
	if !(oldW > 0) || !(oldH > 0) || !(newW > 0) || !(newH > 0) {
		return fmt.Errorf("paper proportion %gx%g -> %gx%g: %w", oldW, oldH, newW, newH, ErrDegenerateGeometry)
	}
	fx, fy := newW/oldW, newH/oldH
	for _, it := range s.items {
		it.Box = Envelope{LLx: it.Box.LLx * fx, LLy: it.Box.LLy * fy, URx: it.Box.URx * fx, URy: it.Box.URy * fy}
		for i := range it.Points {
			it.Points[i].X *= fx
			it.Points[i].Y *= fy
		}
		s.ItemChanged(it.Name)
	}
	return nil
}

// PaperBox 获取纸张毫米区域
func (s *Scene) PaperBox() (Envelope, error) {
	return s.ctx.Paper.Envelope()
}

// ViewportBoxFromMM 将毫米区域换算为设备像素区域
// 入参: box 毫米区域, applyZoom 是否应用当前缩放
// 返回: Envelope 像素区域, error 错误信息
func (s *Scene) ViewportBoxFromMM(box Envelope, applyZoom bool) (Envelope, error) {
	return ViewportBoxFromMM(s.ctx, box, applyZoom)
}

// ViewportBoxFromMM 按上下文将毫米区域换算为设备像素区域, 原点在左上角
// 入参: ctx 渲染上下文, box 毫米区域, applyZoom 是否应用缩放
// 返回: Envelope 像素区域, error 错误信息
func ViewportBoxFromMM(ctx ContextObject, box Envelope, applyZoom bool) (Envelope, error) {
	if !box.IsValid() {
		return Envelope{}, fmt.Errorf("viewport box %v: %w", box, ErrDegenerateGeometry)
	}
	if !applyZoom {
		ctx = ctx.WithZoom(100)
	}
	if ctx.Zoom <= 0 {
		return Envelope{}, fmt.Errorf("viewport zoom %d: %w", ctx.Zoom, ErrDegenerateGeometry)
	}
	f := ctx.ZoomFactor()
	w, err := ctx.MM2Pixel(box.Width() * f)
	if err != nil {
		return Envelope{}, err
	}
	h, err := ctx.MM2Pixel(box.Height() * f)
	if err != nil {
		return Envelope{}, err
	}
	t, err := NewDeviceTransformer(box.LLx, box.LLy, box.URx, box.URy, float64(w), float64(h))
	if err != nil {
		return Envelope{}, fmt.Errorf("viewport box %v -> %dx%d: %w", box, w, h, err)
	}
	return t.TransformEnvelope(box), nil
}
