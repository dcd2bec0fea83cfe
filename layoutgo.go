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

// Package layoutgo 纯 Go 语言的打印版面库, 在毫米纸张空间中编排地图框与图形并导出
package layoutgo

import (
	"fmt"
	"io/fs"
)

// Session 版面会话, 持有纸张、场景、视图与打印路径
type Session struct {
	paper     *PaperConfig
	scene     *Scene
	view      *View
	printer   *PrintScene
	undo      *UndoStack
	unit      Unit
	project   LayerProvider
	fonts     *labelFonts
	fontName  string
	fontDirs  []string
	fontFS    []fs.FS
	screenW   int
	screenH   int
	dpiX      int
	dpiY      int
	zoom      int
	undoLimit int
}

// SessionOption 会话配置选项
type SessionOption func(*Session)

// WithPaper 设置纸张
// 入参: paper 纸张配置
// 返回: SessionOption 配置选项
func WithPaper(paper *PaperConfig) SessionOption {
	return func(s *Session) {
		s.paper = paper
	}
}

// WithScreen 设置屏幕像素尺寸
// 入参: wPx 宽度, hPx 高度
// 返回: SessionOption 配置选项
func WithScreen(wPx, hPx int) SessionOption {
	return func(s *Session) {
		s.screenW, s.screenH = wPx, hPx
	}
}

// WithDPI 设置屏幕DPI
// 入参: dpiX 水平DPI, dpiY 垂直DPI
// 返回: SessionOption 配置选项
func WithDPI(dpiX, dpiY int) SessionOption {
	return func(s *Session) {
		s.dpiX, s.dpiY = dpiX, dpiY
	}
}

// WithZoom 设置初始缩放百分比
func WithZoom(zoom int) SessionOption {
	return func(s *Session) {
		s.zoom = zoom
	}
}

// WithUnit 设置显示单位
func WithUnit(u Unit) SessionOption {
	return func(s *Session) {
		s.unit = u
	}
}

// WithProject 设置图层来源
func WithProject(p LayerProvider) SessionOption {
	return func(s *Session) {
		s.project = p
	}
}

// WithUndoLimit 设置撤销栈上限
func WithUndoLimit(limit int) SessionOption {
	return func(s *Session) {
		s.undoLimit = limit
	}
}

// WithLabelFont 设置标注字体名称
// 入参: name 字体名称
// 返回: SessionOption 配置选项
func WithLabelFont(name string) SessionOption {
	return func(s *Session) {
		s.fontName = name
	}
}

// WithFontDirs 设置外部字体查找目录
// 入参: dirs 字体目录列表
// 返回: SessionOption 配置选项
func WithFontDirs(dirs ...string) SessionOption {
	return func(s *Session) {
		s.fontDirs = append(s.fontDirs, dirs...)
	}
}

// WithFontFS 设置外部字体文件系统
// 入参: fs 字体文件系统
// 返回: SessionOption 配置选项
func WithFontFS(fs ...fs.FS) SessionOption {
	return func(s *Session) {
		s.fontFS = append(s.fontFS, fs...)
	}
}

// NewSession 创建会话
// 入参: opts 配置选项
// 返回: *Session 会话, error 错误信息
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{
		unit:      UnitMillimeter,
		screenW:   1280,
		screenH:   800,
		dpiX:      DefaultScreenDPI,
		dpiY:      DefaultScreenDPI,
		zoom:      DefaultZoom,
		undoLimit: defaultUndoLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.paper == nil {
		s.paper = NewPaperConfig(PaperA4, Portrait)
	}
	s.fonts = newLabelFonts(s.fontName, s.fontDirs, s.fontFS)
	ctx := NewContextObject(s.zoom, s.dpiX, s.dpiY, s.paper, ModeSelect)
	scene, err := NewScene(ctx)
	if err != nil {
		return nil, err
	}
	view, err := NewView(scene, s.screenW, s.screenH, WithScreenDPI(s.dpiX, s.dpiY), WithInitialZoom(s.zoom))
	if err != nil {
		return nil, err
	}
	s.scene, s.view = scene, view
	s.SetUnit(s.unit)
	s.printer = NewPrintScene(scene)
	s.printer.fonts = s.fonts
	s.undo = NewUndoStack(s.undoLimit)
	return s, nil
}

// Close 关闭会话, 之后依赖场景的操作返回 ErrMissingCollaborator
func (s *Session) Close() error {
	s.scene, s.view, s.printer = nil, nil, nil
	if s.undo != nil {
		s.undo.Clear()
	}
	return nil
}

// Scene 获取场景
// 返回: *Scene 场景, error 未绑定时返回 ErrMissingCollaborator
func (s *Session) Scene() (*Scene, error) {
	if s.scene == nil {
		return nil, fmt.Errorf("session scene: %w", ErrMissingCollaborator)
	}
	return s.scene, nil
}

// View 获取视图
// 返回: *View 视图, error 未绑定时返回 ErrMissingCollaborator
func (s *Session) View() (*View, error) {
	if s.view == nil {
		return nil, fmt.Errorf("session view: %w", ErrMissingCollaborator)
	}
	return s.view, nil
}

// Printer 获取打印场景
// 返回: *PrintScene 打印场景, error 未绑定时返回 ErrMissingCollaborator
func (s *Session) Printer() (*PrintScene, error) {
	if s.printer == nil {
		return nil, fmt.Errorf("session printer: %w", ErrMissingCollaborator)
	}
	return s.printer, nil
}

// Paper 获取纸张配置
func (s *Session) Paper() *PaperConfig {
	return s.paper
}

// Unit 获取显示单位
func (s *Session) Unit() Unit {
	return s.unit
}

// SetUnit 设置显示单位, 同步到视图标尺的标注
func (s *Session) SetUnit(u Unit) {
	s.unit = u
	if s.view == nil {
		return
	}
	h, v := s.view.Rulers()
	h.Unit, v.Unit = u, u
}

// Project 获取图层来源, 可能为空
func (s *Session) Project() LayerProvider {
	return s.project
}

// Undo 获取撤销栈
func (s *Session) Undo() *UndoStack {
	return s.undo
}

// Context 获取当前上下文
// 返回: ContextObject 上下文, error 未绑定场景时返回 ErrMissingCollaborator
func (s *Session) Context() (ContextObject, error) {
	scene, err := s.Scene()
	if err != nil {
		return ContextObject{}, err
	}
	return scene.Context(), nil
}

// MM2Pixel 按当前上下文将毫米换算为像素
// 入参: mm 毫米
// 返回: int 像素, 无场景时为 InvalidPixel, error 错误信息
func (s *Session) MM2Pixel(mm float64) (int, error) {
	ctx, err := s.Context()
	if err != nil {
		return InvalidPixel, err
	}
	return ctx.MM2Pixel(mm)
}

// Pixel2MM 按当前上下文将像素换算为毫米
// 入参: px 像素
// 返回: float64 毫米, 无场景时为 InvalidPixel, error 错误信息
func (s *Session) Pixel2MM(px float64) (float64, error) {
	ctx, err := s.Context()
	if err != nil {
		return InvalidPixel, err
	}
	return ctx.Pixel2MM(px)
}

// SetMode 切换工具模式
func (s *Session) SetMode(mode Mode) error {
	scene, err := s.Scene()
	if err != nil {
		return err
	}
	return scene.OnChangeMode(mode)
}

// SetPaper 更换纸张, 图元按新旧尺寸比例缩放, 视图重新配置
// 入参: paper 纸张配置
// 返回: error 错误信息
func (s *Session) SetPaper(paper *PaperConfig) error {
	return s.changePaper(paper, true)
}

// ResetPaper 更换纸张但不缩放图元
// 入参: paper 纸张配置
// 返回: error 错误信息
func (s *Session) ResetPaper(paper *PaperConfig) error {
	return s.changePaper(paper, false)
}

func (s *Session) changePaper(paper *PaperConfig, proportional bool) error {
	scene, err := s.Scene()
	if err != nil {
		return err
	}
	view, err := s.View()
	if err != nil {
		return err
	}
	newW, newH, err := paper.Size()
	if err != nil {
		return err
	}
	oldW, oldH, err := s.paper.Size()
	if err != nil {
		return err
	}
	if err := scene.SetContext(scene.Context().WithPaper(paper)); err != nil {
		return err
	}
	s.paper = paper
	if proportional {
		if err := scene.ApplyPaperProportion(oldW, oldH, newW, newH); err != nil {
			return err
		}
	}
	Logger().Debug("paper changed", "type", paper.PaperType(), "orientation", paper.PaperOrientation(), "width", newW, "height", newH)
	return view.Config()
}

// checkLayers 检查地图框图层是否存在于图层来源
func (s *Session) checkLayers(it *Item) {
	if s.project == nil || it.Kind != ItemMapFrame || it.Map == nil {
		return
	}
	for _, name := range it.Map.Layers {
		if !s.project.Contains(name) {
			Logger().Warn("map layer not in project", "item", it.Name, "layer", name)
		}
	}
}

// AddMapFrame 以图层来源中选中的图层创建地图框
// 入参: name 名称, box 毫米区域, world 世界区域
// 返回: *Item 图元, error 错误信息
func (s *Session) AddMapFrame(name string, box, world Envelope) (*Item, error) {
	scene, err := s.Scene()
	if err != nil {
		return nil, err
	}
	it := NewMapFrame(name, box, world)
	if s.project != nil {
		for _, l := range s.project.SelectedLayers() {
			it.Map.Layers = append(it.Map.Layers, l.Name)
			if it.Map.SRID == 0 {
				it.Map.SRID = l.SRID
			}
		}
	}
	if err := s.undo.Push(scene, &AddCommand{Item: it}); err != nil {
		return nil, err
	}
	return it, nil
}
