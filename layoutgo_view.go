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
	"image"
	"image/color"
	"io"
	"math"
	"slices"

	"github.com/tdewolff/canvas/renderers"
	"seehuhn.de/go/geom/matrix"
)

const (
	// MinZoom 最小缩放百分比
	MinZoom = 10
	// MaxZoom 最大缩放百分比
	MaxZoom = 800
	// DefaultZoom 默认缩放百分比
	DefaultZoom = 50
	// DefaultScreenDPI 默认屏幕DPI
	DefaultScreenDPI = 96
)

var zoomSteps = []int{10, 25, 42, 50, 70, 100, 150, 200, 300, 400, 800}

// ZoomSteps 获取缩放档位
func ZoomSteps() []int {
	return slices.Clone(zoomSteps)
}

// View 可编辑视图, 将场景绘制到屏幕像素
type View struct {
	scene         *Scene
	wPx, hPx      int
	dpiX, dpiY    int
	zoom          int
	horizontal    *Ruler
	vertical      *Ruler
	rulersVisible bool
	background    color.Color
}

// ViewOption 视图配置选项
type ViewOption func(*View)

// WithScreenDPI 设置屏幕DPI
func WithScreenDPI(dpiX, dpiY int) ViewOption {
	return func(v *View) {
		v.dpiX, v.dpiY = dpiX, dpiY
	}
}

// WithInitialZoom 设置初始缩放
func WithInitialZoom(zoom int) ViewOption {
	return func(v *View) {
		v.zoom = zoom
	}
}

// WithRulers 设置是否显示标尺
func WithRulers(visible bool) ViewOption {
	return func(v *View) {
		v.rulersVisible = visible
	}
}

// WithRuler 替换标尺
func WithRuler(r *Ruler) ViewOption {
	return func(v *View) {
		if r == nil {
			return
		}
		if r.Orientation == RulerVertical {
			v.vertical = r
		} else {
			v.horizontal = r
		}
	}
}

// WithBackground 设置视图背景色
func WithBackground(c color.Color) ViewOption {
	return func(v *View) {
		v.background = c
	}
}

// NewView 创建视图并配置场景
// 入参: scene 场景, wPx 宽度像素, hPx 高度像素, opts 配置选项
// 返回: *View 视图, error 错误信息
func NewView(scene *Scene, wPx, hPx int, opts ...ViewOption) (*View, error) {
	if scene == nil {
		return nil, fmt.Errorf("new view: %w", ErrMissingCollaborator)
	}
	v := &View{
		scene:         scene,
		wPx:           wPx,
		hPx:           hPx,
		dpiX:          DefaultScreenDPI,
		dpiY:          DefaultScreenDPI,
		zoom:          DefaultZoom,
		horizontal:    NewRuler(RulerHorizontal),
		vertical:      NewRuler(RulerVertical),
		rulersVisible: true,
		background:    color.RGBA{R: 109, G: 109, B: 109, A: 0xff},
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.zoom < MinZoom || v.zoom > MaxZoom {
		return nil, fmt.Errorf("initial zoom %d: %w", v.zoom, ErrZoomLimit)
	}
	scene.AddListener(v.horizontal)
	scene.AddListener(v.vertical)
	if err := v.Config(); err != nil {
		return nil, err
	}
	return v, nil
}

// Config 按屏幕尺寸与DPI初始化场景
// 返回: error 错误信息
func (v *View) Config() error {
	if v.wPx <= 0 || v.hPx <= 0 {
		return fmt.Errorf("view size %dx%d: %w", v.wPx, v.hPx, ErrDegenerateGeometry)
	}
	ctx := v.scene.Context().WithDPI(v.dpiX, v.dpiY).WithZoom(v.zoom)
	if ctx.Mode == ModePrinter {
		ctx = ctx.WithMode(ModeNone)
	}
	if err := v.scene.SetContext(ctx); err != nil {
		return err
	}
	wMM := Pixel2MM(float64(v.wPx), float64(v.dpiX))
	hMM := Pixel2MM(float64(v.hPx), float64(v.dpiY))
	return v.scene.Init(wMM, hMM)
}

// Resize 调整视图尺寸
// 入参: wPx 宽度像素, hPx 高度像素
// 返回: error 错误信息
func (v *View) Resize(wPx, hPx int) error {
	v.wPx, v.hPx = wPx, hPx
	return v.Config()
}

// Size 视图像素尺寸
func (v *View) Size() (int, int) {
	return v.wPx, v.hPx
}

// Scene 获取场景
func (v *View) Scene() *Scene {
	return v.scene
}

// Zoom 当前缩放百分比
func (v *View) Zoom() int {
	return v.zoom
}

// SetZoom 设置缩放, 超出范围返回 ErrZoomLimit, 相同缩放忽略
// 入参: zoom 缩放百分比
// 返回: error 错误信息
func (v *View) SetZoom(zoom int) error {
	if zoom < MinZoom || zoom > MaxZoom {
		return fmt.Errorf("zoom %d outside [%d, %d]: %w", zoom, MinZoom, MaxZoom, ErrZoomLimit)
	}
	if zoom == v.zoom {
		return nil
	}
	if err := v.scene.OnChangeZoom(zoom); err != nil {
		return err
	}
	Logger().Debug("zoom changed", "from", v.zoom, "to", zoom)
	v.zoom = zoom
	return nil
}

// NextZoom 放大到下一档
// 返回: error 已是最大档时返回 ErrZoomLimit
func (v *View) NextZoom() error {
	for _, z := range zoomSteps {
		if z > v.zoom {
			return v.SetZoom(z)
		}
	}
	return fmt.Errorf("next zoom after %d: %w", v.zoom, ErrZoomLimit)
}

// PreviousZoom 缩小到上一档
// 返回: error 已是最小档时返回 ErrZoomLimit
func (v *View) PreviousZoom() error {
	for i := len(zoomSteps) - 1; i >= 0; i-- {
		if zoomSteps[i] < v.zoom {
			return v.SetZoom(zoomSteps[i])
		}
	}
	return fmt.Errorf("previous zoom before %d: %w", v.zoom, ErrZoomLimit)
}

// FitZoom 计算并设置使毫米区域充满视图的缩放
// 入参: box 毫米区域
// 返回: int 缩放百分比, error 错误信息
func (v *View) FitZoom(box Envelope) (int, error) {
	if !box.IsValid() {
		return 0, fmt.Errorf("fit zoom box %v: %w", box, ErrDegenerateGeometry)
	}
	zx := float64(v.wPx) / MM2Pixel(box.Width(), float64(v.dpiX))
	zy := float64(v.hPx) / MM2Pixel(box.Height(), float64(v.dpiY))
	zoom := int(math.Floor(math.Min(zx, zy) * 100))
	zoom = min(max(zoom, MinZoom), MaxZoom)
	return zoom, v.SetZoom(zoom)
}

// Recompose 恢复默认缩放并重新配置场景
// 返回: error 错误信息
func (v *View) Recompose() error {
	if err := v.SetZoom(DefaultZoom); err != nil {
		return err
	}
	return v.Config()
}

// SetRulersVisible 设置标尺是否可见
func (v *View) SetRulersVisible(visible bool) {
	v.rulersVisible = visible
}

// RulersVisible 标尺是否可见
func (v *View) RulersVisible() bool {
	return v.rulersVisible
}

// Rulers 获取水平与垂直标尺
func (v *View) Rulers() (*Ruler, *Ruler) {
	return v.horizontal, v.vertical
}

// ViewTransform 场景毫米到视图像素的矩阵, 以场景窗口中心为视图中心
func (v *View) ViewTransform() matrix.Matrix {
	m := v.scene.SceneTransform()
	bx, by := v.scene.SceneBox().Center()
	cx, cy := m.Apply(bx, by)
	f := float64(v.zoom) / 100
	return m.Mul(matrix.Translate(-cx, -cy)).
		Mul(matrix.Matrix{f, 0, 0, f, 0, 0}).
		Mul(matrix.Translate(float64(v.wPx)/2, float64(v.hPx)/2))
}

// MapFromScene 场景毫米坐标转视图像素
func (v *View) MapFromScene(x, y float64) (float64, float64) {
	return v.ViewTransform().Apply(x, y)
}

// MapToScene 视图像素转场景毫米坐标
// 返回: float64 X, float64 Y, error 错误信息
func (v *View) MapToScene(px, py float64) (float64, float64, error) {
	inv, err := invertMatrix(v.ViewTransform())
	if err != nil {
		return 0, 0, err
	}
	x, y := inv.Apply(px, py)
	return x, y, nil
}

// VisibleSceneBox 视图可见的场景区域(毫米)
// 返回: Envelope 区域, error 错误信息
func (v *View) VisibleSceneBox() (Envelope, error) {
	x1, y1, err := v.MapToScene(0, 0)
	if err != nil {
		return Envelope{}, err
	}
	x2, y2, err := v.MapToScene(float64(v.wPx), float64(v.hPx))
	if err != nil {
		return Envelope{}, err
	}
	return NewEnvelope(x1, y1, x2, y2).Normalize(), nil
}

// matrixProjector 以矩阵实现 Projector
type matrixProjector matrix.Matrix

// Project 实现 Projector
func (m matrixProjector) Project(x, y float64) (float64, float64) {
	return matrix.Matrix(m).Apply(x, y)
}

// ScaleLength 实现 Projector
func (m matrixProjector) ScaleLength(l float64) float64 {
	return l * math.Hypot(m[0], m[1])
}

// Draw 在表面上绘制视图内容
// 入参: s 绘制表面
// 返回: error 错误信息
func (v *View) Draw(s Surface) error {
	paper, err := v.scene.PaperBox()
	if err != nil {
		return err
	}
	p := matrixProjector(v.ViewTransform())
	drawPaper(s, p, paper, true)
	drawItems(s, p, v.scene.Items(), drawOptions{selected: v.scene.selected, grids: v.scene.grids})
	if !v.rulersVisible || v.scene.Context().Mode == ModePrinter {
		return nil
	}
	visible, err := v.VisibleSceneBox()
	if err != nil {
		return err
	}
	if err := v.horizontal.Draw(s, p, visible); err != nil {
		return err
	}
	return v.vertical.Draw(s, p, visible)
}

// RenderImage 渲染视图为光栅图
// 返回: image.Image 图像, error 错误信息
func (v *View) RenderImage() (image.Image, error) {
	s := newRasterSurface(v.wPx, v.hPx, v.dpiX)
	defer s.Close()
	s.Clear(v.background)
	if err := v.Draw(s); err != nil {
		return nil, err
	}
	return s.Image(), nil
}

// EncodePNG 渲染视图并编码为PNG
// 入参: w 输出
// 返回: error 错误信息
func (v *View) EncodePNG(w io.Writer) error {
	s := newRasterSurface(v.wPx, v.hPx, v.dpiX)
	defer s.Close()
	s.Clear(v.background)
	if err := v.Draw(s); err != nil {
		return err
	}
	return s.EncodePNG(w)
}

// WriteSVG 以矢量形式输出视图
// 入参: w 输出
// 返回: error 错误信息
func (v *View) WriteSVG(w io.Writer) error {
	s := newCanvasSurface(float64(v.wPx), float64(v.hPx), v.dpiX, nil)
	s.DrawRect(NewEnvelope(0, 0, float64(v.wPx), float64(v.hPx)), Style{Fill: v.background})
	if err := v.Draw(s); err != nil {
		return err
	}
	return s.Canvas().Write(w, renderers.SVG())
}
