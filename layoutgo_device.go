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
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

// Device 打印或导出设备
type Device interface {
	LogicalDPI() (int, int)
	PaperRect() Envelope
	Begin(widthPx, heightPx int) (Surface, error)
	End() error
}

// VectorFormat 矢量输出格式
type VectorFormat int

const (
	FormatPDF VectorFormat = iota
	FormatSVG
	FormatEPS
)

// String 格式名称
func (f VectorFormat) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatSVG:
		return "svg"
	case FormatEPS:
		return "eps"
	}
	return fmt.Sprintf("VectorFormat(%d)", int(f))
}

// writer 获取格式对应的画布写出器
func (f VectorFormat) writer() (canvas.Writer, error) {
	switch f {
	case FormatPDF:
		return renderers.PDF(), nil
	case FormatSVG:
		return renderers.SVG(), nil
	case FormatEPS:
		return renderers.EPS(), nil
	}
	return nil, fmt.Errorf("vector format %v: %w", f, ErrUnknownEnumValue)
}

// canvasDevice 矢量画布设备的公共部分
type canvasDevice struct {
	dpi     int
	paper   Envelope
	fonts   *labelFonts
	surface *canvasSurface
}

// LogicalDPI 实现 Device
func (d *canvasDevice) LogicalDPI() (int, int) {
	return d.dpi, d.dpi
}

// PaperRect 实现 Device
func (d *canvasDevice) PaperRect() Envelope {
	return d.paper
}

// Begin 实现 Device
func (d *canvasDevice) Begin(widthPx, heightPx int) (Surface, error) {
	if d.surface != nil {
		return nil, fmt.Errorf("device already started: %w", ErrDeviceUnavailable)
	}
	if widthPx <= 0 || heightPx <= 0 {
		return nil, fmt.Errorf("device page %dx%d: %w", widthPx, heightPx, ErrDegenerateGeometry)
	}
	d.surface = newCanvasSurface(float64(widthPx), float64(heightPx), d.dpi, d.fonts)
	return d.surface, nil
}

// finish 取出已绘制的画布
func (d *canvasDevice) finish() (*canvas.Canvas, error) {
	if d.surface == nil {
		return nil, fmt.Errorf("device not started: %w", ErrDeviceUnavailable)
	}
	c := d.surface.Canvas()
	d.surface = nil
	return c, nil
}

// VectorDevice 输出 PDF、SVG 或 EPS 的矢量设备
type VectorDevice struct {
	canvasDevice
	w      io.Writer
	format VectorFormat
}

// NewVectorDevice 创建矢量设备
// 入参: w 输出, format 格式, dpi 逻辑分辨率, paper 纸张毫米区域
// 返回: *VectorDevice 设备
func NewVectorDevice(w io.Writer, format VectorFormat, dpi int, paper Envelope) *VectorDevice {
	return &VectorDevice{canvasDevice: canvasDevice{dpi: dpi, paper: paper}, w: w, format: format}
}

// End 实现 Device, 写出矢量文档
func (d *VectorDevice) End() error {
	c, err := d.finish()
	if err != nil {
		return err
	}
	if d.w == nil {
		return fmt.Errorf("vector device output: %w", ErrDeviceUnavailable)
	}
	wr, err := d.format.writer()
	if err != nil {
		return err
	}
	return c.Write(d.w, wr)
}

// ImageDevice 通过矢量画布光栅化输出PNG的设备
type ImageDevice struct {
	canvasDevice
	w io.Writer
}

// NewImageDevice 创建图像设备
// 入参: w 输出, dpi 分辨率, paper 纸张毫米区域
// 返回: *ImageDevice 设备
func NewImageDevice(w io.Writer, dpi int, paper Envelope) *ImageDevice {
	return &ImageDevice{canvasDevice: canvasDevice{dpi: dpi, paper: paper}, w: w}
}

// End 实现 Device, 光栅化并写出PNG
func (d *ImageDevice) End() error {
	c, err := d.finish()
	if err != nil {
		return err
	}
	if d.w == nil {
		return fmt.Errorf("image device output: %w", ErrDeviceUnavailable)
	}
	dpmm := float64(d.dpi) / MillimetersPerInch
	img := rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace)
	return png.Encode(d.w, img)
}

// PDFPagesDevice 每次 Begin/End 追加一页的多页PDF设备, 最后需调用 Close
type PDFPagesDevice struct {
	canvasDevice
	w     io.Writer
	p     *pdf.PDF
	pages int
}

// NewPDFPagesDevice 创建多页PDF设备
// 入参: w 输出, dpi 逻辑分辨率
// 返回: *PDFPagesDevice 设备
func NewPDFPagesDevice(w io.Writer, dpi int) *PDFPagesDevice {
	return &PDFPagesDevice{canvasDevice: canvasDevice{dpi: dpi}, w: w}
}

// SetPaper 设置下一页的纸张区域
func (d *PDFPagesDevice) SetPaper(paper Envelope) {
	d.paper = paper
}

// End 实现 Device, 将当前页写入文档
func (d *PDFPagesDevice) End() error {
	c, err := d.finish()
	if err != nil {
		return err
	}
	if d.p == nil {
		d.p = pdf.New(d.w, c.W, c.H, nil)
	} else {
		d.p.NewPage(c.W, c.H)
	}
	c.RenderTo(d.p)
	d.pages++
	return nil
}

// Pages 已写入页数
func (d *PDFPagesDevice) Pages() int {
	return d.pages
}

// Close 结束文档
func (d *PDFPagesDevice) Close() error {
	if d.p == nil {
		return fmt.Errorf("pdf without pages: %w", ErrDeviceUnavailable)
	}
	return d.p.Close()
}

// RasterDevice 基于像素光栅的PNG设备
type RasterDevice struct {
	w       io.Writer
	dpi     int
	paper   Envelope
	surface *rasterSurface
}

// NewRasterDevice 创建光栅设备
// 入参: w 输出, dpi 分辨率, paper 纸张毫米区域
// 返回: *RasterDevice 设备
func NewRasterDevice(w io.Writer, dpi int, paper Envelope) *RasterDevice {
	return &RasterDevice{w: w, dpi: dpi, paper: paper}
}

// LogicalDPI 实现 Device
func (d *RasterDevice) LogicalDPI() (int, int) {
	return d.dpi, d.dpi
}

// PaperRect 实现 Device
func (d *RasterDevice) PaperRect() Envelope {
	return d.paper
}

// Begin 实现 Device
func (d *RasterDevice) Begin(widthPx, heightPx int) (Surface, error) {
	if d.surface != nil {
		return nil, fmt.Errorf("device already started: %w", ErrDeviceUnavailable)
	}
	if widthPx <= 0 || heightPx <= 0 {
		return nil, fmt.Errorf("device page %dx%d: %w", widthPx, heightPx, ErrDegenerateGeometry)
	}
	d.surface = newRasterSurface(widthPx, heightPx, d.dpi)
	return d.surface, nil
}

// End 实现 Device, 写出PNG
func (d *RasterDevice) End() error {
	if d.surface == nil {
		return fmt.Errorf("device not started: %w", ErrDeviceUnavailable)
	}
	s := d.surface
	d.surface = nil
	defer s.Close()
	if d.w == nil {
		return fmt.Errorf("raster device output: %w", ErrDeviceUnavailable)
	}
	return s.EncodePNG(d.w)
}
