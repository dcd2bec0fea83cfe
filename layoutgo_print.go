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
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	// DefaultPrintDPI 默认导出分辨率
	DefaultPrintDPI = 300
	// pdfSizeTolerance PDF页面尺寸允许误差(毫米)
	pdfSizeTolerance = 0.5
)

// Intent 打印意图
type Intent int

const (
	IntentPreview Intent = iota
	IntentCommit
)

// String 打印意图名称
func (i Intent) String() string {
	if i == IntentPreview {
		return "preview"
	}
	return "commit"
}

// PrintState 打印会话状态
type PrintState int

const (
	NoPrinter PrintState = iota
	PreviewScene
	PrintingScene
)

// String 打印状态名称
func (s PrintState) String() string {
	switch s {
	case PreviewScene:
		return "PreviewScene"
	case PrintingScene:
		return "PrintingScene"
	}
	return "NoPrinter"
}

// PrintScene 以设备分辨率渲染场景, 不影响交互上下文
type PrintScene struct {
	scene *Scene
	state PrintState
	fonts *labelFonts
}

// NewPrintScene 创建打印场景
// 入参: scene 场景
// 返回: *PrintScene 打印场景
func NewPrintScene(scene *Scene) *PrintScene {
	return &PrintScene{scene: scene}
}

// State 当前打印状态
func (p *PrintScene) State() PrintState {
	return p.state
}

// PrintPaper 将纸张打印到设备
// 入参: dev 设备, intent 打印意图
// 返回: error 错误信息
func (p *PrintScene) PrintPaper(dev Device, intent Intent) error {
	return p.render(dev, intent, ModePrinter)
}

func (p *PrintScene) paperBox() (Envelope, error) {
	if p.scene == nil {
		return Envelope{}, fmt.Errorf("print scene: %w", ErrMissingCollaborator)
	}
	return p.scene.PaperBox()
}

func (p *PrintScene) render(dev Device, intent Intent, mode Mode) error {
	if p.scene == nil {
		return fmt.Errorf("print: %w", ErrMissingCollaborator)
	}
	if dev == nil {
		return fmt.Errorf("print: no device: %w", ErrDeviceUnavailable)
	}
	dpiX, dpiY := dev.LogicalDPI()
	if dpiX <= 0 || dpiY <= 0 {
		return fmt.Errorf("print: device dpi %dx%d: %w", dpiX, dpiY, ErrDeviceUnavailable)
	}
	paper, err := p.paperBox()
	if err != nil {
		return fmt.Errorf("print: %w", err)
	}
	if rect := dev.PaperRect(); rect.IsValid() && (math.Abs(rect.Width()-paper.Width()) > pdfSizeTolerance || math.Abs(rect.Height()-paper.Height()) > pdfSizeTolerance) {
		Logger().Warn("device paper differs from scene paper", "device", rect.String(), "paper", paper.String())
	}
	if intent == IntentPreview {
		p.state = PreviewScene
	} else {
		p.state = PrintingScene
	}
	defer func() { p.state = NoPrinter }()
	Logger().Info("print begin", "intent", intent, "mode", mode, "dpi", dpiX, "paper", paper.String())
	ctx := p.scene.Context().WithZoom(100).WithDPI(dpiX, dpiY).WithMode(mode)
	return p.scene.WithContext(ctx, func() error {
		box, err := p.scene.ViewportBoxFromMM(paper, true)
		if err != nil {
			return err
		}
		t, err := NewWorldTransformer(paper, NewEnvelope(0, 0, box.Width(), box.Height()))
		if err != nil {
			return err
		}
		t.SetMirroring(true)
		s, err := dev.Begin(int(box.Width()), int(box.Height()))
		if err != nil {
			return err
		}
		drawPaper(s, t, paper, false)
		drawItems(s, t, p.scene.Items(), drawOptions{printableOnly: true, grids: p.scene.grids})
		if err := dev.End(); err != nil {
			return err
		}
		Logger().Info("print end", "intent", intent, "width", box.Width(), "height", box.Height())
		return nil
	})
}

// pdfConfig PDF导出配置
type pdfConfig struct {
	dpi   int
	check bool
	fonts *labelFonts
}

// PDFOption PDF导出配置选项
type PDFOption func(*pdfConfig)

// WithPDFDPI 设置导出分辨率
func WithPDFDPI(dpi int) PDFOption {
	return func(c *pdfConfig) {
		c.dpi = dpi
	}
}

// WithPDFCheck 导出后校验PDF结构与页面尺寸
func WithPDFCheck() PDFOption {
	return func(c *pdfConfig) {
		c.check = true
	}
}

func newPDFConfig(fonts *labelFonts, opts []PDFOption) pdfConfig {
	c := pdfConfig{dpi: DefaultPrintDPI, fonts: fonts}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ExportToPDF 导出为单页PDF
// 入参: w 输出, opts 配置选项
// 返回: error 错误信息
func (p *PrintScene) ExportToPDF(w io.Writer, opts ...PDFOption) error {
	cfg := newPDFConfig(p.fonts, opts)
	paper, err := p.paperBox()
	if err != nil {
		return err
	}
	out := w
	var buf bytes.Buffer
	if cfg.check {
		out = &buf
	}
	dev := NewVectorDevice(out, FormatPDF, cfg.dpi, paper)
	dev.fonts = cfg.fonts
	if err := p.render(dev, IntentCommit, ModeExportToPDF); err != nil {
		return err
	}
	if !cfg.check {
		return nil
	}
	info, err := InspectPDF(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return err
	}
	if err := info.CheckPageSize(paper.Width(), paper.Height()); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// ExportVector 导出为矢量文档
// 入参: w 输出, format 格式, dpi 逻辑分辨率
// 返回: error 错误信息
func (p *PrintScene) ExportVector(w io.Writer, format VectorFormat, dpi int) error {
	paper, err := p.paperBox()
	if err != nil {
		return err
	}
	dev := NewVectorDevice(w, format, dpi, paper)
	dev.fonts = p.fonts
	return p.render(dev, IntentCommit, ModeExportToPDF)
}

// ExportToImage 导出为PNG
// 入参: w 输出, dpi 分辨率
// 返回: error 错误信息
func (p *PrintScene) ExportToImage(w io.Writer, dpi int) error {
	paper, err := p.paperBox()
	if err != nil {
		return err
	}
	dev := NewImageDevice(w, dpi, paper)
	dev.fonts = p.fonts
	return p.render(dev, IntentCommit, ModeExportToPDF)
}

// ExportScenesToPDF 将多个场景导出为多页PDF
// 入参: w 输出, dpi 逻辑分辨率, scenes 场景
// 返回: error 错误信息
func ExportScenesToPDF(w io.Writer, dpi int, scenes ...*Scene) error {
	if len(scenes) == 0 {
		return fmt.Errorf("export pdf: no scenes: %w", ErrMissingCollaborator)
	}
	dev := NewPDFPagesDevice(w, dpi)
	for i, s := range scenes {
		paper, err := s.PaperBox()
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		dev.SetPaper(paper)
		if err := NewPrintScene(s).render(dev, IntentCommit, ModeExportToPDF); err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	return dev.Close()
}

// PDFInfo 导出PDF的检查结果, 尺寸为毫米
type PDFInfo struct {
	Pages   int
	Widths  []float64
	Heights []float64
}

// InspectPDF 校验PDF并读取页面尺寸
// 入参: rs PDF数据
// 返回: *PDFInfo 检查结果, error 错误信息
func InspectPDF(rs io.ReadSeeker) (*PDFInfo, error) {
	conf := model.NewDefaultConfiguration()
	if err := api.Validate(rs, conf); err != nil {
		return nil, fmt.Errorf("validate pdf: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	dims, err := api.PageDims(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("reading PDF page dims: %w", err)
	}
	info := &PDFInfo{Pages: len(dims)}
	for _, d := range dims {
		info.Widths = append(info.Widths, d.Width*MillimetersPerInch/72)
		info.Heights = append(info.Heights, d.Height*MillimetersPerInch/72)
	}
	return info, nil
}

// CheckPageSize 检查每一页尺寸与纸张一致
// 入参: wMM 宽度(毫米), hMM 高度(毫米)
// 返回: error 错误信息
func (i *PDFInfo) CheckPageSize(wMM, hMM float64) error {
	if i.Pages == 0 {
		return fmt.Errorf("no pages found in PDF")
	}
	for n := range i.Pages {
		if math.Abs(i.Widths[n]-wMM) > pdfSizeTolerance || math.Abs(i.Heights[n]-hMM) > pdfSizeTolerance {
			return fmt.Errorf("page %d is %.2fx%.2f mm, want %.2fx%.2f mm", n+1, i.Widths[n], i.Heights[n], wMM, hMM)
		}
	}
	return nil
}
