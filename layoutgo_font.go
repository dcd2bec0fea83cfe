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
	"image/color"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/goregular"
)

// labelFonts 标注字体加载器
type labelFonts struct {
	name     string
	fontDirs []string
	fontFS   []fs.FS
	family   *canvas.FontFamily
}

// newLabelFonts 创建标注字体加载器
// 入参: name 字体名称, dirs 外部字体目录, fsys 外部字体文件系统
// 返回: *labelFonts 加载器
func newLabelFonts(name string, dirs []string, fsys []fs.FS) *labelFonts {
	return &labelFonts{name: name, fontDirs: dirs, fontFS: fsys}
}

// load 加载字体族, 依次尝试字体目录、字体文件系统、系统字体, 最后回退到 Go Regular
// 返回: *canvas.FontFamily 字体族
func (f *labelFonts) load() *canvas.FontFamily {
	if f.family != nil {
		return f.family
	}
	ff := canvas.NewFontFamily("label")
	if f.name != "" {
		for _, dir := range f.fontDirs {
			matches, _ := filepath.Glob(filepath.Join(dir, f.name+"*"))
			for _, m := range matches {
				ext := strings.ToLower(filepath.Ext(m))
				if ext == ".ttf" || ext == ".otf" || ext == ".ttc" {
					if err := ff.LoadFontFile(m, canvas.FontRegular); err == nil {
						f.family = ff
						return ff
					}
				}
			}
		}
		for _, fsys := range f.fontFS {
			matches, err := fs.Glob(fsys, f.name+"*")
			if err != nil {
				continue
			}
			for _, m := range matches {
				data, err := fs.ReadFile(fsys, m)
				if err != nil {
					continue
				}
				if err := ff.LoadFont(data, 0, canvas.FontRegular); err == nil {
					f.family = ff
					return ff
				}
			}
		}
		if err := ff.LoadSystemFont(f.name, canvas.FontRegular); err == nil {
			f.family = ff
			return ff
		}
		Logger().Warn("label font not found, using Go Regular", "font", f.name)
	}
	if err := ff.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		Logger().Warn("load Go Regular", "err", err)
	}
	f.family = ff
	return ff
}

// face 获取指定字号与颜色的字形
// 入参: sizePt 字号(磅), col 颜色
// 返回: *canvas.FontFace 字形
func (f *labelFonts) face(sizePt float64, col color.Color) *canvas.FontFace {
	if col == nil {
		col = canvas.Black
	}
	return f.load().Face(sizePt, col, canvas.FontRegular, canvas.FontNormal)
}
