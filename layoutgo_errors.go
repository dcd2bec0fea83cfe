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

import "errors"

var (
	// ErrDegenerateGeometry 零宽或零高的矩形参与了变换
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrMissingCollaborator 场景、上下文或纸张尚未绑定
	ErrMissingCollaborator = errors.New("missing collaborator")
	// ErrUnknownEnumValue 无法识别的枚举值
	ErrUnknownEnumValue = errors.New("unknown enum value")
	// ErrDeviceUnavailable 打印或导出设备不可用
	ErrDeviceUnavailable = errors.New("device unavailable")
	// ErrZoomLimit 缩放比例超出视图限制
	ErrZoomLimit = errors.New("zoom limit exceeded")
	// ErrDuplicateItem 场景中已存在同名图元
	ErrDuplicateItem = errors.New("duplicate item")
)
