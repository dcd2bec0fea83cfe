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

// defaultUndoLimit 默认撤销栈上限
const defaultUndoLimit = 100

// Command 可撤销的场景命令
type Command interface {
	Redo(s *Scene) error
	Undo(s *Scene) error
	Text() string
}

// MoveCommand 平移图元
type MoveCommand struct {
	Names  []string
	DX, DY float64
}

// Redo 实现 Command
func (c *MoveCommand) Redo(s *Scene) error {
	return moveItems(s, c.Names, c.DX, c.DY)
}

// Undo 实现 Command
func (c *MoveCommand) Undo(s *Scene) error {
	return moveItems(s, c.Names, -c.DX, -c.DY)
}

// Text 实现 Command
func (c *MoveCommand) Text() string {
	return fmt.Sprintf("move %d item(s)", len(c.Names))
}

func moveItems(s *Scene, names []string, dx, dy float64) error {
	items, err := lookupItems(s, names)
	if err != nil {
		return err
	}
	for _, it := range items {
		it.MoveBy(dx, dy)
		s.ItemChanged(it.Name)
	}
	return nil
}

// AlignCommand 对齐图元, 首次执行时记录平移量
type AlignCommand struct {
	Mode    Mode
	Names   []string
	offsets []Point
}

// Redo 实现 Command
func (c *AlignCommand) Redo(s *Scene) error {
	items, err := lookupItems(s, c.Names)
	if err != nil {
		return err
	}
	if c.offsets == nil {
		paper, err := s.PaperBox()
		if err != nil {
			return err
		}
		if c.offsets, err = AlignOffsets(paper, items, c.Mode); err != nil {
			return err
		}
		if len(c.Names) == 0 {
			for _, it := range items {
				c.Names = append(c.Names, it.Name)
			}
		}
	}
	for i, it := range items {
		it.MoveBy(c.offsets[i].X, c.offsets[i].Y)
		s.ItemChanged(it.Name)
	}
	return nil
}

// Undo 实现 Command
func (c *AlignCommand) Undo(s *Scene) error {
	items, err := lookupItems(s, c.Names)
	if err != nil {
		return err
	}
	for i, it := range items {
		if i < len(c.offsets) {
			it.MoveBy(-c.offsets[i].X, -c.offsets[i].Y)
			s.ItemChanged(it.Name)
		}
	}
	return nil
}

// Text 实现 Command
func (c *AlignCommand) Text() string {
	return c.Mode.String()
}

// AddCommand 添加图元
type AddCommand struct {
	Item *Item
}

// Redo 实现 Command
func (c *AddCommand) Redo(s *Scene) error {
	return s.AddItem(c.Item)
}

// Undo 实现 Command
func (c *AddCommand) Undo(s *Scene) error {
	if s.RemoveItem(c.Item.Name) == nil {
		return fmt.Errorf("item %q: %w", c.Item.Name, ErrMissingCollaborator)
	}
	return nil
}

// Text 实现 Command
func (c *AddCommand) Text() string {
	return "add " + c.Item.Name
}

// RemoveCommand 删除图元
type RemoveCommand struct {
	Name string
	item *Item
}

// Redo 实现 Command
func (c *RemoveCommand) Redo(s *Scene) error {
	it := s.RemoveItem(c.Name)
	if it == nil {
		return fmt.Errorf("item %q: %w", c.Name, ErrMissingCollaborator)
	}
	c.item = it
	return nil
}

// Undo 实现 Command
func (c *RemoveCommand) Undo(s *Scene) error {
	if c.item == nil {
		return fmt.Errorf("item %q not removed: %w", c.Name, ErrMissingCollaborator)
	}
	return s.AddItem(c.item)
}

// Text 实现 Command
func (c *RemoveCommand) Text() string {
	return "remove " + c.Name
}

// UndoStack 撤销栈
type UndoStack struct {
	cmds  []Command
	index int
	limit int
}

// NewUndoStack 创建撤销栈
// 入参: limit 上限, 非正数表示不限
// 返回: *UndoStack 撤销栈
func NewUndoStack(limit int) *UndoStack {
	return &UndoStack{limit: limit}
}

// Push 执行命令并入栈, 丢弃可重做部分
// 入参: s 场景, cmd 命令
// 返回: error 错误信息
func (u *UndoStack) Push(s *Scene, cmd Command) error {
	if s == nil {
		return fmt.Errorf("undo push: %w", ErrMissingCollaborator)
	}
	if err := cmd.Redo(s); err != nil {
		return err
	}
	u.cmds = append(u.cmds[:u.index], cmd)
	if u.limit > 0 && len(u.cmds) > u.limit {
		u.cmds = u.cmds[len(u.cmds)-u.limit:]
	}
	u.index = len(u.cmds)
	return nil
}

// Undo 撤销上一条命令
// 返回: bool 是否撤销, error 错误信息
func (u *UndoStack) Undo(s *Scene) (bool, error) {
	if u.index == 0 {
		return false, nil
	}
	if err := u.cmds[u.index-1].Undo(s); err != nil {
		return false, err
	}
	u.index--
	return true, nil
}

// Redo 重做下一条命令
// 返回: bool 是否重做, error 错误信息
func (u *UndoStack) Redo(s *Scene) (bool, error) {
	if u.index == len(u.cmds) {
		return false, nil
	}
	if err := u.cmds[u.index].Redo(s); err != nil {
		return false, err
	}
	u.index++
	return true, nil
}

// CanUndo 是否可撤销
func (u *UndoStack) CanUndo() bool { return u.index > 0 }

// CanRedo 是否可重做
func (u *UndoStack) CanRedo() bool { return u.index < len(u.cmds) }

// Len 栈中命令数
func (u *UndoStack) Len() int { return len(u.cmds) }

// Limit 撤销栈上限
func (u *UndoStack) Limit() int { return u.limit }

// Clear 清空撤销栈
func (u *UndoStack) Clear() {
	u.cmds, u.index = nil, 0
}
