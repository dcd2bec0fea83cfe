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
	"testing"
)

func TestUndoMoveAndAlign(t *testing.T) {
	s := newTestScene(t)
	a := NewRectangle("a", NewEnvelope(10, 10, 30, 40))
	b := NewRectangle("b", NewEnvelope(50, 100, 100, 120))
	u := NewUndoStack(0)
	for _, it := range []*Item{a, b} {
		if err := u.Push(s, &AddCommand{Item: it}); err != nil {
			t.Fatal(err)
		}
	}
	if err := u.Push(s, &MoveCommand{Names: []string{"a"}, DX: 5, DY: -5}); err != nil {
		t.Fatal(err)
	}
	if a.Box != NewEnvelope(15, 5, 35, 35) {
		t.Fatalf("moved box = %v", a.Box)
	}
	s.SelectItems("a", "b")
	align := &AlignCommand{Mode: ModeAlignRight}
	if err := u.Push(s, align); err != nil {
		t.Fatal(err)
	}
	if a.Box.URx != 100 || b.Box.URx != 100 {
		t.Fatalf("right edges %g, %g", a.Box.URx, b.Box.URx)
	}
	// the recorded names survive a changed selection
	s.DeselectAll()
	if ok, err := u.Undo(s); !ok || err != nil {
		t.Fatalf("Undo(align) = %t, %v", ok, err)
	}
	if a.Box != NewEnvelope(15, 5, 35, 35) {
		t.Errorf("box after undoing align = %v", a.Box)
	}
	if ok, err := u.Redo(s); !ok || err != nil {
		t.Fatalf("Redo(align) = %t, %v", ok, err)
	}
	if a.Box.URx != 100 {
		t.Errorf("box after redoing align = %v", a.Box)
	}
	for u.CanUndo() {
		if _, err := u.Undo(s); err != nil {
			t.Fatal(err)
		}
	}
	if len(s.Items()) != 0 {
		t.Errorf("items after undoing all: %d", len(s.Items()))
	}
	if ok, _ := u.Undo(s); ok {
		t.Error("Undo on an empty history returned true")
	}
	if u.Len() != 4 || !u.CanRedo() {
		t.Errorf("Len() = %d, CanRedo() = %t", u.Len(), u.CanRedo())
	}
}

func TestUndoTruncatesRedo(t *testing.T) {
	s := newTestScene(t)
	u := NewUndoStack(0)
	if err := u.Push(s, &AddCommand{Item: NewRectangle("a", NewEnvelope(0, 0, 1, 1))}); err != nil {
		t.Fatal(err)
	}
	if err := u.Push(s, &RemoveCommand{Name: "a"}); err != nil {
		t.Fatal(err)
	}
	if s.Item("a") != nil {
		t.Fatal("remove did not remove")
	}
	if _, err := u.Undo(s); err != nil {
		t.Fatal(err)
	}
	if s.Item("a") == nil {
		t.Fatal("undo remove did not restore")
	}
	if err := u.Push(s, &MoveCommand{Names: []string{"a"}, DX: 1}); err != nil {
		t.Fatal(err)
	}
	if u.CanRedo() || u.Len() != 2 {
		t.Errorf("redo tail kept: Len() = %d", u.Len())
	}
}

func TestUndoLimit(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddItem(NewRectangle("a", NewEnvelope(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	u := NewUndoStack(3)
	for range 5 {
		if err := u.Push(s, &MoveCommand{Names: []string{"a"}, DX: 1}); err != nil {
			t.Fatal(err)
		}
	}
	if u.Len() != 3 || u.Limit() != 3 {
		t.Fatalf("Len() = %d, Limit() = %d", u.Len(), u.Limit())
	}
	for u.CanUndo() {
		if _, err := u.Undo(s); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Item("a").Box.LLx; got != 2 {
		t.Errorf("LLx after undoing the limit = %g, want 2", got)
	}
}

func TestUndoFailedCommand(t *testing.T) {
	s := newTestScene(t)
	u := NewUndoStack(10)
	if err := u.Push(s, &RemoveCommand{Name: "missing"}); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("Push(remove missing) = %v", err)
	}
	if u.Len() != 0 {
		t.Error("failed command entered the history")
	}
	if err := u.Push(nil, &MoveCommand{}); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("Push(nil scene) = %v", err)
	}
}
