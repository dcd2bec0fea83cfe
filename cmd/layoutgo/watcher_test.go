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

package main

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncerCoalesces(t *testing.T) {
	fired := make(chan string, 4)
	db := newDebouncer(50*time.Millisecond, func(path string) { fired <- path })
	for range 5 {
		db.trigger("a.json")
	}
	select {
	case p := <-fired:
		if p != "a.json" {
			t.Errorf("fired for %q", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}
	select {
	case p := <-fired:
		t.Errorf("second fire for %q", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDebouncerStop(t *testing.T) {
	var n atomic.Int32
	db := newDebouncer(100*time.Millisecond, func(string) { n.Add(1) })
	db.trigger("a.json")
	db.trigger("b.json")
	db.stop()
	time.Sleep(250 * time.Millisecond)
	if got := n.Load(); got != 0 {
		t.Errorf("stopped debouncer fired %d times", got)
	}
}

func TestEventLoopFiltersInputs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "layout.json")
	w, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		t.Fatal(err)
	}

	fired := make(chan string, 8)
	db := newDebouncer(20*time.Millisecond, func(path string) { fired <- path })
	defer db.stop()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		eventLoop(ctx, w, db, map[string]bool{input: true})
		close(done)
	}()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(input, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case p := <-fired:
		if p != input {
			t.Errorf("fired for %q, want %q", p, input)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the input file")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("event loop did not stop")
	}
}
