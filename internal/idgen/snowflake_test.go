package idgen

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewExtensionNo(t *testing.T) {
	if err := InitNode("default", 1); err != nil {
		t.Fatalf("init node: %v", err)
	}

	no := NewExtensionNo()
	prefix := time.Now().Format("20060102")
	if !strings.HasPrefix(no, prefix) {
		t.Fatalf("extension no should carry time prefix: %s", no)
	}

	// 并发生成不允许重复
	const n = 200
	var mu sync.Mutex
	seen := make(map[string]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			no := NewExtensionNo()
			mu.Lock()
			if seen[no] {
				t.Errorf("duplicate extension no: %s", no)
			}
			seen[no] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
}

func TestNewFromUninitialized(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for uninitialized node")
		}
	}()
	NewFrom("no-such-node")
}
