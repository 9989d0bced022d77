package engine

import (
	"reflect"
	"sync"
	"testing"
)

func TestDefaultFactoryList(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	want := []string{"dynamic", "pool", "queue"}
	if got := f.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if got := len(f.GetAll()); got != 3 {
		t.Errorf("len(GetAll()) = %d, want 3", got)
	}
}

func TestDefaultFactoryGet(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	e1, err := f.Get("dynamic")
	if err != nil {
		t.Fatal(err)
	}
	e2, _ := f.Get("dynamic")
	if e1 != e2 {
		t.Error("Get should return the cached engine")
	}
	if _, err := f.Get("missing"); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestDefaultFactoryRegister(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	if err := f.Register("dynamic", func() Scheduler { return DynamicScheduler{} }); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := f.Register("dynamic2", func() Scheduler { return DynamicScheduler{} }); err != nil {
		t.Fatal(err)
	}
	e, err := f.Get("dynamic2")
	if err != nil {
		t.Fatal(err)
	}
	if e.Name() != (DynamicScheduler{}).Name() {
		t.Errorf("Name() = %q", e.Name())
	}
}

func TestDefaultFactoryConcurrentGet(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, name := range f.List() {
				if _, err := f.Get(name); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
}
