package module

import (
	"fmt"
	"sync"
	"testing"

	perr "namematch/internal/platform/errors"
)

type metaPorts struct{ Service string }

func TestRegistry_AddAndPortsAs(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Add(fakeModule{name: "meta", ports: metaPorts{Service: "namematch"}}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Add(fakeModule{name: "reconcile", ports: fixedThreshold(85)}); err != nil {
		t.Fatal(err)
	}

	if got, ok := PortsAs[metaPorts](reg, "meta"); !ok || got.Service != "namematch" {
		t.Fatalf("PortsAs = %v %v", got, ok)
	}
	if _, ok := PortsAs[metaPorts](reg, "missing"); ok {
		t.Fatal("missing name should not resolve")
	}
	if _, ok := PortsAs[metaPorts](reg, "reconcile"); ok {
		t.Fatal("type mismatch should not resolve")
	}
	if names := reg.Names(); len(names) != 2 || names[0] != "meta" || names[1] != "reconcile" {
		t.Fatalf("Names = %v", names)
	}

	err := reg.Add(fakeModule{name: "meta"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("duplicate add = %v", err)
	}
	if got, _ := PortsAs[metaPorts](reg, "meta"); got.Service != "namematch" {
		t.Fatal("duplicate add must not overwrite")
	}
}

func TestRegistry_Nil(t *testing.T) {
	var reg *Registry
	if _, ok := PortsAs[metaPorts](reg, "meta"); ok {
		t.Fatal("nil registry should be empty")
	}
	if reg.Names() != nil {
		t.Fatal("nil registry has no names")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(2)
		name := fmt.Sprintf("mod-%d", i)
		go func() { defer wg.Done(); _ = reg.Add(fakeModule{name: name, ports: metaPorts{}}) }()
		go func() { defer wg.Done(); _, _ = PortsAs[metaPorts](reg, name) }()
	}
	wg.Wait()
	if len(reg.Names()) != 16 {
		t.Fatalf("registered %d modules", len(reg.Names()))
	}
}
