package schema

import (
	"errors"
	"reflect"
	"testing"
)

func TestDescriptorCache_GetOrBuild(t *testing.T) {
	c := newDescriptorCache()
	typ := reflect.TypeOf(scenarioConfig{})

	calls := 0
	build := func(t reflect.Type) (*Descriptor, error) {
		calls++
		return describeStruct(t)
	}

	first, err := c.getOrBuild(typ, build)
	if err != nil {
		t.Fatalf("getOrBuild() error = %v", err)
	}
	second, err := c.getOrBuild(typ, build)
	if err != nil {
		t.Fatalf("getOrBuild() error = %v", err)
	}

	if first != second {
		t.Error("second lookup should return the cached descriptor")
	}
	if calls != 1 {
		t.Errorf("build called %d times, want 1", calls)
	}
	if c.len() != 1 {
		t.Errorf("len() = %d, want 1", c.len())
	}
}

func TestDescriptorCache_ErrorsNotCached(t *testing.T) {
	c := newDescriptorCache()
	typ := reflect.TypeOf(scenarioConfig{})
	boom := errors.New("boom")

	_, err := c.getOrBuild(typ, func(reflect.Type) (*Descriptor, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("getOrBuild() error = %v, want boom", err)
	}
	if c.len() != 0 {
		t.Errorf("len() = %d, want 0 after failed build", c.len())
	}
}

func TestDescriptorCache_ShardStable(t *testing.T) {
	c := newDescriptorCache()
	typ := reflect.TypeOf(scenarioConfig{})
	if c.shardFor(typ) != c.shardFor(typ) {
		t.Error("shardFor should be deterministic")
	}
}
