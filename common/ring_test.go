package common

import (
	"reflect"
	"sync"
	"testing"
)

func TestRingBuffer_Get(t *testing.T) {
	rb := NewRingBuffer[int](3)
	if got := rb.Get(); len(got) != 0 {
		t.Errorf("Expected empty, but got %v", got)
	}
	rb.Add(1)
	rb.Add(2)
	if got := rb.Get(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Expected [1 2], but got %v", got)
	}
	rb.Add(3)
	rb.Add(4)
	if got := rb.Get(); !reflect.DeepEqual(got, []int{2, 3, 4}) {
		t.Errorf("Expected [2 3 4], but got %v", got)
	}
	if rb.Len() != 3 {
		t.Errorf("Expected len 3, but got %d", rb.Len())
	}
}

func TestRingBuffer_Last(t *testing.T) {
	rb := NewRingBuffer[string](2)
	if _, ok := rb.Last(); ok {
		t.Error("Expected no last value")
	}
	for _, s := range []string{"a", "b", "c"} {
		rb.Add(s)
		if last, ok := rb.Last(); !ok || last != s {
			t.Errorf("Expected %s, but got %s", s, last)
		}
	}
}

func TestRingBuffer_Concurrent(t *testing.T) {
	rb := NewRingBuffer[int](10)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rb.Add(i)
		}(i)
	}
	wg.Wait()
	if rb.Len() != 10 || len(rb.Get()) != 10 {
		t.Errorf("Expected 10 values, but got %d", rb.Len())
	}
}
