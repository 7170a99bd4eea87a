package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/lemonberrylabs/numcalc/pkg/expr"
	"github.com/lemonberrylabs/numcalc/pkg/types"
)

func record(s *Store, input string) *Evaluation {
	res, err := expr.EvaluateDetailed(input)
	return s.Record(input, "test", res, err)
}

func TestRecordSuccessAndFailure(t *testing.T) {
	s := New(10)

	ok := record(s, "IV*II")
	if ok.State != EvaluationSucceeded || ok.Output != "VIII" || !ok.Roman {
		t.Fatalf("unexpected success record: %+v", ok)
	}

	bad := record(s, "IV+3")
	if bad.State != EvaluationFailed {
		t.Fatalf("expected FAILED, got %s", bad.State)
	}
	if bad.Error == nil || bad.Error.Kind != types.KindMixedNumeralSystems {
		t.Fatalf("unexpected error: %+v", bad.Error)
	}

	got, err := s.Get(ok.Name)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != ok {
		t.Error("Get returned a different record")
	}

	if _, err := s.Get("eval-999"); err == nil {
		t.Error("expected not found error")
	}
}

func TestRecordStripsWhitespace(t *testing.T) {
	s := New(10)
	ev := record(s, " IV * II\n")
	if ev.Input != "IV*II" || ev.Output != "VIII" {
		t.Fatalf("unexpected record %+v", ev)
	}
}

func TestListNewestFirstAndEviction(t *testing.T) {
	s := New(3)
	for i := 1; i <= 5; i++ {
		record(s, fmt.Sprintf("%d+1", i))
	}

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	if list[0].Name != "eval-5" || list[2].Name != "eval-3" {
		t.Errorf("unexpected order: %s .. %s", list[0].Name, list[2].Name)
	}
	if _, err := s.Get("eval-1"); err == nil {
		t.Error("expected eval-1 to be evicted")
	}
}

func TestClearAndStats(t *testing.T) {
	s := New(0)
	record(s, "1+1")
	record(s, "X-I")
	record(s, "1.5+2")

	st := s.Stats()
	if st.Total != 3 || st.Succeeded != 2 || st.Failed != 1 || st.Roman != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}

	s.Clear()
	if len(s.List()) != 0 {
		t.Fatal("expected empty store after Clear")
	}
	if ev := record(s, "2+2"); ev.Name != "eval-4" {
		t.Errorf("expected IDs to keep increasing, got %s", ev.Name)
	}
}

func TestConcurrentRecord(t *testing.T) {
	s := New(1000)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record(s, "5*2")
		}()
	}
	wg.Wait()

	if st := s.Stats(); st.Total != 50 {
		t.Fatalf("expected 50 records, got %d", st.Total)
	}
}
