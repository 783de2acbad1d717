/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/mikeb26/bcc-swiss/s3store"
	"github.com/mikeb26/bcc-swiss/swiss"
)

// fakeObjects is an in-memory objectStore.
type fakeObjects struct {
	mu   sync.Mutex
	objs map[string][]byte
}

func (f *fakeObjects) GetObject(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objs[key]
	if !ok {
		return nil, fmt.Errorf("%v: %w", key, s3store.ErrNotFound)
	}
	return data, nil
}

func (f *fakeObjects) PutObject(_ context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objs[key] = append([]byte{}, data...)
	return nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objs, key)
	return nil
}

func (f *fakeObjects) ListObjects(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, strings.TrimPrefix(k, prefix))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func sampleState(t *testing.T) *swiss.State {
	t.Helper()
	regs := []swiss.Registrant{
		{ID: "1", FirstName: "Ann", LastName: "Lee", Rating: 1850},
		{ID: "2", FirstName: "Bo", LastName: "Chan", Rating: 1720},
		{ID: "3", FirstName: "Cy", LastName: "Roe"},
	}
	s, err := swiss.NewState(regs, 3)
	if err != nil {
		t.Fatalf("NewState returned error: %v", err)
	}
	s, err = s.Generate(swiss.Options{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	s, err = s.SubmitResult(1, swiss.ResultDraw)
	if err != nil {
		t.Fatalf("SubmitResult returned error: %v", err)
	}
	return &s
}

func testStore(t *testing.T, st Store) {
	ctx := context.Background()

	if _, err := st.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing): got %v; want ErrNotFound", err)
	}
	if err := st.Save(ctx, "../escape", sampleState(t)); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Save(../escape): got %v; want ErrInvalidID", err)
	}

	want := sampleState(t)
	if err := st.Save(ctx, "spring-open", want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := st.Save(ctx, "club-ch.2026", want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := st.Load(ctx, "spring-open")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.ID != want.ID || got.Round != want.Round || got.ByeID != want.ByeID ||
		len(got.Competitors) != 3 || len(got.Pairings) != 1 ||
		got.Pairings[0] != want.Pairings[0] {
		t.Errorf("loaded snapshot differs: %+v vs %+v", got, want)
	}
	if got.Phase() != swiss.PhaseReadyToAdvance {
		t.Errorf("phase = %v; want ready to advance", got.Phase())
	}

	ids, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "club-ch.2026" || ids[1] != "spring-open" {
		t.Errorf("List = %v", ids)
	}

	if err := st.Delete(ctx, "spring-open"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := st.Delete(ctx, "spring-open"); err != nil {
		t.Errorf("second Delete returned error: %v", err)
	}
	if _, err := st.Load(ctx, "spring-open"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete: got %v; want ErrNotFound", err)
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	testStore(t, st)

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range ents {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temporary file left behind: %v", e.Name())
		}
	}
}

func TestS3Store(t *testing.T) {
	fake := &fakeObjects{objs: make(map[string][]byte)}
	testStore(t, &S3Store{objects: fake})

	if _, ok := fake.objs["tournaments/club-ch.2026.json"]; !ok {
		t.Errorf("expected object under tournaments/, have %v", fake.objs)
	}
}

func TestValidateID(t *testing.T) {
	cases := []struct {
		id string
		ok bool
	}{
		{"spring-open", true},
		{"2026_club.ch", true},
		{"", false},
		{".hidden", false},
		{"a/b", false},
		{"has space", false},
	}
	for _, c := range cases {
		t.Run(c.id, func(t *testing.T) {
			err := ValidateID(c.id)
			if (err == nil) != c.ok {
				t.Errorf("ValidateID(%q) = %v; want ok=%v", c.id, err, c.ok)
			}
		})
	}
}
