package request

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fhuszti/asset-portal-go/internal/model"
)

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func validDraft() model.RequestDraft {
	return model.RequestDraft{
		RequesterName:  "Ana García",
		RequesterEmail: "ana@example.com",
		Purpose:        "artwork for the spring campaign site",
		Deadline:       isoDate(time.Now().AddDate(0, 0, 7)),
	}
}

func TestSubmit_Success(t *testing.T) {
	be := &mockBackend{}
	svc := NewSubmitter(be)

	ids := []string{"image-a.jpg", "video-b.mp4"}
	if err := svc.Submit(context.Background(), validDraft(), ids); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if be.createCalls != 1 {
		t.Fatalf("createCalls = %d, want exactly 1", be.createCalls)
	}
	in := be.createdWith
	if in.AssetsCount != 2 || len(in.Items) != 2 {
		t.Errorf("assetsCount = %d with %d items, count must equal len(items)", in.AssetsCount, len(in.Items))
	}
	if in.Items[0] != "image-a.jpg" || in.Items[1] != "video-b.mp4" {
		t.Errorf("item order must be preserved, got %v", in.Items)
	}
	if in.RequesterName != "Ana García" {
		t.Errorf("RequesterName = %q", in.RequesterName)
	}
}

func TestSubmit_EmptySelection(t *testing.T) {
	be := &mockBackend{}
	svc := NewSubmitter(be)

	err := svc.Submit(context.Background(), validDraft(), nil)
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if be.createCalls != 0 {
		t.Error("no network call may happen for an empty selection")
	}
}

func TestSubmit_AllFieldsInvalid(t *testing.T) {
	be := &mockBackend{}
	svc := NewSubmitter(be)

	draft := model.RequestDraft{
		RequesterName:  "A ", // trims to a single character
		RequesterEmail: "bad-email",
		Purpose:        "short",
		Deadline:       isoDate(time.Now().AddDate(0, 0, -1)),
	}

	err := svc.Submit(context.Background(), draft, []string{"image-a.jpg"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	for _, field := range []string{"requesterName", "requesterEmail", "purpose", "deadline"} {
		if _, ok := vErr.Fields[field]; !ok {
			t.Errorf("field %q should fail validation, got %v", field, vErr.Fields)
		}
	}
	if be.createCalls != 0 {
		t.Error("no network call may happen when validation fails")
	}
}

func TestSubmit_DeadlineCalendarComparison(t *testing.T) {
	cases := []struct {
		name     string
		deadline string
		wantOK   bool
	}{
		{"today passes even at 23:59 local", isoDate(time.Now()), true},
		{"tomorrow passes", isoDate(time.Now().AddDate(0, 0, 1)), true},
		{"yesterday fails", isoDate(time.Now().AddDate(0, 0, -1)), false},
		{"garbage fails", "not-a-date", false},
		{"timestamp precision is ignored", isoDate(time.Now()), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			be := &mockBackend{}
			svc := NewSubmitter(be)

			draft := validDraft()
			draft.Deadline = tc.deadline

			err := svc.Submit(context.Background(), draft, []string{"image-a.jpg"})
			if tc.wantOK && err != nil {
				t.Fatalf("deadline %q should pass, got %v", tc.deadline, err)
			}
			if !tc.wantOK {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("deadline %q should fail validation, got %v", tc.deadline, err)
				}
				if vErr.Fields["deadline"] == "" {
					t.Errorf("deadline should be the failing field, got %v", vErr.Fields)
				}
			}
		})
	}
}

func TestSubmit_TrimmedLengthRules(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*model.RequestDraft)
		badField string
	}{
		{"name of spaces", func(d *model.RequestDraft) { d.RequesterName = "   " }, "requesterName"},
		{"purpose padded under 10", func(d *model.RequestDraft) { d.Purpose = "  too short  " }, "purpose"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewSubmitter(&mockBackend{})
			draft := validDraft()
			tc.mutate(&draft)

			err := svc.Submit(context.Background(), draft, []string{"image-a.jpg"})
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if _, ok := vErr.Fields[tc.badField]; !ok {
				t.Errorf("expected %q to fail, got %v", tc.badField, vErr.Fields)
			}
		})
	}
}

func TestSubmit_BackendFailurePropagates(t *testing.T) {
	be := &mockBackend{createErr: errors.New("backend answered with status 500")}
	svc := NewSubmitter(be)

	err := svc.Submit(context.Background(), validDraft(), []string{"image-a.jpg"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		t.Fatal("a transport failure must not masquerade as a validation error")
	}
	if be.createCalls != 1 {
		t.Errorf("createCalls = %d, want exactly 1 (no retry)", be.createCalls)
	}
}
