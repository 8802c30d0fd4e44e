package utils

import (
	"testing"
	"time"
)

func TestResolveYearlessDateInsideWindow(t *testing.T) {
	start := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	got, ok := ResolveYearlessDate("16 Nov", start, end)
	if !ok {
		t.Fatal("expected yearless date to parse")
	}
	want := time.Date(2024, 11, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ResolveYearlessDate = %v, want %v", got, want)
	}
}

func TestResolveYearlessDateAcrossYearBoundary(t *testing.T) {
	// A late-December window queried for a date that belongs to the old
	// year must not be pinned to the newer one.
	start := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	got, ok := ResolveYearlessDate("28 Dec", start, end)
	if !ok {
		t.Fatal("expected yearless date to parse")
	}
	if got.Year() != 2024 {
		t.Errorf("year = %d, want 2024", got.Year())
	}

	got, ok = ResolveYearlessDate("5 Jan", start, end)
	if !ok {
		t.Fatal("expected yearless date to parse")
	}
	if got.Year() != 2025 {
		t.Errorf("year = %d, want 2025", got.Year())
	}
}

func TestResolveYearlessDateRejectsFullDates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	if _, ok := ResolveYearlessDate("2024-11-16", start, end); ok {
		t.Error("full dates should not resolve as yearless")
	}
	if _, ok := ResolveYearlessDate("garbage", start, end); ok {
		t.Error("garbage should not resolve")
	}
}

func TestFormatDisplayFallsBackToOriginal(t *testing.T) {
	if got := FormatDisplay("2024-11-16T10:05:00Z"); got != "16 Nov 2024 10:05" {
		t.Errorf("FormatDisplay = %q", got)
	}
	if got := FormatDisplay("not a date"); got != "not a date" {
		t.Errorf("unparseable input should pass through, got %q", got)
	}
}
