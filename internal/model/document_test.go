package model

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDocumentRecord_FileName(t *testing.T) {
	record := DocumentRecord{
		ID:              uuid.MustParse("abcdef01-2345-6789-abcd-ef0123456789"),
		CurrentLocation: "/old/location",
		CreatedOn:       time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC),
		SequenceNumber:  42,
	}

	want := "abcdef0123456789abcdef0123456789.zip"
	if got := record.FileName(); got != want {
		t.Errorf("FileName() = %q, want %q", got, want)
	}

	wantPath := filepath.Join("/old/location", want)
	if got := record.SourcePath(); got != wantPath {
		t.Errorf("SourcePath() = %q, want %q", got, wantPath)
	}
}

func TestStatus_Terminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusSuccess, true},
		{StatusFileMissing, true},
		{StatusMoveFailedAfterUpdate, true},
		{StatusRootFolderMissing, false},
		{StatusFilesystemError, false},
		{StatusUpdateFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Terminal() = %v, want %v", got, tt.want)
			}
		})
	}
}
