package content

import (
	"context"
	"errors"
	"testing"

	"garden/internal/domain"
	"garden/internal/domain/models/content"
	contentSvc "garden/internal/domain/services/content"
)

func newTestUploadService(nodeRepo *fakeNodeRepo, payloadRepo *fakePayloadRepo) contentSvc.UploadService {
	return NewUploadService(
		nodeRepo,
		payloadRepo,
		&fakeTxManager{},
		NewParentValidator(nodeRepo),
		testLogger(),
	)
}

func TestInitiateUpload(t *testing.T) {
	nodeRepo := newFakeNodeRepo()
	payloadRepo := newFakePayloadRepo()
	svc := newTestUploadService(nodeRepo, payloadRepo)

	node, err := svc.InitiateUpload(context.Background(), &contentSvc.InitiateUploadRequest{
		OwnerID:  testOwner,
		Title:    "Quarterly Report",
		FileName: "report-q2.pdf",
		MimeType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("InitiateUpload() error = %v", err)
	}

	if node.File == nil {
		t.Fatal("File summary not set")
	}
	if node.File.UploadStatus != content.UploadStatusPending {
		t.Errorf("UploadStatus = %q, want pending", node.File.UploadStatus)
	}
	if ct := DeriveContentType(node); ct != content.TypeFile {
		t.Errorf("content type = %q, want file", ct)
	}
	if payloadRepo.statuses[node.ID] != content.UploadStatusPending {
		t.Error("file payload row not persisted as pending")
	}
}

func TestInitiateUpload_TitleDefaultsToFileName(t *testing.T) {
	svc := newTestUploadService(newFakeNodeRepo(), newFakePayloadRepo())

	node, err := svc.InitiateUpload(context.Background(), &contentSvc.InitiateUploadRequest{
		OwnerID:  testOwner,
		FileName: "holiday.jpg",
		MimeType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("InitiateUpload() error = %v", err)
	}

	if node.Title != "holiday.jpg" {
		t.Errorf("Title = %q, want file name fallback", node.Title)
	}
}

func TestInitiateUpload_MissingFileName(t *testing.T) {
	svc := newTestUploadService(newFakeNodeRepo(), newFakePayloadRepo())

	_, err := svc.InitiateUpload(context.Background(), &contentSvc.InitiateUploadRequest{
		OwnerID:  testOwner,
		Title:    "No File",
		MimeType: "application/pdf",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("InitiateUpload() error = %v, want ErrValidation", err)
	}
}

func TestFinalizeUpload(t *testing.T) {
	nodeRepo := newFakeNodeRepo()
	payloadRepo := newFakePayloadRepo()
	svc := newTestUploadService(nodeRepo, payloadRepo)

	node, err := svc.InitiateUpload(context.Background(), &contentSvc.InitiateUploadRequest{
		OwnerID:  testOwner,
		Title:    "Report",
		FileName: "report.pdf",
		MimeType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("InitiateUpload() error = %v", err)
	}

	if _, err := svc.FinalizeUpload(context.Background(), testOwner, node.ID, &contentSvc.FinalizeUploadRequest{
		FileSize: 1024,
	}); err != nil {
		t.Fatalf("FinalizeUpload() error = %v", err)
	}

	if payloadRepo.statuses[node.ID] != content.UploadStatusReady {
		t.Errorf("status = %q, want ready", payloadRepo.statuses[node.ID])
	}
}

func TestFinalizeUpload_AlreadyReady(t *testing.T) {
	nodeRepo := newFakeNodeRepo()
	payloadRepo := newFakePayloadRepo()
	svc := newTestUploadService(nodeRepo, payloadRepo)

	node, err := svc.InitiateUpload(context.Background(), &contentSvc.InitiateUploadRequest{
		OwnerID:  testOwner,
		Title:    "Report",
		FileName: "report.pdf",
		MimeType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("InitiateUpload() error = %v", err)
	}

	req := &contentSvc.FinalizeUploadRequest{FileSize: 1024}
	if _, err := svc.FinalizeUpload(context.Background(), testOwner, node.ID, req); err != nil {
		t.Fatalf("first FinalizeUpload() error = %v", err)
	}

	// Second finalize hits the status guard
	_, err = svc.FinalizeUpload(context.Background(), testOwner, node.ID, req)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second FinalizeUpload() error = %v, want ErrConflict", err)
	}
}

func TestFinalizeUpload_NegativeSize(t *testing.T) {
	svc := newTestUploadService(newFakeNodeRepo(), newFakePayloadRepo())

	_, err := svc.FinalizeUpload(context.Background(), testOwner, "any", &contentSvc.FinalizeUploadRequest{
		FileSize: -1,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("FinalizeUpload() error = %v, want ErrValidation", err)
	}
}

func TestFinalizeUpload_UnknownNode(t *testing.T) {
	svc := newTestUploadService(newFakeNodeRepo(), newFakePayloadRepo())

	_, err := svc.FinalizeUpload(context.Background(), testOwner, "missing", &contentSvc.FinalizeUploadRequest{
		FileSize: 10,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("FinalizeUpload() error = %v, want ErrNotFound", err)
	}
}
