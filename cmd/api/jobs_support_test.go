package main

import (
	"testing"

	"github.com/yourusername/auto-readme/internal/docgen"
	"github.com/yourusername/auto-readme/internal/jobs"
)

func TestStatusPayloadUnknownJob(t *testing.T) {
	// 未登録のジョブIDは not-found ではなく queued で応答する
	payload := statusPayload("never-submitted", nil)
	if payload["status"] != jobs.StatusQueued {
		t.Fatalf("unknown job should report queued, got %v", payload["status"])
	}
	if payload["job_id"] != "never-submitted" {
		t.Fatalf("unexpected job_id: %v", payload["job_id"])
	}
	if _, ok := payload["error"]; ok {
		t.Fatal("unknown job must not carry an error")
	}
}

func TestStatusPayloadProcessing(t *testing.T) {
	record := &jobs.Record{
		JobID:  "job-1",
		Status: jobs.StatusProcessing,
		Progress: jobs.ProgressInfo{
			Stage:          "analyzing",
			FilesFound:     12,
			FilesProcessed: 5,
		},
	}
	payload := statusPayload("job-1", record)
	if payload["status"] != jobs.StatusProcessing {
		t.Fatalf("unexpected status: %v", payload["status"])
	}
	if payload["stage"] != "analyzing" {
		t.Fatalf("unexpected stage: %v", payload["stage"])
	}
	if payload["files_found"] != 12 || payload["files_processed"] != 5 {
		t.Fatalf("unexpected counters: %v", payload)
	}
	if _, ok := payload["result"]; ok {
		t.Fatal("non-terminal job must not carry a result")
	}
}

func TestStatusPayloadCompleted(t *testing.T) {
	record := &jobs.Record{
		JobID:  "job-2",
		Status: jobs.StatusCompleted,
		Progress: jobs.ProgressInfo{
			Stage:              "completed",
			FilesProcessed:     1,
			DocumentsGenerated: 1,
		},
		Result: []docgen.SummaryDocument{
			{File: "app.py", Summary: "Prints hi.", Dependencies: []string{}},
		},
		ResultURL: "https://storage.example.com/job-2/index.html",
	}
	payload := statusPayload("job-2", record)
	if payload["result_url"] != record.ResultURL {
		t.Fatalf("unexpected result_url: %v", payload["result_url"])
	}
	docs, ok := payload["result"].([]docgen.SummaryDocument)
	if !ok || len(docs) != 1 || docs[0].File != "app.py" {
		t.Fatalf("unexpected result: %#v", payload["result"])
	}
}

func TestStatusPayloadFailed(t *testing.T) {
	record := &jobs.Record{
		JobID:  "job-3",
		Status: jobs.StatusFailed,
		Error:  &jobs.ErrorInfo{Code: "CLONE_FAILED", Message: "CLONE_FAILED: リポジトリのクローンに失敗しました。"},
	}
	payload := statusPayload("job-3", record)
	if payload["status"] != jobs.StatusFailed {
		t.Fatalf("unexpected status: %v", payload["status"])
	}
	errMsg, ok := payload["error"].(string)
	if !ok || errMsg == "" {
		t.Fatalf("failed job must carry a non-empty error string: %v", payload["error"])
	}
}
