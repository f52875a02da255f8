package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/discwalk/internal/logs"
	"github.com/san-kum/discwalk/internal/storage"
	"github.com/san-kum/discwalk/internal/walk"
)

func newTestCmd(args ...string) *cobra.Command {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd
}

func TestExecuteClosesLogFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	cmd := newTestCmd("plot", "missing", "--data", dir, "--log-file", filepath.Join(dir, "log.json"), "--log-level", "error")

	var opened *logs.Logger
	setup := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		err := setup(c, args)
		opened = logger
		return err
	}

	if err := execute(context.Background(), cmd); err == nil {
		t.Fatal("expected error for missing run")
	}
	if opened == nil {
		t.Fatal("logger was not set up")
	}
	if err := opened.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("log file still open: Close() = %v", err)
	}
	if logger != nil {
		t.Error("logger not reset")
	}
}

func TestBurstRecordsDraws(t *testing.T) {
	dir := t.TempDir()
	cmd := newTestCmd("burst", "--data", dir, "--out", filepath.Join(dir, "walk.png"),
		"--frames", "20", "--seed", "3", "--log-level", "error")
	if err := execute(context.Background(), cmd); err != nil {
		t.Fatal(err)
	}

	runs, err := storage.New(dir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	meta := runs[0]
	if meta.Advances != 20 {
		t.Errorf("expected 20 advances, got %d", meta.Advances)
	}
	// Each advance draws a candidate and three channel deltas on top of
	// the initial placement.
	if meta.Draws <= meta.Advances {
		t.Errorf("draws = %d, advances = %d", meta.Draws, meta.Advances)
	}
}

func TestImportJSONCommand(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "run.json")

	f, err := os.Create(doc)
	if err != nil {
		t.Fatal(err)
	}
	trail := []storage.Point{
		{Tick: 1, X: 250, Y: 125, Color: walk.RGB{R: 10, G: 20, B: 30}},
		{Tick: 2, X: 252.64, Y: 125, Color: walk.RGB{R: 20, G: 10, B: 40}},
	}
	if err := storage.ExportJSON(f, storage.RunMetadata{ID: "imported", Mode: "burst"}, trail); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cmd := newTestCmd("import-json", doc, "--data", filepath.Join(dir, "runs"), "--log-level", "error")
	if err := execute(context.Background(), cmd); err != nil {
		t.Fatal(err)
	}

	got, err := storage.New(filepath.Join(dir, "runs")).LoadTrail("imported")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != trail[1] {
		t.Errorf("unexpected trail: %+v", got)
	}
}
