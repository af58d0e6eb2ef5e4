package config

import (
	"path/filepath"
	"testing"
)

func TestSaveToRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "config.toml")

	cfg := Default()
	cfg.PreferMetadataFormat = FormatDataview
	cfg.RecurrenceDateBase = BaseScheduled
	cfg.FileParsing.EnableFileMetadataParsing = true
	cfg.ProjectDetection.LinkFilter = "Projects/"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if loaded.PreferMetadataFormat != FormatDataview {
		t.Errorf("PreferMetadataFormat = %q, want %q", loaded.PreferMetadataFormat, FormatDataview)
	}
	if loaded.RecurrenceDateBase != BaseScheduled {
		t.Errorf("RecurrenceDateBase = %q, want %q", loaded.RecurrenceDateBase, BaseScheduled)
	}
	if !loaded.FileParsing.EnableFileMetadataParsing {
		t.Error("expected file_parsing.enable_file_metadata_parsing=true")
	}
	if loaded.ProjectDetection.LinkFilter != "Projects/" {
		t.Errorf("LinkFilter = %q", loaded.ProjectDetection.LinkFilter)
	}
	if loaded.DefaultTaskStatus != " " {
		t.Errorf("DefaultTaskStatus = %q, want a single space", loaded.DefaultTaskStatus)
	}
}

func TestSaveToRejectsInvalidConfig(t *testing.T) {
	cfg := Default()
	cfg.PreferMetadataFormat = "yaml"
	if err := SaveTo(filepath.Join(t.TempDir(), "config.toml"), cfg); err == nil {
		t.Fatal("expected error for invalid metadata format")
	}
}

func TestCreateDefaultDoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	created, err := CreateDefault(path)
	if err != nil || !created {
		t.Fatalf("CreateDefault = %v, %v; want true, nil", created, err)
	}
	created, err = CreateDefault(path)
	if err != nil || created {
		t.Fatalf("second CreateDefault = %v, %v; want false, nil", created, err)
	}
}
