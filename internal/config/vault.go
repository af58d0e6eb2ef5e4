package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/taskmark/internal/atomicfile"
	"github.com/aidanlsb/taskmark/internal/paths"
)

// VaultConfigFile is the per-vault override file at the vault root.
const VaultConfigFile = ".taskmark.yaml"

// VaultConfig holds per-vault overrides of the global configuration.
// Nil pointers leave the global value in place.
type VaultConfig struct {
	PreferMetadataFormat *string `yaml:"prefer_metadata_format,omitempty"`
	RecurrenceDateBase   *string `yaml:"recurrence_date_base,omitempty"`
	Timezone             *string `yaml:"timezone,omitempty"`

	// Ignore lists vault-relative directory prefixes skipped when listing
	// tasks of a directory.
	Ignore []string `yaml:"ignore,omitempty"`

	FileParsing      *VaultFileParsing      `yaml:"file_parsing,omitempty"`
	ProjectDetection *VaultProjectDetection `yaml:"project_detection,omitempty"`
}

// VaultFileParsing overrides parts of FileParsing.
type VaultFileParsing struct {
	EnableFileMetadataParsing    *bool    `yaml:"enable_file_metadata_parsing,omitempty"`
	MetadataFieldsToParseAsTasks []string `yaml:"metadata_fields_to_parse_as_tasks,omitempty"`
	EnableTagBasedTaskParsing    *bool    `yaml:"enable_tag_based_task_parsing,omitempty"`
	TagsToParseAsTasks           []string `yaml:"tags_to_parse_as_tasks,omitempty"`
	TaskContentFromMetadata      *string  `yaml:"task_content_from_metadata,omitempty"`
}

// VaultProjectDetection overrides parts of ProjectDetection.
type VaultProjectDetection struct {
	MetadataKey *string `yaml:"metadata_key,omitempty"`
	Tag         *string `yaml:"tag,omitempty"`
	LinkFilter  *string `yaml:"link_filter,omitempty"`
}

// DefaultVaultConfig returns an empty override set.
func DefaultVaultConfig() *VaultConfig {
	return &VaultConfig{}
}

// LoadVaultConfig loads the overrides of the vault at vaultPath.
// Returns an empty override set if the file doesn't exist.
func LoadVaultConfig(vaultPath string) (*VaultConfig, error) {
	configPath := filepath.Join(vaultPath, VaultConfigFile)

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return DefaultVaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vault config %s: %w", configPath, err)
	}

	var vc VaultConfig
	if err := yaml.Unmarshal(data, &vc); err != nil {
		return nil, fmt.Errorf("failed to parse vault config %s: %w", configPath, err)
	}

	for i, prefix := range vc.Ignore {
		vc.Ignore[i] = normalizeDirPrefix(prefix)
	}

	return &vc, nil
}

// Apply returns cfg with the vault overrides applied.
func (vc *VaultConfig) Apply(cfg Config) (Config, error) {
	if vc == nil {
		return cfg, nil
	}
	setString(&cfg.PreferMetadataFormat, vc.PreferMetadataFormat)
	setString(&cfg.RecurrenceDateBase, vc.RecurrenceDateBase)
	setString(&cfg.Timezone, vc.Timezone)

	if fp := vc.FileParsing; fp != nil {
		setBool(&cfg.FileParsing.EnableFileMetadataParsing, fp.EnableFileMetadataParsing)
		setBool(&cfg.FileParsing.EnableTagBasedTaskParsing, fp.EnableTagBasedTaskParsing)
		setString(&cfg.FileParsing.TaskContentFromMetadata, fp.TaskContentFromMetadata)
		if fp.MetadataFieldsToParseAsTasks != nil {
			cfg.FileParsing.MetadataFieldsToParseAsTasks = append([]string(nil), fp.MetadataFieldsToParseAsTasks...)
		}
		if fp.TagsToParseAsTasks != nil {
			cfg.FileParsing.TagsToParseAsTasks = append([]string(nil), fp.TagsToParseAsTasks...)
		}
	}
	if pd := vc.ProjectDetection; pd != nil {
		setString(&cfg.ProjectDetection.MetadataKey, pd.MetadataKey)
		setString(&cfg.ProjectDetection.Tag, pd.Tag)
		setString(&cfg.ProjectDetection.LinkFilter, pd.LinkFilter)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", VaultConfigFile, err)
	}
	return cfg, nil
}

// IsIgnored reports whether a vault-relative path lies under an ignored prefix.
func (vc *VaultConfig) IsIgnored(relPath string) bool {
	if vc == nil {
		return false
	}
	p := paths.NormalizeRelPath(relPath)
	for _, prefix := range vc.Ignore {
		if prefix != "" && (strings.HasPrefix(p, prefix) || p+"/" == prefix) {
			return true
		}
	}
	return false
}

// CreateDefaultVaultConfig writes a commented override file into the vault.
// Returns true if a new file was created, false if one already existed.
func CreateDefaultVaultConfig(vaultPath string) (bool, error) {
	configPath := filepath.Join(vaultPath, VaultConfigFile)

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	defaultConfig := `# taskmark vault overrides
# Values here replace the matching keys of the global config.toml for this vault.

# timezone: Europe/Berlin
# recurrence_date_base: due

# Directories skipped by 'taskmark list'
ignore:
  - templates/

# file_parsing:
#   enable_file_metadata_parsing: true
#   enable_tag_based_task_parsing: true
#   tags_to_parse_as_tasks: [todo, task]

# project_detection:
#   metadata_key: project
#   link_filter: Projects/
`

	if err := atomicfile.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write vault config: %w", err)
	}

	return true, nil
}

// SaveVaultConfig writes the vault overrides back to the vault.
func SaveVaultConfig(vaultPath string, vc *VaultConfig) error {
	configPath := filepath.Join(vaultPath, VaultConfigFile)

	data, err := yaml.Marshal(vc)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomicfile.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", VaultConfigFile, err)
	}

	return nil
}

func normalizeDirPrefix(p string) string {
	p = strings.TrimSpace(paths.NormalizeRelPath(p))
	if p == "" || strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
