package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"eventsctl/internal/log"
)

// TestRootSubcommands tests that all top-level commands are registered
func TestRootSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"auth":      false,
		"events":    false,
		"reference": false,
		"admin":     false,
		"browse":    false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found on root command", name)
		}
	}
}

// TestAuthSubcommands tests that all auth subcommands are registered
func TestAuthSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"login":    false,
		"logout":   false,
		"register": false,
		"status":   false,
	}

	for _, cmd := range authCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found in auth command", name)
		}
	}
}

// TestAuthLoginFlags tests that auth login has correct flags
func TestAuthLoginFlags(t *testing.T) {
	if authLoginCmd.Flags().Lookup("username") == nil {
		t.Error("flag 'username' not found on auth login command")
	}
	if authLoginCmd.Flags().Lookup("password") == nil {
		t.Error("flag 'password' not found on auth login command")
	}
}

// TestEventsSubcommands tests that events subcommands are registered
func TestEventsSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"list":   false,
		"get":    false,
		"search": false,
		"create": false,
	}

	for _, cmd := range eventsCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found in events command", name)
		}
	}
}

// TestEventsCreateFlags tests that events create has its reference-id flags
func TestEventsCreateFlags(t *testing.T) {
	for _, flag := range []string{"title", "type", "scale", "start", "end", "location", "status", "teacher", "category"} {
		if eventsCreateCmd.Flags().Lookup(flag) == nil {
			t.Errorf("flag '%s' not found on events create command", flag)
		}
	}
}

// TestEventStatusValidation tests status value checks
func TestEventStatusValidation(t *testing.T) {
	for _, status := range []string{"planned", "in progress", "completed", "canceled"} {
		if !isEventStatus(status) {
			t.Errorf("expected %q to be a valid status", status)
		}
	}
	if isEventStatus("done") {
		t.Error("expected 'done' to be rejected")
	}
}

// TestAdminSubcommands tests that admin subcommands are registered
func TestAdminSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"stats": false,
		"table": false,
		"users": false,
	}

	for _, cmd := range adminCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found in admin command", name)
		}
	}
}

// TestConfigureLoggingReadsConfigFile tests that the config file's log
// settings reach the effective logger
func TestConfigureLoggingReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("EVENTSCTL_HOME", home)

	content := []byte("log_level: debug\nlog_format: json\n")
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	configureLogging(rootCmd)
	defer log.SetDefaultLogger(log.New(log.DefaultConfig()))

	cfg := log.DefaultLogger().Config()
	if cfg.Level != log.LevelDebug {
		t.Errorf("expected level DEBUG from config file, got %s", cfg.Level)
	}
	if cfg.Format != log.FormatJSON {
		t.Errorf("expected JSON format from config file, got %v", cfg.Format)
	}
}

// TestConfigureLoggingFlagWins tests that an explicit flag overrides the file
func TestConfigureLoggingFlagWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("EVENTSCTL_HOME", home)

	content := []byte("log_level: debug\n")
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := rootCmd.ParseFlags([]string{"--log-level", "error"}); err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = rootCmd.Flags().Set("log-level", "")
		log.SetDefaultLogger(log.New(log.DefaultConfig()))
	}()

	configureLogging(rootCmd)

	if cfg := log.DefaultLogger().Config(); cfg.Level != log.LevelError {
		t.Errorf("expected level ERROR from flag, got %s", cfg.Level)
	}
}

// TestTableNameValidation tests table name checks
func TestTableNameValidation(t *testing.T) {
	if !isAdminTable("users") {
		t.Error("expected 'users' to be a known admin table")
	}
	if isAdminTable("secrets") {
		t.Error("expected 'secrets' to be rejected")
	}

	if !isReferenceTable("event_types") {
		t.Error("expected 'event_types' to be a known reference table")
	}
	if isReferenceTable("users") {
		t.Error("expected 'users' to be rejected as a reference table")
	}
}
