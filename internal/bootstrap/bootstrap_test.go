package bootstrap

import (
	"path/filepath"
	"testing"

	"covoit/internal/events"
	"covoit/pkg/config"
	"covoit/pkg/logger"
)

func TestBuild(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	cfg := config.FromEnv()
	cfg.SessionFile = filepath.Join(t.TempDir(), "session")
	cfg.Log = logger.Discard()

	svc, err := Build(cfg, "covoit-test")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer svc.Close()

	if svc.Client.HTTP.Tokens != svc.Session {
		t.Error("the session must feed bearer tokens to the client")
	}
	if _, ok := svc.Events.(events.Noop); !ok {
		t.Errorf("events must be disabled without brokers, got %T", svc.Events)
	}
	if _, signedIn := svc.Session.Current(); signedIn {
		t.Error("a fresh session file must leave the user signed out")
	}
	deps := svc.MaestroDeps()
	if deps.Searcher == nil || deps.Availability == nil {
		t.Error("maestro dependencies must be wired")
	}
}
