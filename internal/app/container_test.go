package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/testutil"
)

func newTestContainer(t *testing.T, runner *testutil.FakeRunner) (*Container, *testutil.Reporter, string) {
	t.Helper()
	t.Setenv("STACKCTL_CONFIG", "")
	root := t.TempDir()
	rep := &testutil.Reporter{}
	c, err := BuildContainer(context.Background(), Options{
		Root:     root,
		Reporter: rep,
		Runner:   runner,
		Logger:   testutil.NopLogger{},
	})
	if err != nil {
		t.Fatalf("BuildContainer error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, rep, root
}

func TestUnknownCommandTouchesNothing(t *testing.T) {
	runner := testutil.NewFakeRunner("docker", "mvn", "java")
	c, rep, root := newTestContainer(t, runner)

	err := c.Dispatcher.Dispatch(context.Background(), []string{"deploy"})
	if domain.ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d (%v)", domain.ExitCode(err), err)
	}
	if len(runner.Calls) != 0 {
		t.Fatalf("unknown command spawned processes: %v", runner.Lines())
	}
	if !rep.Contains("Unknown command: deploy") {
		t.Fatalf("unexpected report %v", rep.Lines)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("unknown command wrote to the working directory: %v", entries)
	}
}

func TestStartFromScratchBootstrapsBuildsThenStarts(t *testing.T) {
	runner := testutil.NewFakeRunner("docker", "mvn", "java")
	runner.Respond("java -version", "openjdk version \"21.0.2\"\nOpenJDK Runtime")
	c, rep, root := newTestContainer(t, runner)

	if err := c.Dispatcher.Dispatch(context.Background(), nil); err != nil {
		t.Fatalf("start error: %v\n%s", err, strings.Join(rep.Lines, "\n"))
	}

	lines := runner.Lines()
	build, up := -1, -1
	for i, l := range lines {
		switch l {
		case "mvn clean package -DskipTests":
			build = i
		case "docker compose up -d":
			up = i
		}
	}
	if build < 0 || up < 0 || build > up {
		t.Fatalf("expected build before up, got %v", lines)
	}

	data, err := os.ReadFile(filepath.Join(root, ".env"))
	if err != nil {
		t.Fatalf("environment file missing: %v", err)
	}
	if !strings.Contains(string(data), "DB_USERNAME=messenger_user") {
		t.Fatalf("unexpected environment file:\n%s", data)
	}
	for _, dir := range c.Config.Directories {
		if info, err := os.Stat(filepath.Join(root, dir)); err != nil || !info.IsDir() {
			t.Fatalf("directory %s not created: %v", dir, err)
		}
	}

	events, err := c.Journal.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) == 0 || events[0].Step != "up" || events[0].Outcome != domain.OutcomeOK {
		t.Fatalf("unexpected journal %+v", events)
	}
	password := ""
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "DB_PASSWORD="); ok {
			password = v
		}
	}
	if len(password) != domain.DatabasePasswordLength {
		t.Fatalf("unexpected password length %d", len(password))
	}
	for _, ev := range events {
		if strings.Contains(ev.Detail, password) {
			t.Fatalf("journal leaked a secret in %+v", ev)
		}
	}
}

func TestSecondStartKeepsSecrets(t *testing.T) {
	runner := testutil.NewFakeRunner("docker")
	c, _, root := newTestContainer(t, runner)
	ctx := context.Background()

	if err := c.Dispatcher.Dispatch(ctx, []string{"install"}); err != nil {
		t.Fatalf("install error: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(root, ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Dispatcher.Dispatch(ctx, []string{"START"}); err != nil {
		t.Fatalf("start error: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(root, ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("environment file changed between runs")
	}
	for _, l := range runner.Lines() {
		if l == "docker build -t messenger-app ." {
			return
		}
	}
	t.Fatalf("expected a container build without mvn, got %v", runner.Lines())
}

func TestBlankArgumentIsUnknownCommand(t *testing.T) {
	for _, token := range []string{"", " "} {
		runner := testutil.NewFakeRunner("docker", "mvn", "java")
		c, rep, root := newTestContainer(t, runner)

		err := c.Dispatcher.Dispatch(context.Background(), []string{token})
		if domain.ExitCode(err) != 2 {
			t.Fatalf("%q: expected exit code 2, got %d (%v)", token, domain.ExitCode(err), err)
		}
		if len(runner.Calls) != 0 {
			t.Fatalf("%q: spawned processes %v", token, runner.Lines())
		}
		if !rep.Contains("Unknown command:") {
			t.Fatalf("%q: unexpected report %v", token, rep.Lines)
		}
		if _, err := os.Stat(filepath.Join(root, ".env")); !os.IsNotExist(err) {
			t.Fatalf("%q: environment file must not be generated", token)
		}
	}
}

func TestMalformedSettingsStillAllowHelp(t *testing.T) {
	t.Setenv("STACKCTL_CONFIG", "")
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "stackctl.yaml"), []byte("engine: [not a map\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runner := testutil.NewFakeRunner("docker")
	rep := &testutil.Reporter{}
	c, err := BuildContainer(context.Background(), Options{Root: root, Reporter: rep, Runner: runner, Logger: testutil.NopLogger{}})
	if err != nil {
		t.Fatalf("BuildContainer must not fail on a broken settings file: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	if c.ConfigErr == nil {
		t.Fatal("expected the settings error to be kept")
	}

	if err := c.Dispatcher.Dispatch(context.Background(), []string{"help"}); err != nil {
		t.Fatalf("help error: %v", err)
	}
	if !rep.Contains("Usage: stackctl [command]") {
		t.Fatalf("unexpected help output %v", rep.Lines)
	}

	err = c.Dispatcher.Dispatch(context.Background(), []string{"start"})
	if err == nil || domain.ExitCode(err) != 1 {
		t.Fatalf("start must fail with the settings error, got %v", err)
	}
	if len(runner.Calls) != 0 {
		t.Fatalf("no process may run with broken settings: %v", runner.Lines())
	}
}
