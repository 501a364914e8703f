package cmd

import (
	"flag"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestParseView(t *testing.T) {
	for i, name := range viewNames {
		v, err := ParseView(strings.ToLower(name))
		if err != nil || v != View(i) || v.String() != name {
			t.Errorf("ParseView(%q) = %v, %v", name, v, err)
		}
	}
	if _, err := ParseView("kitchen"); err == nil {
		t.Error("ParseView(kitchen) succeeded")
	}
	if got := View(42).String(); got != "View(42)" {
		t.Errorf("View(42).String() = %q", got)
	}
}

func TestRegister(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("sbz", flag.ContinueOnError), "sbz")
	Register(c)

	for i := range viewNames {
		if _, ok := router[View(i)]; !ok {
			t.Errorf("view %s has no default command", View(i))
		}
	}
	names := map[string]string{}
	c.VisitCommands(func(g *subcommands.CommandGroup, cmd subcommands.Command) {
		if other, ok := names[cmd.Name()]; ok {
			t.Errorf("command %s registered in %s and %s", cmd.Name(), other, g.Name())
		}
		names[cmd.Name()] = g.Name()
	})
	for name, group := range map[string]string{"sell": "sales", "collect": "debt", "pay": "debt", "income": "finance", "expense": "finance", "autosync": "sync"} {
		if names[name] != group {
			t.Errorf("command %s is in group %q, want %q", name, names[name], group)
		}
	}
}

func TestViewCmd(t *testing.T) {
	_, out := setup(t)
	Register(subcommands.NewCommander(flag.NewFlagSet("sbz", flag.ContinueOnError), "sbz"))

	if got := run(t, &viewCmd{}, "debt", "-type", "supplier"); got != subcommands.ExitSuccess {
		t.Fatalf("view debt = %v", got)
	}
	if !strings.Contains(out.String(), "Công ty NPP Toàn Cầu") || strings.Contains(out.String(), "Nguyễn Văn A") {
		t.Errorf("supplier debts:\n%s", out)
	}
	if got := run(t, &viewCmd{}, "debt", "-color"); got != subcommands.ExitUsageError {
		t.Errorf("view with an unknown flag = %v", got)
	}
	if got := run(t, &viewCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("view without view = %v", got)
	}
}

func TestTopicCmd(t *testing.T) {
	_, out := setup(t)
	if got := run(t, &topicCmd{}); got != subcommands.ExitSuccess || !strings.Contains(out.String(), "* debts:") {
		t.Errorf("topic = %v:\n%s", got, out)
	}
	out.Reset()
	if got := run(t, &topicCmd{}, "debts", "sync"); got != subcommands.ExitSuccess || !strings.Contains(out.String(), "# Debts") || !strings.Contains(out.String(), "# Sync") {
		t.Errorf("topic debts sync = %v:\n%s", got, out)
	}
	if got := run(t, &topicCmd{}, "gains"); got != subcommands.ExitFailure {
		t.Errorf("topic gains = %v", got)
	}
}
