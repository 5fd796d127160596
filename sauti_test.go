package sauti_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sautiflow/sauti"
	"github.com/sautiflow/sauti/pkg/adapters/memory"
	"github.com/sautiflow/sauti/pkg/analytics"
	"github.com/sautiflow/sauti/pkg/domain"
)

func seedEngine(t *testing.T, opts ...sauti.Option) (*sauti.Engine, *memory.GraphStore, *memory.SessionStore) {
	t.Helper()
	graphs := memory.NewGraphStore()
	sessions := memory.NewSessionStore()

	g := domain.NewGraph("app-1")
	root := g.Root()
	root.Prompt = "Welcome to SautiPay"
	root.Options = []string{"Check balance", "Exit"}
	for _, n := range []domain.MenuNode{
		{ID: "balance", Prompt: "Check balance for which account?", Options: []string{"Savings"}},
		{ID: "exit", Prompt: "Goodbye", Terminal: true},
	} {
		if _, err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	if err := graphs.Save(context.Background(), g); err != nil {
		t.Fatal(err)
	}
	return sauti.New(graphs, sessions, opts...), graphs, sessions
}

func TestEngine_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("first call starts the session and shows the root", func(t *testing.T) {
		engine, _, _ := seedEngine(t)
		reply, err := engine.Handle(ctx, "app-1", "s1", "254700111222", "")
		if err != nil {
			t.Fatal(err)
		}
		want := "Welcome to SautiPay\n1. Check balance\n2. Exit"
		if reply.Prompt != want {
			t.Errorf("prompt = %q, want %q", reply.Prompt, want)
		}
		if reply.Final {
			t.Error("first screen should not be final")
		}
	})

	t.Run("first call ignores any input it carries", func(t *testing.T) {
		engine, _, _ := seedEngine(t)
		reply, err := engine.Handle(ctx, "app-1", "s1", "254700111222", "1")
		if err != nil {
			t.Fatal(err)
		}
		if reply.Prompt != "Welcome to SautiPay\n1. Check balance\n2. Exit" {
			t.Errorf("prompt = %q", reply.Prompt)
		}
	})

	t.Run("subsequent calls navigate", func(t *testing.T) {
		engine, _, _ := seedEngine(t)
		if _, err := engine.Handle(ctx, "app-1", "s1", "254700111222", ""); err != nil {
			t.Fatal(err)
		}

		reply, err := engine.Handle(ctx, "app-1", "s1", "254700111222", "1")
		if err != nil {
			t.Fatal(err)
		}
		if reply.Prompt != "Check balance for which account?\n1. Savings" {
			t.Errorf("prompt = %q", reply.Prompt)
		}
		if reply.Final {
			t.Error("mid-dialog screen should not be final")
		}
	})

	t.Run("reaching a terminal node is final", func(t *testing.T) {
		engine, _, sessions := seedEngine(t)
		if _, err := engine.Handle(ctx, "app-1", "s1", "254700111222", ""); err != nil {
			t.Fatal(err)
		}

		reply, err := engine.Handle(ctx, "app-1", "s1", "254700111222", "2")
		if err != nil {
			t.Fatal(err)
		}
		if reply.Prompt != "Goodbye" {
			t.Errorf("prompt = %q", reply.Prompt)
		}
		if !reply.Final {
			t.Error("terminal screen should be final")
		}

		stored, err := sessions.Get(ctx, "s1")
		if err != nil {
			t.Fatal(err)
		}
		if stored.Status != domain.StatusEnded {
			t.Errorf("persisted status = %v", stored.Status)
		}
	})

	t.Run("invalid input redisplays the same screen", func(t *testing.T) {
		engine, _, _ := seedEngine(t)
		if _, err := engine.Handle(ctx, "app-1", "s1", "254700111222", ""); err != nil {
			t.Fatal(err)
		}

		reply, err := engine.Handle(ctx, "app-1", "s1", "254700111222", "9")
		if err != nil {
			t.Fatal(err)
		}
		if reply.Prompt != "Welcome to SautiPay\n1. Check balance\n2. Exit" {
			t.Errorf("prompt = %q", reply.Prompt)
		}
	})

	t.Run("unknown application", func(t *testing.T) {
		engine, _, _ := seedEngine(t)
		_, err := engine.Handle(ctx, "nope", "s1", "254700111222", "")
		if !errors.Is(err, domain.ErrGraphNotFound) {
			t.Errorf("expected ErrGraphNotFound, got %v", err)
		}
	})

	t.Run("concurrent keystrokes for one session stay consistent", func(t *testing.T) {
		engine, _, sessions := seedEngine(t)
		if _, err := engine.Handle(ctx, "app-1", "s1", "254700111222", ""); err != nil {
			t.Fatal(err)
		}

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := engine.Handle(ctx, "app-1", "s1", "254700111222", "9"); err != nil {
					t.Error(err)
				}
			}()
		}
		wg.Wait()

		stored, err := sessions.Get(ctx, "s1")
		if err != nil {
			t.Fatal(err)
		}
		// One start frame plus one reject frame per keystroke.
		if len(stored.Steps) != 11 {
			t.Errorf("step log length %d, want 11", len(stored.Steps))
		}
	})
}

func TestEngine_Report(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := seedEngine(t)

	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("s%d", i)
		if _, err := engine.Handle(ctx, "app-1", id, "254700111222", ""); err != nil {
			t.Fatal(err)
		}
		input := "1"
		if i == 0 {
			input = "2"
		}
		if _, err := engine.Handle(ctx, "app-1", id, "254700111222", input); err != nil {
			t.Fatal(err)
		}
	}

	report, err := engine.Report(ctx, "app-1", analytics.Window{})
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalSessions != 4 {
		t.Errorf("TotalSessions = %d", report.TotalSessions)
	}
	if report.UniqueUsers != 1 {
		t.Errorf("UniqueUsers = %d", report.UniqueUsers)
	}
	if report.CompletionRate != 0.25 {
		t.Errorf("CompletionRate = %v, want 0.25", report.CompletionRate)
	}
	if len(report.TopMenuPaths) == 0 || report.TopMenuPaths[0].Path != "root > balance" {
		t.Errorf("TopMenuPaths = %v", report.TopMenuPaths)
	}

	t.Run("window excludes older sessions", func(t *testing.T) {
		report, err := engine.Report(ctx, "app-1", analytics.Window{
			Since: time.Now().Add(time.Hour),
		})
		if err != nil {
			t.Fatal(err)
		}
		if report.TotalSessions != 0 {
			t.Errorf("TotalSessions = %d, want 0", report.TotalSessions)
		}
	})
}

func TestEngine_Hooks(t *testing.T) {
	var mu sync.Mutex
	var ends int
	engine, _, _ := seedEngine(t, sauti.WithLifecycleHooks(domain.LifecycleHooks{
		OnSessionEnd: func(_ context.Context, _ *domain.StepEvent) {
			mu.Lock()
			ends++
			mu.Unlock()
		},
	}))

	ctx := context.Background()
	if _, err := engine.Handle(ctx, "app-1", "s1", "254700111222", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Handle(ctx, "app-1", "s1", "254700111222", "2"); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if ends != 1 {
		t.Errorf("session end events = %d, want 1", ends)
	}
}
