package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/passgate/internal/auth"
	"github.com/abhisek/passgate/internal/router"
	"github.com/abhisek/passgate/internal/screen"
	"github.com/abhisek/passgate/internal/store"
)

type stubAccount struct {
	user    *store.User
	err     error
	logouts int
}

func (a *stubAccount) CurrentUser(context.Context) (*store.User, error) { return a.user, a.err }
func (a *stubAccount) Logout(context.Context)                           { a.logouts++; a.user = nil }

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "login" }
func (s *stubScreen) Title() string                          { return "Log In" }

func newDashboard(acc Account) *DashboardScreen {
	return New(acc, func() screen.Screen { return &stubScreen{} })
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// redirect reports the flash that accompanies a replace-with-login, if any.
func redirect(msgs []tea.Msg) (screen.FlashMsg, bool) {
	var replaced bool
	var flash screen.FlashMsg
	for _, m := range msgs {
		switch m := m.(type) {
		case router.ReplaceScreenMsg:
			replaced = m.Screen.Title() == "Log In"
		case screen.FlashMsg:
			flash = m
		}
	}
	return flash, replaced
}

func load(d *DashboardScreen) []tea.Msg {
	_, cmd := d.Update(d.Init()())
	return collect(cmd)
}

func TestRedirectsWithoutSession(t *testing.T) {
	d := newDashboard(&stubAccount{})
	flash, replaced := redirect(load(d))
	if !replaced {
		t.Fatal("expected redirect to login")
	}
	if flash.Text != MsgLoginRequired || flash.Kind != screen.FlashInfo {
		t.Errorf("unexpected flash %+v", flash)
	}
}

func TestRedirectsOnStoreError(t *testing.T) {
	d := newDashboard(&stubAccount{err: errors.Join(auth.ErrStore, errors.New("locked"))})
	flash, replaced := redirect(load(d))
	if !replaced {
		t.Fatal("expected redirect to login")
	}
	if flash.Text != auth.MsgStoreFailure || flash.Kind != screen.FlashError {
		t.Errorf("unexpected flash %+v", flash)
	}
}

func TestGreetsUser(t *testing.T) {
	acc := &stubAccount{user: &store.User{ID: 1, Username: "alice", Email: "alice@example.com", CreatedAt: time.Now()}}
	d := newDashboard(acc)
	if msgs := load(d); len(msgs) != 0 {
		t.Fatalf("expected no commands, got %v", msgs)
	}

	view := d.View(80, 20)
	for _, want := range []string{"Welcome, alice!", "alice@example.com"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLogout(t *testing.T) {
	acc := &stubAccount{user: &store.User{ID: 1, Username: "alice"}}
	d := newDashboard(acc)
	load(d)

	_, cmd := d.Update(tea.KeyPressMsg{Code: 'l', Text: "L", Mod: tea.ModShift})
	if cmd == nil {
		t.Fatal("expected logout command")
	}
	msgs := collect(cmd)
	if acc.logouts != 1 {
		t.Errorf("expected one logout, got %d", acc.logouts)
	}

	_, cmd = d.Update(msgs[0])
	flash, replaced := redirect(collect(cmd))
	if !replaced {
		t.Fatal("expected redirect to login")
	}
	if flash.Text != MsgLoggedOut || flash.Kind != screen.FlashSuccess {
		t.Errorf("unexpected flash %+v", flash)
	}

	if _, cmd := d.Update(tea.KeyPressMsg{Code: 'l', Text: "l"}); cmd != nil {
		t.Error("no second logout once leaving")
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	d := newDashboard(&stubAccount{user: &store.User{Username: "alice"}})
	load(d)
	if _, cmd := d.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("unexpected command")
	}
}
