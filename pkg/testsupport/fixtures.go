package testsupport

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-loginform/pkg/controller"
	"github.com/goliatone/go-loginform/pkg/dom/htmldom"
)

// LoginMarkup returns a minimal page honouring the login form DOM contract.
// The password field is only emitted when withPassword is set.
func LoginMarkup(withPassword bool) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>Login</title></head><body>`)
	b.WriteString(`<form id="loginForm" novalidate>`)
	b.WriteString(`<div class="organic-field"><input type="email" id="email" name="email">`)
	b.WriteString(`<label for="email">Email</label><span class="error-message" id="emailError"></span></div>`)
	if withPassword {
		b.WriteString(`<div class="organic-field"><input type="password" id="password" name="password">`)
		b.WriteString(`<label for="password">Password</label><span class="error-message" id="passwordError"></span></div>`)
	}
	b.WriteString(`<button type="submit" class="harmony-button"><span class="button-text">Sign in</span></button>`)
	b.WriteString(`</form></body></html>`)
	return b.String()
}

// LoadDocument parses markup into an in-memory document.
func LoadDocument(t *testing.T, markup string) *htmldom.Document {
	t.Helper()

	doc, err := htmldom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

// MustElement returns the element with id or fails the test.
func MustElement(t *testing.T, doc *htmldom.Document, id string) *htmldom.Element {
	t.Helper()

	el := doc.ElementByID(id)
	if el == nil {
		t.Fatalf("element #%s not found", id)
	}
	return el
}

// AssertStrings compares string slices with a cmp diff.
func AssertStrings(t *testing.T, label string, want, got []string) {
	t.Helper()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", label, diff)
	}
}

// ManualScheduler is a controller.Scheduler driven by Advance instead of the
// wall clock.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualTimer
}

var _ controller.Scheduler = (*ManualScheduler)(nil)

type manualTimer struct {
	owner   *ManualScheduler
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) controller.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{owner: s, at: s.now + d, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock forward and runs every timer that became due, in
// due order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	var keep []*manualTimer
	for _, t := range s.pending {
		if !t.stopped && t.at <= s.now {
			t.fired = true
			due = append(due, t)
			continue
		}
		if !t.stopped {
			keep = append(keep, t)
		}
	}
	s.pending = keep
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

// Pending reports how many timers are waiting.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// String describes the scheduler for failure messages.
func (s *ManualScheduler) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("ManualScheduler{now: %s, pending: %d}", s.now, len(s.pending))
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
