// internal/chatbot/engine_test.go
package chatbot

import (
	"strings"
	"testing"
)

var testInfo = SiteInfo{
	OwnerName:    "Jordan Avery",
	Title:        "Product Designer",
	Email:        "hello@jordanavery.dev",
	Phone:        "+1 (555) 010-2040",
	Location:     "Portland, OR",
	LinkedIn:     "https://linkedin.com/in/jordanavery",
	GitHub:       "https://github.com/jordanavery",
	ProjectCount: 12,
	YearsExp:     8,
	Skills:       []string{"UX design", "React", "Go"},
}

func TestGreeting(t *testing.T) {
	e := New()

	for _, msg := range []string{"hi", "Hello there", "hey!", "Good morning"} {
		reply := e.Reply(msg, testInfo)
		if !strings.Contains(reply, "Jordan Avery") {
			t.Errorf("Reply(%q) = %q, expected a greeting naming the owner", msg, reply)
		}
	}
}

func TestContactInterpolation(t *testing.T) {
	e := New()

	reply := e.Reply("what is your email?", testInfo)
	if !strings.Contains(reply, testInfo.Email) {
		t.Errorf("email reply %q does not contain %q", reply, testInfo.Email)
	}

	reply = e.Reply("can I call you on the phone?", testInfo)
	if !strings.Contains(reply, testInfo.Phone) {
		t.Errorf("phone reply %q does not contain %q", reply, testInfo.Phone)
	}

	reply = e.Reply("how do I contact you to hire you?", testInfo)
	if !strings.Contains(reply, testInfo.Email) {
		t.Errorf("contact reply %q does not contain email", reply)
	}
}

func TestContactInfoMissing(t *testing.T) {
	e := New()

	info := testInfo
	info.Email = ""
	info.Phone = ""

	reply := e.Reply("what is your email?", info)
	if strings.Contains(reply, "@") {
		t.Errorf("reply %q leaked an email that should be absent", reply)
	}
}

func TestOffTopicRefusal(t *testing.T) {
	e := New()

	for _, msg := range []string{
		"what is the capital of France",
		"tell me a joke please",
		"2 + 2 = ?",
	} {
		reply := e.Reply(msg, testInfo)
		if reply != refusalReply {
			t.Errorf("Reply(%q) = %q, want the refusal reply", msg, reply)
		}
	}
}

func TestRelevantButUnmatchedFallsBack(t *testing.T) {
	e := New()

	reply := e.Reply("does the website use cookies", testInfo)
	if reply == refusalReply {
		t.Fatalf("on-topic message got the refusal reply")
	}
	if !strings.Contains(reply, "Jordan Avery") {
		t.Errorf("fallback %q should name the owner", reply)
	}
}

func TestDeterministic(t *testing.T) {
	e := New()

	msgs := []string{"hi", "what are your skills?", "pricing?", "random nonsense xyz"}
	for _, msg := range msgs {
		first := e.Reply(msg, testInfo)
		for i := 0; i < 5; i++ {
			if got := e.Reply(msg, testInfo); got != first {
				t.Fatalf("Reply(%q) not deterministic: %q vs %q", msg, first, got)
			}
		}
	}
}

func TestFirstMatchWins(t *testing.T) {
	e := New()

	// Mentions both greeting and pricing terms; greeting is earlier in
	// the table and must win.
	reply := e.Reply("hello, how much do you cost?", testInfo)
	if !strings.Contains(reply, "Hi!") {
		t.Errorf("Reply = %q, want greeting to take priority", reply)
	}
}

func TestSkillsListed(t *testing.T) {
	e := New()

	reply := e.Reply("what technologies do you use?", testInfo)
	for _, skill := range testInfo.Skills {
		if !strings.Contains(reply, skill) {
			t.Errorf("skills reply %q missing %q", reply, skill)
		}
	}
}

func TestEmptyMessage(t *testing.T) {
	e := New()

	for _, msg := range []string{"", "   ", "\n\t"} {
		if got := e.Reply(msg, testInfo); got != emptyReply {
			t.Errorf("Reply(%q) = %q, want the empty-message prompt", msg, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := normalize("  HeLLo   World \n"); got != "hello world" {
		t.Errorf("normalize = %q", got)
	}
}
