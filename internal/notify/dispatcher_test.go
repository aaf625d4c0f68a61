package notify

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"usersvc/internal/account/models"
)

type fakeDirectory struct {
	emails []string
	err    error
}

func (d *fakeDirectory) AdminEmails(context.Context) ([]string, error) {
	return d.emails, d.err
}

type sentMail struct {
	subject   string
	recipient string
	body      string
}

// fakeSink records deliveries and can fail specific recipients.
type fakeSink struct {
	sent    []sentMail
	failFor map[string]error
}

func (s *fakeSink) Send(_ context.Context, subject, recipient, bodyHTML string) error {
	if err, ok := s.failFor[recipient]; ok {
		return err
	}
	s.sent = append(s.sent, sentMail{subject: subject, recipient: recipient, body: bodyHTML})
	return nil
}

type DispatcherSuite struct {
	suite.Suite
	directory *fakeDirectory
	sink      *fakeSink
	d         *Dispatcher
	ctx       context.Context
}

func (s *DispatcherSuite) SetupTest() {
	s.directory = &fakeDirectory{emails: []string{"admin1@example.com", "admin2@example.com"}}
	s.sink = &fakeSink{}
	s.d = NewDispatcher(s.directory, s.sink, slog.New(slog.DiscardHandler), nil)
	s.ctx = context.Background()
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

// TestEligibility verifies which events notify and which are suppressed.
func (s *DispatcherSuite) TestEligibility() {
	s.Run("created customer account is suppressed", func() {
		s.d.Publish(s.ctx, models.AccountCreated{Account: models.Account{
			ID: "u1", Email: "u1@example.com", Role: models.DefaultRole,
		}})
		s.Empty(s.sink.sent)
	})

	s.Run("suppression is case-insensitive on the role", func() {
		s.d.Publish(s.ctx, models.AccountCreated{Account: models.Account{
			ID: "u1", Email: "u1@example.com", Role: "Customer",
		}})
		s.Empty(s.sink.sent)
	})

	s.Run("created employee account notifies", func() {
		s.d.Publish(s.ctx, models.AccountCreated{Account: models.Account{
			ID: "u2", Email: "u2@example.com", Fullname: "Employee Two", Role: "admin",
		}})
		s.Require().Len(s.sink.sent, 2)
		s.Equal("New employee account created", s.sink.sent[0].subject)
		s.Contains(s.sink.sent[0].body, "Employee Two")
	})
}

// TestSubjects verifies each lifecycle event composes its own subject.
func (s *DispatcherSuite) TestSubjects() {
	s.directory.emails = []string{"admin@example.com"}

	cases := []struct {
		event   models.Event
		subject string
	}{
		{models.AccountSoftDeleted{ID: "u1"}, "Account soft-deleted"},
		{models.AccountRestored{ID: "u1"}, "Account restored"},
		{models.AccountDestroyed{ID: "u1"}, "Account permanently deleted"},
		{models.RoleChanged{ID: "u1", OldRole: "customer", NewRole: "admin"}, "Account role changed"},
	}

	for _, tc := range cases {
		s.sink.sent = nil
		s.d.Publish(s.ctx, tc.event)
		s.Require().Len(s.sink.sent, 1, "event %s", tc.event.Kind())
		s.Equal(tc.subject, s.sink.sent[0].subject)
		s.Contains(s.sink.sent[0].body, "u1")
	}
}

// TestFanOut verifies delivery order and that failures never stop the rest.
func (s *DispatcherSuite) TestFanOut() {
	s.Run("delivers to every admin in directory order", func() {
		s.d.Publish(s.ctx, models.AccountSoftDeleted{ID: "u1"})
		s.Require().Len(s.sink.sent, 2)
		s.Equal("admin1@example.com", s.sink.sent[0].recipient)
		s.Equal("admin2@example.com", s.sink.sent[1].recipient)
	})

	s.Run("one failed recipient does not stop the rest", func() {
		s.sink.sent = nil
		s.sink.failFor = map[string]error{"admin1@example.com": errors.New("mailbox full")}

		s.d.Publish(s.ctx, models.AccountSoftDeleted{ID: "u1"})
		s.Require().Len(s.sink.sent, 1)
		s.Equal("admin2@example.com", s.sink.sent[0].recipient)
	})

	s.Run("directory failure drops the notification silently", func() {
		s.sink.sent = nil
		s.directory.err = errors.New("store down")

		s.d.Publish(s.ctx, models.AccountSoftDeleted{ID: "u1"})
		s.Empty(s.sink.sent)
	})
}

// TestComposition verifies the HTML frame and the id highlight.
func (s *DispatcherSuite) TestComposition() {
	s.directory.emails = []string{"admin@example.com"}

	s.d.Publish(s.ctx, models.AccountDestroyed{ID: "acct-42"})
	s.Require().Len(s.sink.sent, 1)

	body := s.sink.sent[0].body
	s.Contains(body, "<blockquote")
	s.Contains(body, "acct-42")
	s.Contains(body, "generated automatically")

	s.Run("escapes HTML in identifiers", func() {
		s.sink.sent = nil
		s.d.Publish(s.ctx, models.AccountDestroyed{ID: "<script>"})
		s.Require().Len(s.sink.sent, 1)
		s.NotContains(s.sink.sent[0].body, "<script>")
		s.Contains(s.sink.sent[0].body, "&lt;script&gt;")
	})
}
