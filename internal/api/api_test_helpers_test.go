package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lunover/attendly/internal/db"
	"github.com/lunover/attendly/internal/harvest"
	"gorm.io/gorm"
)

const testAllowedEmail = "admin@example.com"

type stubRemote struct {
	users        []harvest.User
	entries      []harvest.TimeEntry
	usersErr     error
	entriesErr   error
	entriesCalls int
}

func (remote *stubRemote) ListUsers(ctx context.Context) ([]harvest.User, error) {
	if remote.usersErr != nil {
		return nil, remote.usersErr
	}
	return remote.users, nil
}

func (remote *stubRemote) ListTimeEntries(ctx context.Context, from string, to string) ([]harvest.TimeEntry, error) {
	remote.entriesCalls++
	if remote.entriesErr != nil {
		return nil, remote.entriesErr
	}
	return remote.entries, nil
}

type captureMailer struct {
	email string
	link  string
}

func (mailer *captureMailer) SendMagicLink(_ context.Context, email string, link string) error {
	mailer.email = email
	mailer.link = link
	return nil
}

type testApp struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
	remote   *stubRemote
	mailer   *captureMailer
}

func newTestApp(t *testing.T, remote *stubRemote) *testApp {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "attendly-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if remote == nil {
		remote = &stubRemote{}
	}
	mailer := &captureMailer{}

	handler := NewHandler(database, remote, mailer, "test-secret", "http://dashboard.test", []string{testAllowedEmail}, time.UTC, false)

	app := fiber.New()
	RegisterRoutes(app, handler)

	return &testApp{
		app:      app,
		handler:  handler,
		database: database,
		remote:   remote,
		mailer:   mailer,
	}
}

// signIn runs the full magic-link flow for the allowed test address and
// returns the session cookie to attach to later requests.
func (fixture *testApp) signIn(t *testing.T) string {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, "/api/auth/send-link", strings.NewReader("email="+testAllowedEmail))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	response, err := fixture.app.Test(request, -1)
	if err != nil {
		t.Fatalf("send-link request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("send-link status = %d, want 200", response.StatusCode)
	}
	if fixture.mailer.link == "" {
		t.Fatal("no magic link was mailed")
	}

	linkURL, err := url.Parse(fixture.mailer.link)
	if err != nil {
		t.Fatalf("parse mailed link %q: %v", fixture.mailer.link, err)
	}

	verifyRequest := httptest.NewRequest(http.MethodGet, linkURL.RequestURI(), nil)
	verifyResponse, err := fixture.app.Test(verifyRequest, -1)
	if err != nil {
		t.Fatalf("verify request failed: %v", err)
	}
	verifyResponse.Body.Close()
	if verifyResponse.StatusCode != http.StatusSeeOther {
		t.Fatalf("verify status = %d, want 303", verifyResponse.StatusCode)
	}
	if location := verifyResponse.Header.Get("Location"); location != "/" {
		t.Fatalf("verify redirected to %q, want /", location)
	}

	for _, cookie := range verifyResponse.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("verify response set no auth cookie")
	return ""
}

func (fixture *testApp) authedRequest(t *testing.T, method string, target string, body string, cookie string) *http.Response {
	t.Helper()

	var request *http.Request
	if body != "" {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	} else {
		request = httptest.NewRequest(method, target, nil)
	}
	request.Header.Set("Cookie", cookie)

	response, err := fixture.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	return response
}

func stubUser(id int64, first string, last string, email string, active bool) harvest.User {
	return harvest.User{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     email,
		IsActive:  active,
	}
}

func stubEntry(id int64, userID int64, userName string, date string, hours float64) harvest.TimeEntry {
	return harvest.TimeEntry{
		ID:        id,
		SpentDate: date,
		User:      harvest.Ref{ID: userID, Name: userName},
		Project:   harvest.Ref{ID: 10, Name: "Engine"},
		Client:    harvest.Ref{ID: 20, Name: "Babbage & Co"},
		Task:      harvest.Ref{ID: 30, Name: "Development"},
		Hours:     hours,
	}
}
