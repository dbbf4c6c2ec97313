package handler

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keshavkalani15/Aapna-Bank/internal/cqrs"
	"github.com/keshavkalani15/Aapna-Bank/internal/middleware"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
	"github.com/keshavkalani15/Aapna-Bank/internal/session"
)

// ---- fake session manager ----

type fakeSessionManager struct {
	nextID  int
	records map[string]*session.Session
	flashes map[string][]session.Flash
	saved   int
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{
		records: make(map[string]*session.Session),
		flashes: make(map[string][]session.Flash),
	}
}

func (m *fakeSessionManager) New(_ context.Context) (*session.Session, error) {
	m.nextID++
	sess := &session.Session{ID: strconv.Itoa(m.nextID)}
	m.records[sess.ID] = sess
	return sess, nil
}

func (m *fakeSessionManager) Save(_ context.Context, sess *session.Session) error {
	m.records[sess.ID] = sess
	m.saved++
	return nil
}

func (m *fakeSessionManager) Load(_ context.Context, cookieValue string) (*session.Session, error) {
	sess, ok := m.records[cookieValue]
	if !ok {
		return nil, fmt.Errorf("no session")
	}
	return sess, nil
}

func (m *fakeSessionManager) Destroy(_ context.Context, sess *session.Session) error {
	delete(m.records, sess.ID)
	delete(m.flashes, sess.ID)
	return nil
}

func (m *fakeSessionManager) CookieValue(sess *session.Session) (string, error) {
	return sess.ID, nil
}

func (m *fakeSessionManager) Flash(_ context.Context, sess *session.Session, level, message string) error {
	m.flashes[sess.ID] = append(m.flashes[sess.ID], session.Flash{Level: level, Message: message})
	return nil
}

func (m *fakeSessionManager) PopFlashes(_ context.Context, sess *session.Session) []session.Flash {
	flashes := m.flashes[sess.ID]
	delete(m.flashes, sess.ID)
	return flashes
}

func (m *fakeSessionManager) TTL() time.Duration { return time.Minute }

// allFlashes flattens queued flashes across sessions; handlers may rotate the
// session on logout, so assertions look at the whole queue.
func (m *fakeSessionManager) allFlashes() []session.Flash {
	var all []session.Flash
	for _, fs := range m.flashes {
		all = append(all, fs...)
	}
	return all
}

func (m *fakeSessionManager) hasFlash(substr string) bool {
	for _, f := range m.allFlashes() {
		if strings.Contains(f.Message, substr) {
			return true
		}
	}
	return false
}

// fakeSessionMiddleware seeds the request context with a fixed session, the
// way middleware.Sessions would after loading the cookie.
func fakeSessionMiddleware(mgr *fakeSessionManager, sess *session.Session) gin.HandlerFunc {
	mgr.records[sess.ID] = sess
	return func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, sess)
		c.Next()
	}
}

// ---- service fakes ----

type fakeAuth struct {
	customerFn func(cqrs.CustomerLoginQuery) (*models.CustomerIdentity, error)
	managerFn  func(cqrs.ManagerLoginQuery) (*models.ManagerIdentity, error)
}

func (f *fakeAuth) CustomerLogin(_ context.Context, q cqrs.CustomerLoginQuery) (*models.CustomerIdentity, error) {
	if f.customerFn != nil {
		return f.customerFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

func (f *fakeAuth) ManagerLogin(_ context.Context, q cqrs.ManagerLoginQuery) (*models.ManagerIdentity, error) {
	if f.managerFn != nil {
		return f.managerFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

type fakeLedgerCommander struct {
	transferFn func(cqrs.TransferCommand) error
	adjustFn   func(cqrs.ManagerAdjustCommand) error
	transfers  []cqrs.TransferCommand
	adjusts    []cqrs.ManagerAdjustCommand
}

func (f *fakeLedgerCommander) Transfer(_ context.Context, cmd cqrs.TransferCommand) error {
	f.transfers = append(f.transfers, cmd)
	if f.transferFn != nil {
		return f.transferFn(cmd)
	}
	return nil
}

func (f *fakeLedgerCommander) ManagerAdjust(_ context.Context, cmd cqrs.ManagerAdjustCommand) error {
	f.adjusts = append(f.adjusts, cmd)
	if f.adjustFn != nil {
		return f.adjustFn(cmd)
	}
	return nil
}

type fakeAccountQuerier struct {
	summaryFn      func(cqrs.AccountSummaryQuery) (*models.AccountSummaryView, error)
	transactionsFn func(cqrs.ListTransactionsQuery) ([]models.TransactionView, error)
}

func (f *fakeAccountQuerier) AccountSummary(_ context.Context, q cqrs.AccountSummaryQuery) (*models.AccountSummaryView, error) {
	if f.summaryFn != nil {
		return f.summaryFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

func (f *fakeAccountQuerier) Transactions(_ context.Context, q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
	if f.transactionsFn != nil {
		return f.transactionsFn(q)
	}
	return nil, nil
}

type fakeCustomerCommander struct {
	createFn func(cqrs.CreateCustomerCommand) (string, error)
	toggleFn func(cqrs.ToggleStatusCommand) (models.UserStatus, error)
	updateFn func(cqrs.UpdateProfileCommand) error
	creates  []cqrs.CreateCustomerCommand
}

func (f *fakeCustomerCommander) CreateCustomer(_ context.Context, cmd cqrs.CreateCustomerCommand) (string, error) {
	f.creates = append(f.creates, cmd)
	if f.createFn != nil {
		return f.createFn(cmd)
	}
	return "", fmt.Errorf("not configured")
}

func (f *fakeCustomerCommander) ToggleStatus(_ context.Context, cmd cqrs.ToggleStatusCommand) (models.UserStatus, error) {
	if f.toggleFn != nil {
		return f.toggleFn(cmd)
	}
	return "", fmt.Errorf("not configured")
}

func (f *fakeCustomerCommander) UpdateProfile(_ context.Context, cmd cqrs.UpdateProfileCommand) error {
	if f.updateFn != nil {
		return f.updateFn(cmd)
	}
	return fmt.Errorf("not configured")
}

type fakeCustomerQuerier struct {
	rosterFn func() ([]models.RosterEntryView, error)
	detailFn func(cqrs.CustomerDetailQuery) (*models.CustomerDetailView, error)
}

func (f *fakeCustomerQuerier) Roster(_ context.Context) ([]models.RosterEntryView, error) {
	if f.rosterFn != nil {
		return f.rosterFn()
	}
	return nil, nil
}

func (f *fakeCustomerQuerier) CustomerDetail(_ context.Context, q cqrs.CustomerDetailQuery) (*models.CustomerDetailView, error) {
	if f.detailFn != nil {
		return f.detailFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.ParseGlob("../../web/templates/*.html")))
	return r
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPage(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("redirect location = %q, want %q", got, location)
	}
}
